package ui

import (
	"html/template"
	"math"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"playlitics/internal/insights"
)

// renderInsights turns the insight list into a rendered markdown bullet
// list for the dashboard's insights panel.
func renderInsights(list []insights.Insight) template.HTML {
	if len(list) == 0 {
		return ""
	}

	var b strings.Builder
	for _, ins := range list {
		b.WriteString("- ")
		b.WriteString(ins.Text)
		b.WriteString("\n")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	out := markdown.ToHTML([]byte(b.String()), p, renderer)
	return template.HTML(out)
}

// jsonNumber maps NaN onto nil so the JSON API never emits invalid tokens.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
