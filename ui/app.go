package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"playlitics/adapters/synthetic"
	"playlitics/internal"
	"playlitics/internal/config"
	"playlitics/internal/session"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	config    *config.Config
	sessions  *session.Registry
	templates *template.Template
	logger    *internal.Logger
}

// NewApp creates a new dashboard application
func NewApp(cfg *config.Config) (*App, error) {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		config:    cfg,
		sessions:  session.NewRegistry(),
		templates: templates,
		logger:    internal.NewDefaultLogger(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleDashboard)
	a.router.Post("/upload", a.handleUpload)
	a.router.Post("/reset", a.handleResetFilters)
	a.router.Post("/regenerate", a.handleRegenerate)
	a.router.Post("/theme", a.handleToggleTheme)

	// Download endpoints
	a.router.Get("/download/csv", a.handleDownloadCSV)
	a.router.Get("/download/json", a.handleDownloadJSON)
	a.router.Get("/download/sample", a.handleDownloadSample)

	// JSON API mirror of the dashboard state
	a.router.Get("/api/kpis", a.handleAPIKPIs)
	a.router.Get("/api/insights", a.handleAPIInsights)
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + a.config.Server.Port,
		Handler: a.router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting Playlitics dashboard on http://localhost:%s", a.config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// defaultGenerator builds the generator for the configured synthetic dataset.
func (a *App) defaultGenerator(rows int) *synthetic.Generator {
	cfg := synthetic.DefaultGeneratorConfig()
	cfg.Rows = rows
	if a.config.Data.SeedSet {
		cfg = cfg.WithSeed(a.config.Data.Seed)
	}
	return synthetic.NewGenerator(cfg)
}

// renderTemplate writes a template, logging failures instead of panicking.
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
