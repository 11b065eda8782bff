package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"playlitics/adapters/synthetic"
	"playlitics/adapters/tabular"
	"playlitics/domain/games"
	"playlitics/internal/insights"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "playlitics-cli",
		Short: "Playlitics CLI for generating and inspecting games datasets",
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSampleCmd(),
		newKPIsCmd(),
		newInsightsCmd(),
	)
	return rootCmd
}

func newGenerateCmd() *cobra.Command {
	var rows int
	var seed int64
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic games dataset as CSV",
		Long: `Generate a deterministic synthetic games dataset.

Example: playlitics-cli generate --rows 500 --seed 42 --out games.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := synthetic.DefaultGeneratorConfig()
			cfg.Rows = rows
			if cmd.Flags().Changed("seed") {
				cfg = cfg.WithSeed(seed)
			}

			table, err := synthetic.NewGenerator(cfg).Generate()
			if err != nil {
				return err
			}
			return writeTableCSV(table, out)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 2000, "number of rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "explicit RNG seed (default derives from row count)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newSampleCmd() *cobra.Command {
	var rows int
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a small sample CSV to try the upload flow with",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := synthetic.DefaultGeneratorConfig()
			cfg.Rows = rows

			table, err := synthetic.NewGenerator(cfg).Generate()
			if err != nil {
				return err
			}
			return writeTableCSV(table, out)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 100, "number of sample rows")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func writeTableCSV(table games.Table, out string) error {
	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := tabular.WriteCSV(w, table); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "wrote %d rows to %s\n", table.Len(), out)
	}
	return nil
}

func newKPIsCmd() *cobra.Command {
	var yearMin, yearMax int
	var genresFlag, platformsFlag []string
	var priceMax float64

	cmd := &cobra.Command{
		Use:   "kpis [file]",
		Short: "Compute KPI summary for a CSV/XLSX dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadFile(args[0])
			if err != nil {
				return err
			}

			filter := games.Filter{
				YearMin:   yearMin,
				YearMax:   yearMax,
				Genres:    genresFlag,
				Platforms: platformsFlag,
				PriceMax:  priceMax,
			}
			kpis := insights.ComputeKPIs(filter.Apply(table))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]interface{}{
				"count":          kpis.Count,
				"avg_metascore":  nanToNil(kpis.AvgMetascore),
				"avg_user_score": nanToNil(kpis.AvgUserScore),
				"median_price":   nanToNil(kpis.MedianPrice),
			})
		},
	}

	addFilterFlags(cmd, &yearMin, &yearMax, &genresFlag, &platformsFlag, &priceMax)
	return cmd
}

func newInsightsCmd() *cobra.Command {
	var yearMin, yearMax int
	var genresFlag, platformsFlag []string
	var priceMax float64

	cmd := &cobra.Command{
		Use:   "insights [file]",
		Short: "Print text insights for a CSV/XLSX dataset",
		Long: `Print up to three text insights for a dataset, optionally filtered.

The unfiltered file is used as the comparison baseline, so narrowing the
filter can surface sentences like "3.1 points above the overall average".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadFile(args[0])
			if err != nil {
				return err
			}

			filter := games.Filter{
				YearMin:   yearMin,
				YearMax:   yearMax,
				Genres:    genresFlag,
				Platforms: platformsFlag,
				PriceMax:  priceMax,
			}
			baseline := insights.ComputeKPIs(table)
			list := insights.GenerateInsights(filter.Apply(table), &baseline)

			if len(list) == 0 {
				fmt.Println("(no insights triggered)")
				return nil
			}
			for _, ins := range list {
				fmt.Printf("- %s\n", ins.Text)
			}
			return nil
		},
	}

	addFilterFlags(cmd, &yearMin, &yearMax, &genresFlag, &platformsFlag, &priceMax)
	return cmd
}

func addFilterFlags(cmd *cobra.Command, yearMin, yearMax *int, genres, platforms *[]string, priceMax *float64) {
	cmd.Flags().IntVar(yearMin, "year-min", 0, "minimum release year")
	cmd.Flags().IntVar(yearMax, "year-max", 0, "maximum release year")
	cmd.Flags().StringSliceVar(genres, "genre", nil, "genres to include (repeatable)")
	cmd.Flags().StringSliceVar(platforms, "platform", nil, "platforms to include (repeatable)")
	cmd.Flags().Float64Var(priceMax, "price-max", 0, "maximum price")
}

func loadFile(path string) (games.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return games.Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return tabular.LoadTable(path, data)
}

func nanToNil(v float64) interface{} {
	if v != v {
		return nil
	}
	return v
}
