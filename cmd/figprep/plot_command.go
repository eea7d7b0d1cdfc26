package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"figprep/internal/plot"
)

func newPlotCommand(ctx *commandContext) *cobra.Command {
	var (
		csvDir, outDir string
		window         int
		kinds          []string
		format         string
		showSummary    bool
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render smoothed training curves for each experiment",
		Long: "Load every <experiment>_<metric>.csv in the CSV directory, smooth each\n" +
			"series with a trailing rolling mean and write one figure per experiment.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("csv-dir") {
				cfg.Plot.CSVDir = csvDir
			}
			if flags.Changed("out-dir") {
				cfg.Plot.OutDir = outDir
			}
			if flags.Changed("window") {
				cfg.Plot.Window = window
			}
			if flags.Changed("kinds") {
				cfg.Plot.Kinds = kinds
			}
			if flags.Changed("format") {
				cfg.Plot.Format = format
			}
			if err := cfg.Finalize(); err != nil {
				return err
			}

			runCtx, logger, err := ctx.runLogger(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			summary, err := plot.Run(runCtx, logger, plot.Options{
				CSVDir: cfg.Plot.CSVDir,
				OutDir: cfg.Plot.OutDir,
				Window: cfg.Plot.Window,
				Width:  cfg.Plot.Width,
				Height: cfg.Plot.Height,
				Kinds:  plot.ParseKinds(cfg.Plot.Kinds),
				Ext:    "." + cfg.Plot.Format,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summary.Figures) == 0 {
				fmt.Fprintf(out, "No metric CSV files found in %s\n", summary.CSVDir)
				return nil
			}
			if showSummary {
				rows := make([][]string, 0, len(summary.Figures))
				for _, fig := range summary.Figures {
					rows = append(rows, []string{
						fig.Experiment,
						joinKinds(fig.Panels),
						strconv.Itoa(fig.Points),
						fig.Path,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Experiment", "Panels", "Points", "Figure"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
			}
			fmt.Fprintf(out, "Saved %d figure(s) to %s\n", len(summary.Figures), summary.OutDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvDir, "csv-dir", "", "Directory of TensorBoard CSV exports")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory figures are written to")
	cmd.Flags().IntVar(&window, "window", 0, "Rolling mean window")
	cmd.Flags().StringSliceVar(&kinds, "kinds", nil, "Metric panels left to right (comma separated)")
	cmd.Flags().StringVar(&format, "format", "", "Figure image format (png, jpg, gif, tif, bmp)")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print a table of the written figures")
	return cmd
}

func joinKinds(kinds []plot.Kind) string {
	if len(kinds) == 0 {
		return "-"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
