package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"figprep/internal/retile"
)

func newRetileCommand(ctx *commandContext) *cobra.Command {
	var (
		input, output                string
		patch, rowLength, rows, cols int
	)

	cmd := &cobra.Command{
		Use:   "retile",
		Short: "Re-tile the first row of a sprite sheet into a grid",
		Long: "Crop a row of square patches from the input image and arrange the first\n" +
			"rows x cols of them into a new grid image, row-major.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Retile.Input = input
			}
			if flags.Changed("output") {
				cfg.Retile.Output = output
			}
			if flags.Changed("patch") {
				cfg.Retile.Patch = patch
			}
			if flags.Changed("row-length") {
				cfg.Retile.RowLength = rowLength
			}
			if flags.Changed("rows") {
				cfg.Retile.Rows = rows
			}
			if flags.Changed("cols") {
				cfg.Retile.Cols = cols
			}
			if err := cfg.Finalize(); err != nil {
				return err
			}

			runCtx, logger, err := ctx.runLogger(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			result, err := retile.Run(runCtx, logger, retile.Options{
				Input:  cfg.Retile.Input,
				Output: cfg.Retile.Output,
				Layout: retile.Layout{
					Patch:     cfg.Retile.Patch,
					RowLength: cfg.Retile.RowLength,
					Rows:      cfg.Retile.Rows,
					Cols:      cfg.Retile.Cols,
				},
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Input", "Source", "Grid", "Patches", "Output size"},
				[][]string{{
					result.Input,
					formatSize(result.SourceSize.X, result.SourceSize.Y),
					fmt.Sprintf("%dx%d", cfg.Retile.Rows, cfg.Retile.Cols),
					strconv.Itoa(result.Patches),
					formatSize(result.OutputSize.X, result.OutputSize.Y),
				}},
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Saved to %s\n", result.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Source sprite sheet")
	cmd.Flags().StringVar(&output, "output", "", "Destination image; the extension selects the format")
	cmd.Flags().IntVar(&patch, "patch", 0, "Patch edge length in pixels")
	cmd.Flags().IntVar(&rowLength, "row-length", 0, "Number of patches in the source row")
	cmd.Flags().IntVar(&rows, "rows", 0, "Output grid rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "Output grid columns")
	return cmd
}

func formatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
