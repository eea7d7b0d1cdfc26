package plot

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"figprep/internal/failures"
	"figprep/internal/logging"
	"figprep/internal/metrics"
	"figprep/internal/runctx"
	"figprep/internal/textutil"
	"figprep/internal/workspace"
)

// FigureSuffix is appended to the experiment label in output file names.
const FigureSuffix = "curves"

// Options configures a plot run.
type Options struct {
	CSVDir string
	OutDir string
	Window int
	Width  int
	Height int
	// Kinds selects and orders the panels; empty means DefaultKinds.
	Kinds []Kind
	// Ext is the output image extension; empty means ".png".
	Ext string
}

// Output describes one written figure.
type Output struct {
	Experiment string
	Path       string
	Panels     []Kind
	Points     int
}

// Summary describes a completed plot run.
type Summary struct {
	CSVDir  string
	OutDir  string
	Window  int
	Records int
	Figures []Output
	Elapsed time.Duration
}

// Run loads every CSV in the input directory, smooths each series and writes
// one figure per experiment. A load failure aborts before any figure is written.
// An empty input directory produces no figures and a warning.
func Run(ctx context.Context, logger *slog.Logger, opts Options) (Summary, error) {
	started := time.Now()
	logger = logging.NewComponentLogger(logger, "plot")
	summary := Summary{CSVDir: opts.CSVDir, OutDir: opts.OutDir, Window: opts.Window}

	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	ext := opts.Ext
	if ext == "" {
		ext = ".png"
	}

	loadCtx := runctx.WithStage(ctx, "load")
	table, err := metrics.Load(opts.CSVDir)
	if err != nil {
		return summary, err
	}
	summary.Records = table.Len()
	logging.WithContext(loadCtx, logger).Debug("metrics loaded",
		logging.String("csv_dir", opts.CSVDir),
		logging.Int("records", table.Len()),
		logging.Strings("experiments", table.Experiments()),
	)

	dir, err := workspace.Acquire(opts.OutDir)
	if err != nil {
		return summary, failures.Wrap(failures.ErrOutput, "plot", "prepare output", opts.OutDir, err)
	}
	defer dir.Release()

	if table.Len() == 0 {
		logging.WarnWithContext(logging.WithContext(loadCtx, logger), "no metric csv files found",
			"empty_input",
			logging.String("csv_dir", opts.CSVDir),
			logging.String(logging.FieldErrorHint, "export scalars from TensorBoard as <experiment>_<metric>.csv"),
			logging.String(logging.FieldImpact, "no figures written"),
		)
		summary.Elapsed = time.Since(started)
		return summary, nil
	}

	smoothCtx := runctx.WithStage(ctx, "smooth")
	smoothed, err := metrics.Smooth(table, opts.Window)
	if err != nil {
		return summary, err
	}
	logging.WithContext(smoothCtx, logger).Debug("series smoothed", logging.Int("window", opts.Window))

	figures := Build(smoothed, kinds)
	paths, err := figurePaths(dir, figures, ext)
	if err != nil {
		return summary, err
	}

	renderCtx := runctx.WithStage(ctx, "render")
	renderLogger := logging.WithContext(renderCtx, logger)
	renderer := NewRenderer(opts.Width, opts.Height)
	for i, fig := range figures {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		path := paths[i]
		if err := renderer.Render(fig, path); err != nil {
			return summary, failures.Wrap(failures.ErrOutput, "plot", "render", path, err)
		}
		out := Output{
			Experiment: fig.Experiment,
			Path:       path,
			Panels:     fig.VisiblePanels(),
			Points:     fig.Points(),
		}
		summary.Figures = append(summary.Figures, out)
		renderLogger.Info("saved figure",
			logging.String("experiment", out.Experiment),
			logging.String("path", filepath.Clean(out.Path)),
			logging.Int("panels", len(out.Panels)),
			logging.Int("points", out.Points),
		)
	}

	summary.Elapsed = time.Since(started)
	return summary, nil
}

// figurePaths resolves the output file of every figure and fails when two
// experiment labels sanitize to the same file name.
func figurePaths(dir *workspace.Dir, figures []Figure, ext string) ([]string, error) {
	paths := make([]string, len(figures))
	owner := make(map[string]string, len(figures))
	for i, fig := range figures {
		path := dir.Join(textutil.FigureFileName(fig.Experiment, FigureSuffix, ext))
		if prev, ok := owner[path]; ok {
			return nil, failures.Wrap(failures.ErrOutput, "plot", "name figures",
				fmt.Sprintf("experiments %q and %q both map to %s", prev, fig.Experiment, path), nil)
		}
		owner[path] = fig.Experiment
		paths[i] = path
	}
	return paths, nil
}
