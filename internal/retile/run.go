package retile

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"figprep/internal/failures"
	"figprep/internal/fileutil"
	"figprep/internal/logging"
	"figprep/internal/runctx"
	"figprep/internal/workspace"
)

// Options configures a retile run.
type Options struct {
	Input  string
	Output string
	Layout Layout
}

// Result describes a completed retile run.
type Result struct {
	Input      string
	Output     string
	SourceSize image.Point
	OutputSize image.Point
	Patches    int
	Elapsed    time.Duration
}

// Run decodes the input image, tiles it, and writes the result to the output
// path, replacing any existing file. Nothing is written when any step fails.
func Run(ctx context.Context, logger *slog.Logger, opts Options) (Result, error) {
	started := time.Now()
	ctx = runctx.WithStage(ctx, "retile")
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "retile"))

	result := Result{Input: opts.Input, Output: opts.Output}
	if err := opts.Layout.Validate(); err != nil {
		return result, err
	}
	format, err := imaging.FormatFromFilename(opts.Output)
	if err != nil {
		return result, failures.Wrap(failures.ErrConfiguration, "retile", "output format", opts.Output, err)
	}

	src, err := imaging.Open(opts.Input)
	if err != nil {
		return result, failures.Wrap(failures.ErrFormat, "retile", "open", opts.Input, err)
	}
	result.SourceSize = src.Bounds().Size()
	logger.Debug("source image decoded",
		logging.String("input", opts.Input),
		logging.Int("width", result.SourceSize.X),
		logging.Int("height", result.SourceSize.Y),
	)

	tiled, err := Tile(src, opts.Layout)
	if err != nil {
		return result, fmt.Errorf("%s: %w", opts.Input, err)
	}
	result.OutputSize = tiled.Bounds().Size()
	result.Patches = opts.Layout.Count()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	dir, err := workspace.Acquire(filepath.Dir(opts.Output))
	if err != nil {
		return result, failures.Wrap(failures.ErrOutput, "retile", "prepare output", filepath.Dir(opts.Output), err)
	}
	defer dir.Release()

	err = fileutil.WriteAtomic(opts.Output, 0o644, func(w io.Writer) error {
		return imaging.Encode(w, tiled, format)
	})
	if err != nil {
		return result, failures.Wrap(failures.ErrOutput, "retile", "write", opts.Output, err)
	}

	result.Elapsed = time.Since(started)
	logger.Info("saved retiled image",
		logging.String("output", opts.Output),
		logging.Int("patches", result.Patches),
		logging.String("grid", fmt.Sprintf("%dx%d", opts.Layout.Rows, opts.Layout.Cols)),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}
