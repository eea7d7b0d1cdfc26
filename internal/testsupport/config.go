package testsupport

import (
	"path/filepath"
	"testing"

	"figprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose inputs and outputs live under a unique
// temp directory. Paths are absolute so no normalization is needed.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Retile.Input = filepath.Join(base, "tb_imgs", "sheet.png")
	cfgVal.Retile.Output = filepath.Join(base, "figures", "sheet_tiled.png")
	cfgVal.Plot.CSVDir = filepath.Join(base, "tb_csv")
	cfgVal.Plot.OutDir = filepath.Join(base, "figures")

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLayout overrides the retile grid.
func WithLayout(patch, rowLength, rows, cols int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Retile.Patch = patch
		b.cfg.Retile.RowLength = rowLength
		b.cfg.Retile.Rows = rows
		b.cfg.Retile.Cols = cols
	}
}

// WithWindow overrides the smoothing window.
func WithWindow(window int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Plot.Window = window
	}
}

// BaseDir returns the parent temp directory of a config built by NewConfig.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Plot.CSVDir)
}
