package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"figprep/internal/config"
	"figprep/internal/failures"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	chdir(t, workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "figprep", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if want := filepath.Join(workDir, "tb_imgs", "L16_token_ori.png"); cfg.Retile.Input != want {
		t.Fatalf("unexpected retile input: got %q want %q", cfg.Retile.Input, want)
	}
	if want := filepath.Join(workDir, "figures"); cfg.Plot.OutDir != want {
		t.Fatalf("unexpected out dir: got %q want %q", cfg.Plot.OutDir, want)
	}
	if cfg.Retile.Patch != 256 || cfg.Retile.RowLength != 18 || cfg.Retile.Rows != 3 || cfg.Retile.Cols != 6 {
		t.Fatalf("unexpected retile defaults: %+v", cfg.Retile)
	}
	if cfg.Plot.Window != 5 {
		t.Fatalf("expected default window 5, got %d", cfg.Plot.Window)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadPrefersProjectFileWhenNoUserConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	chdir(t, workDir)

	if err := os.WriteFile(filepath.Join(workDir, "figprep.toml"), []byte("[plot]\nwindow = 9\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "figprep.toml" {
		t.Fatalf("expected project config to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Plot.Window != 9 {
		t.Fatalf("expected window 9, got %d", cfg.Plot.Window)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "figprep.toml")

	type payload struct {
		Retile struct {
			Input string `toml:"input"`
			Rows  int    `toml:"rows"`
			Cols  int    `toml:"cols"`
		} `toml:"retile"`
		Plot struct {
			CSVDir string `toml:"csv_dir"`
			Window int    `toml:"window"`
		} `toml:"plot"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Retile.Input = "~/sheets/sheet.png"
	custom.Retile.Rows = 2
	custom.Retile.Cols = 9
	custom.Plot.CSVDir = filepath.Join(tempDir, "logs")
	custom.Plot.Window = 1
	custom.Logging.Format = " JSON "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if want := filepath.Join(home, "sheets", "sheet.png"); cfg.Retile.Input != want {
		t.Fatalf("expected tilde expansion to %q, got %q", want, cfg.Retile.Input)
	}
	if cfg.Retile.Rows != 2 || cfg.Retile.Cols != 9 {
		t.Fatalf("unexpected grid: %dx%d", cfg.Retile.Rows, cfg.Retile.Cols)
	}
	if cfg.Retile.Patch != 256 {
		t.Fatalf("expected untouched default patch, got %d", cfg.Retile.Patch)
	}
	if cfg.Plot.Window != 1 {
		t.Fatalf("expected window 1, got %d", cfg.Plot.Window)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "figprep.toml")
	if err := os.WriteFile(configPath, []byte("[plot]\nwindw = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
	if !errors.Is(err, failures.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero patch", func(c *config.Config) { c.Retile.Patch = 0 }, "retile.patch"},
		{"negative rows", func(c *config.Config) { c.Retile.Rows = -1 }, "retile.rows"},
		{"zero window", func(c *config.Config) { c.Plot.Window = 0 }, "plot.window"},
		{"narrow figure", func(c *config.Config) { c.Plot.Width = 10 }, "plot.width"},
		{"short figure", func(c *config.Config) { c.Plot.Height = 10 }, "plot.height"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"missing input", func(c *config.Config) { c.Retile.Input = "" }, "retile.input"},
		{"no kinds", func(c *config.Config) { c.Plot.Kinds = nil }, "plot.kinds"},
		{"bad format", func(c *config.Config) { c.Plot.Format = "webp" }, "plot.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateAllowsGridLargerThanRow(t *testing.T) {
	cfg := config.Default()
	cfg.Retile.Rows = 10
	cfg.Retile.Cols = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("grid fit is checked by the retiler, got %v", err)
	}
}

func TestCreateSampleLoadsCleanly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "figprep.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Plot.Width != 1200 || cfg.Plot.Height != 350 {
		t.Fatalf("unexpected sample figure size %dx%d", cfg.Plot.Width, cfg.Plot.Height)
	}
	if cfg.Plot.Format != "png" || strings.Join(cfg.Plot.Kinds, ",") != "loss,psnr,ssim" {
		t.Fatalf("unexpected sample plot output settings: %+v", cfg.Plot)
	}
}

func TestLoadNormalizesPlotKindsAndFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "figprep.toml")
	content := "[plot]\nkinds = [\" SSIM \", \"\", \"Loss\"]\nformat = \".JPG\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := strings.Join(cfg.Plot.Kinds, ","); got != "ssim,loss" {
		t.Fatalf("unexpected kinds %q", got)
	}
	if cfg.Plot.Format != "jpg" {
		t.Fatalf("expected format jpg, got %q", cfg.Plot.Format)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
