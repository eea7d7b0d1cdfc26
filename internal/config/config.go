package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"figprep/internal/failures"
)

//go:embed sample_config.toml
var sampleConfig string

// Retile contains the sprite sheet re-tiling parameters.
type Retile struct {
	Input     string `toml:"input"`
	Output    string `toml:"output"`
	Patch     int    `toml:"patch"`
	RowLength int    `toml:"row_length"`
	Rows      int    `toml:"rows"`
	Cols      int    `toml:"cols"`
}

// Plot contains the metric plotting parameters.
type Plot struct {
	CSVDir string `toml:"csv_dir"`
	OutDir string `toml:"out_dir"`
	// Window is the trailing rolling-mean length in samples.
	Window int `toml:"window"`
	// Width and Height are the figure size in pixels.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Kinds lists the metric panels left to right.
	Kinds []string `toml:"kinds"`
	// Format is the figure image format, also used as the file extension.
	Format string `toml:"format"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File optionally mirrors log output to a file.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for figprep.
//
// Configuration sections by subsystem:
//   - Retile: sprite sheet input/output and grid shape
//   - Plot: CSV discovery, smoothing window, and figure size
//   - Logging: log format, level, and optional file mirror
type Config struct {
	Retile  Retile  `toml:"retile"`
	Plot    Plot    `toml:"plot"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, failures.Wrap(failures.ErrConfiguration, "config", "resolve", "", err)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, failures.Wrap(failures.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, failures.Wrap(failures.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates the config. Commands call it again after
// applying flag overrides.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return failures.Wrap(failures.ErrConfiguration, "config", "normalize", "", err)
	}
	if err := c.Validate(); err != nil {
		return failures.Wrap(failures.ErrConfiguration, "config", "validate", "", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectFileName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
