package config

import (
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRetile(); err != nil {
		return err
	}
	if err := c.validatePlot(); err != nil {
		return err
	}
	return c.validateLogging()
}

// validateRetile checks value ranges only. Whether the grid fits the source
// row is an input-shape question answered by the retiler itself.
func (c *Config) validateRetile() error {
	if c.Retile.Input == "" {
		return errors.New("retile.input must be set")
	}
	if c.Retile.Output == "" {
		return errors.New("retile.output must be set")
	}
	return ensurePositive([]namedInt{
		{"retile.patch", c.Retile.Patch},
		{"retile.row_length", c.Retile.RowLength},
		{"retile.rows", c.Retile.Rows},
		{"retile.cols", c.Retile.Cols},
	})
}

func (c *Config) validatePlot() error {
	if c.Plot.Window < 1 {
		return errors.New("plot.window must be at least 1")
	}
	if c.Plot.Width < minimumFigureWidth {
		return fmt.Errorf("plot.width must be at least %d", minimumFigureWidth)
	}
	if c.Plot.Height < minimumFigureHeight {
		return fmt.Errorf("plot.height must be at least %d", minimumFigureHeight)
	}
	if len(c.Plot.Kinds) == 0 {
		return errors.New("plot.kinds must list at least one metric")
	}
	if _, err := imaging.FormatFromExtension(c.Plot.Format); err != nil {
		return fmt.Errorf("plot.format: unsupported image format %q", c.Plot.Format)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console, json, or auto)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

type namedInt struct {
	name  string
	value int
}

func ensurePositive(values []namedInt) error {
	for _, v := range values {
		if v.value <= 0 {
			return fmt.Errorf("%s must be positive", v.name)
		}
	}
	return nil
}
