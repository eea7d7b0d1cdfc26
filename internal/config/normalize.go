package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRetile(); err != nil {
		return err
	}
	if err := c.normalizePlot(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeRetile() error {
	var err error
	if c.Retile.Input, err = expandPath(strings.TrimSpace(c.Retile.Input)); err != nil {
		return fmt.Errorf("retile.input: %w", err)
	}
	if c.Retile.Output, err = expandPath(strings.TrimSpace(c.Retile.Output)); err != nil {
		return fmt.Errorf("retile.output: %w", err)
	}
	return nil
}

func (c *Config) normalizePlot() error {
	var err error
	if strings.TrimSpace(c.Plot.CSVDir) == "" {
		c.Plot.CSVDir = defaultCSVDir
	}
	if c.Plot.CSVDir, err = expandPath(strings.TrimSpace(c.Plot.CSVDir)); err != nil {
		return fmt.Errorf("plot.csv_dir: %w", err)
	}
	if strings.TrimSpace(c.Plot.OutDir) == "" {
		c.Plot.OutDir = defaultFiguresDir
	}
	if c.Plot.OutDir, err = expandPath(strings.TrimSpace(c.Plot.OutDir)); err != nil {
		return fmt.Errorf("plot.out_dir: %w", err)
	}
	kinds := make([]string, 0, len(c.Plot.Kinds))
	for _, kind := range c.Plot.Kinds {
		if kind = strings.ToLower(strings.TrimSpace(kind)); kind != "" {
			kinds = append(kinds, kind)
		}
	}
	c.Plot.Kinds = kinds
	c.Plot.Format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Plot.Format)), ".")
	if c.Plot.Format == "" {
		c.Plot.Format = defaultFigureFormat
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
