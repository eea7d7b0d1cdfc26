package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"figprep/internal/failures"
)

// Column names required in every metrics CSV header.
const (
	StepColumn  = "Step"
	ValueColumn = "Value"
)

// Files returns the *.csv files directly inside dir in lexicographic order.
// A missing directory is a configuration error; an empty one yields no files.
func Files(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, failures.Wrap(failures.ErrConfiguration, "load", "csv dir", dir, err)
	}
	if !info.IsDir() {
		return nil, failures.Wrap(failures.ErrConfiguration, "load", "csv dir", dir+" is not a directory", nil)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, failures.Wrap(failures.ErrConfiguration, "load", "glob", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads every CSV file in dir into one table, files in lexicographic
// order and rows in file order. The first invalid file aborts the load.
func Load(dir string) (*Table, error) {
	paths, err := Files(dir)
	if err != nil {
		return nil, err
	}
	var records []Record
	for _, path := range paths {
		recs, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return &Table{records: records}, nil
}

// LoadFile reads one metrics CSV. The experiment and metric come from the
// file name; Step and Value columns may appear in any position.
func LoadFile(path string) ([]Record, error) {
	experiment, metric, err := ParseName(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, failures.Wrap(failures.ErrFormat, "load", "open", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.ReuseRecord = true
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, formatError(path, "missing header row")
	}
	if err != nil {
		return nil, formatError(path, err.Error())
	}
	stepCol, valueCol := -1, -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch name {
		case StepColumn:
			stepCol = i
		case ValueColumn:
			valueCol = i
		}
	}
	if stepCol < 0 {
		return nil, formatError(path, fmt.Sprintf("header has no %q column", StepColumn))
	}
	if valueCol < 0 {
		return nil, formatError(path, fmt.Sprintf("header has no %q column", ValueColumn))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatError(path, err.Error())
		}
		step, err := parseCell(reader, row, stepCol)
		if err != nil {
			return nil, formatError(path, err.Error())
		}
		value, err := parseCell(reader, row, valueCol)
		if err != nil {
			return nil, formatError(path, err.Error())
		}
		records = append(records, Record{
			Experiment: experiment,
			Metric:     metric,
			Step:       step,
			Value:      value,
			Source:     path,
		})
	}
	return records, nil
}

// parseCell reads a numeric cell. Empty cells are missing values and load as NaN.
func parseCell(reader *csv.Reader, row []string, col int) (float64, error) {
	cell := strings.TrimSpace(row[col])
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		line, _ := reader.FieldPos(col)
		return 0, fmt.Errorf("line %d: invalid number %q", line, row[col])
	}
	return v, nil
}

func formatError(path, message string) error {
	return failures.Wrap(failures.ErrFormat, "load", "parse", path+": "+message, nil)
}
