package metrics

import (
	"fmt"
	"path/filepath"
	"strings"

	"figprep/internal/failures"
)

// ParseName splits a CSV path into its experiment label and metric name.
// The stem must contain at least one underscore with a non-empty token on
// each side of the last one.
func ParseName(path string) (experiment, metric string, err error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	cut := strings.LastIndex(stem, "_")
	if cut < 0 {
		return "", "", failures.Wrap(failures.ErrFormat, "load", "parse name",
			fmt.Sprintf("%s: file name must look like <experiment>_<metric>.csv", path), nil)
	}
	experiment, metric = stem[:cut], stem[cut+1:]
	if experiment == "" || metric == "" {
		return "", "", failures.Wrap(failures.ErrFormat, "load", "parse name",
			fmt.Sprintf("%s: empty experiment or metric in %q", path, stem), nil)
	}
	return experiment, metric, nil
}
