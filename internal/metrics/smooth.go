package metrics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"figprep/internal/failures"
)

// RollingMean returns the trailing mean of values: position k averages the
// non-NaN entries of values[max(0, k-window+1) : k+1], and is NaN only when
// that window holds no values. Shorter leading windows use what is available,
// so the first output equals the first input unless that input is missing.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	present := make([]float64, 0, window)
	for k := range values {
		start := k - window + 1
		if start < 0 {
			start = 0
		}
		present = present[:0]
		for _, v := range values[start : k+1] {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		if len(present) == 0 {
			out[k] = math.NaN()
			continue
		}
		out[k] = stat.Mean(present, nil)
	}
	return out
}

// Smooth returns a new table in which every (experiment, metric) group is
// stably sorted by step and carries its rolling mean in Smoothed. Groups keep
// their first-appearance order. The input table is not modified.
func Smooth(t *Table, window int) (*Table, error) {
	if window < 1 {
		return nil, failures.Wrap(failures.ErrConfiguration, "smooth", "window",
			fmt.Sprintf("window must be at least 1, got %d", window), nil)
	}
	if t == nil {
		return &Table{}, nil
	}

	order, index := t.groups()
	out := make([]Record, 0, len(t.records))
	for _, key := range order {
		group := make([]Record, 0, len(index[key]))
		for _, i := range index[key] {
			group = append(group, t.records[i])
		}
		sort.SliceStable(group, func(a, b int) bool { return stepLess(group[a].Step, group[b].Step) })

		values := make([]float64, len(group))
		for i, rec := range group {
			values[i] = rec.Value
		}
		for i, mean := range RollingMean(values, window) {
			group[i].Smoothed = mean
		}
		out = append(out, group...)
	}
	return &Table{records: out}, nil
}

// stepLess orders steps ascending with missing (NaN) steps last.
func stepLess(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}
