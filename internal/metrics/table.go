package metrics

import "sort"

// Record is one (step, value) observation of a metric series.
type Record struct {
	Experiment string
	Metric     string
	Step       float64
	Value      float64
	// Smoothed holds the rolling mean once the table has passed through Smooth.
	Smoothed float64
	// Source is the CSV file the record was read from.
	Source string
}

// Key identifies a series.
type Key struct {
	Experiment string
	Metric     string
}

// Key returns the series the record belongs to.
func (r Record) Key() Key {
	return Key{Experiment: r.Experiment, Metric: r.Metric}
}

// Table is an ordered collection of metric records.
type Table struct {
	records []Record
}

// NewTable copies records into a new table.
func NewTable(records []Record) *Table {
	return &Table{records: append([]Record(nil), records...)}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of the records in table order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return append([]Record(nil), t.records...)
}

// Experiments returns the distinct experiment labels in sorted order.
func (t *Table) Experiments() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var labels []string
	for _, rec := range t.records {
		if _, ok := seen[rec.Experiment]; ok {
			continue
		}
		seen[rec.Experiment] = struct{}{}
		labels = append(labels, rec.Experiment)
	}
	sort.Strings(labels)
	return labels
}

// Series returns the records of one (experiment, metric) group in table order.
func (t *Table) Series(experiment, metric string) []Record {
	if t == nil {
		return nil
	}
	var out []Record
	for _, rec := range t.records {
		if rec.Experiment == experiment && rec.Metric == metric {
			out = append(out, rec)
		}
	}
	return out
}

// groups partitions record indexes by series, preserving first-appearance
// order of the series and table order within each.
func (t *Table) groups() ([]Key, map[Key][]int) {
	var order []Key
	index := make(map[Key][]int)
	for i, rec := range t.records {
		key := rec.Key()
		if _, ok := index[key]; !ok {
			order = append(order, key)
		}
		index[key] = append(index[key], i)
	}
	return order, index
}
