package plot

import "figprep/internal/metrics"

// Panel is one metric slot of a figure. Hidden panels keep their slot so the
// layout is identical across experiments.
type Panel struct {
	Kind    Kind
	Title   string
	XLabel  string
	YLabel  string
	Visible bool
	Steps   []float64
	Values  []float64
}

// Figure groups the panels drawn for one experiment.
type Figure struct {
	Experiment string
	Panels     []Panel
}

// Title returns the suptitle drawn above the panels.
func (f Figure) Title() string {
	return "Training Curves: " + f.Experiment
}

// VisiblePanels returns the kinds that have data, in panel order.
func (f Figure) VisiblePanels() []Kind {
	var kinds []Kind
	for _, p := range f.Panels {
		if p.Visible {
			kinds = append(kinds, p.Kind)
		}
	}
	return kinds
}

// Points returns the total number of plotted points across visible panels.
func (f Figure) Points() int {
	total := 0
	for _, p := range f.Panels {
		if p.Visible {
			total += len(p.Steps)
		}
	}
	return total
}

// Build returns one figure per experiment in the table, sorted by label, with
// one panel per kind in the given order. Panel values come from the Smoothed
// column, so the table is expected to have passed through metrics.Smooth.
// Metrics not listed in kinds are ignored.
func Build(t *metrics.Table, kinds []Kind) []Figure {
	experiments := t.Experiments()
	figures := make([]Figure, 0, len(experiments))
	for _, exp := range experiments {
		fig := Figure{Experiment: exp, Panels: make([]Panel, 0, len(kinds))}
		for _, kind := range kinds {
			xLabel, yLabel := kind.AxisLabels()
			panel := Panel{Kind: kind, Title: kind.Title(), XLabel: xLabel, YLabel: yLabel}
			for _, rec := range t.Series(exp, string(kind)) {
				panel.Steps = append(panel.Steps, rec.Step)
				panel.Values = append(panel.Values, rec.Smoothed)
			}
			panel.Visible = len(panel.Steps) > 0
			fig.Panels = append(fig.Panels, panel)
		}
		figures = append(figures, fig)
	}
	return figures
}
