package plot_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"

	"figprep/internal/failures"
	"figprep/internal/logging"
	"figprep/internal/metrics"
	"figprep/internal/plot"
	"figprep/internal/testsupport"
	"figprep/internal/workspace"
)

func smoothedTable(t *testing.T, records ...metrics.Record) *metrics.Table {
	t.Helper()
	table, err := metrics.Smooth(metrics.NewTable(records), 1)
	if err != nil {
		t.Fatalf("Smooth: %v", err)
	}
	return table
}

func TestBuildOneFigurePerExperimentWithFixedSlots(t *testing.T) {
	table := smoothedTable(t,
		metrics.Record{Experiment: "expB", Metric: "ssim", Step: 1, Value: 0.9},
		metrics.Record{Experiment: "expA", Metric: "loss", Step: 0, Value: 0.7},
		metrics.Record{Experiment: "expA", Metric: "loss", Step: 1, Value: 0.5},
		metrics.Record{Experiment: "expA", Metric: "psnr", Step: 1, Value: 28},
		metrics.Record{Experiment: "expA", Metric: "lr", Step: 1, Value: 0.001},
	)

	figures := plot.Build(table, plot.DefaultKinds)
	if len(figures) != 2 {
		t.Fatalf("expected 2 figures, got %d", len(figures))
	}
	if figures[0].Experiment != "expA" || figures[1].Experiment != "expB" {
		t.Fatalf("figures not sorted: %q, %q", figures[0].Experiment, figures[1].Experiment)
	}
	for _, fig := range figures {
		if len(fig.Panels) != 3 {
			t.Fatalf("%s: expected 3 panel slots, got %d", fig.Experiment, len(fig.Panels))
		}
	}
	if diff := cmp.Diff([]plot.Kind{plot.KindLoss, plot.KindPSNR}, figures[0].VisiblePanels()); diff != "" {
		t.Fatalf("expA visible panels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]plot.Kind{plot.KindSSIM}, figures[1].VisiblePanels()); diff != "" {
		t.Fatalf("expB visible panels (-want +got):\n%s", diff)
	}
	if got := figures[0].Points(); got != 3 {
		t.Fatalf("expected 3 plotted points for expA, got %d", got)
	}
	if diff := cmp.Diff([]float64{0, 1}, figures[0].Panels[0].Steps); diff != "" {
		t.Fatalf("loss steps (-want +got):\n%s", diff)
	}
}

func TestBuildLabels(t *testing.T) {
	table := smoothedTable(t, metrics.Record{Experiment: "e", Metric: "loss", Step: 0, Value: 1})
	panels := plot.Build(table, plot.DefaultKinds)[0].Panels

	want := []struct{ title, x, y string }{
		{"LOSS", "Training Step", "Loss"},
		{"PSNR", "Epochs", "PSNR (dB)"},
		{"SSIM", "Epochs", "SSIM"},
	}
	for i, w := range want {
		p := panels[i]
		if p.Title != w.title || p.XLabel != w.x || p.YLabel != w.y {
			t.Fatalf("panel %d: got (%q, %q, %q) want (%q, %q, %q)", i, p.Title, p.XLabel, p.YLabel, w.title, w.x, w.y)
		}
	}
}

func TestBuildExperimentWithOnlyUnknownMetrics(t *testing.T) {
	table := smoothedTable(t, metrics.Record{Experiment: "expC", Metric: "lr", Step: 0, Value: 1})
	figures := plot.Build(table, plot.DefaultKinds)
	if len(figures) != 1 || len(figures[0].VisiblePanels()) != 0 {
		t.Fatalf("expected one figure with all panels hidden, got %+v", figures)
	}
}

func TestComposeProducesConfiguredSize(t *testing.T) {
	table := smoothedTable(t,
		metrics.Record{Experiment: "expA", Metric: "loss", Step: 0, Value: 0.7},
		metrics.Record{Experiment: "expA", Metric: "loss", Step: 10, Value: 0.3},
		metrics.Record{Experiment: "expA", Metric: "psnr", Step: 1, Value: 27},
	)
	fig := plot.Build(table, plot.DefaultKinds)[0]
	renderer := plot.NewRenderer(900, 300)

	img, err := renderer.Compose(fig)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if img.Bounds().Size() != image.Pt(900, 300) {
		t.Fatalf("unexpected canvas size %v", img.Bounds().Size())
	}

	// The ssim slot has no data and stays white.
	slot := renderer.PanelSize(3)
	for _, pt := range []image.Point{{2*slot.X + 10, 100}, {2*slot.X + slot.X/2, 200}} {
		if got := img.NRGBAAt(pt.X, pt.Y); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Fatalf("hidden slot pixel %v is %v, want white", pt, got)
		}
	}
}

func TestComposeHandlesFlatSeries(t *testing.T) {
	fig := plot.Figure{
		Experiment: "flat",
		Panels: []plot.Panel{
			{Kind: plot.KindLoss, Title: "LOSS", Visible: true, Steps: []float64{3, 3}, Values: []float64{0, 0}},
			{Kind: plot.KindPSNR, Title: "PSNR", Visible: true, Steps: []float64{5}, Values: []float64{30}},
		},
	}
	if _, err := plot.NewRenderer(0, 0).Compose(fig); err != nil {
		t.Fatalf("Compose flat series: %v", err)
	}
}

func TestRunWritesOneFigurePerExperiment(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWindow(2))
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "expA_loss.csv", testsupport.TensorBoardHeader, "0,0,0.9", "0,1,0.6", "0,2,0.4")
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "expA_psnr.csv", testsupport.TensorBoardHeader, "0,1,25", "0,2,27")

	summary, err := plot.Run(context.Background(), logging.NewNop(), plot.Options{
		CSVDir: cfg.Plot.CSVDir,
		OutDir: cfg.Plot.OutDir,
		Window: cfg.Plot.Window,
		Width:  cfg.Plot.Width,
		Height: cfg.Plot.Height,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Figures) != 1 {
		t.Fatalf("expected one figure, got %d", len(summary.Figures))
	}
	out := summary.Figures[0]
	if out.Experiment != "expA" || out.Points != 5 || out.Path != filepath.Join(cfg.Plot.OutDir, "expA_curves.png") {
		t.Fatalf("unexpected output %+v", out)
	}
	if diff := cmp.Diff([]plot.Kind{plot.KindLoss, plot.KindPSNR}, out.Panels); diff != "" {
		t.Fatalf("visible panels (-want +got):\n%s", diff)
	}

	img, err := imaging.Open(out.Path)
	if err != nil {
		t.Fatalf("open figure: %v", err)
	}
	if img.Bounds().Size() != image.Pt(cfg.Plot.Width, cfg.Plot.Height) {
		t.Fatalf("unexpected figure size %v", img.Bounds().Size())
	}
}

func TestRunEmptyDirectoryWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Plot.CSVDir, 0o755); err != nil {
		t.Fatal(err)
	}

	summary, err := plot.Run(context.Background(), logging.NewNop(), plot.Options{
		CSVDir: cfg.Plot.CSVDir,
		OutDir: cfg.Plot.OutDir,
		Window: 5,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Figures) != 0 {
		t.Fatalf("expected no figures, got %d", len(summary.Figures))
	}
	entries, err := os.ReadDir(cfg.Plot.OutDir)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != workspace.LockFileName {
			t.Fatalf("expected no figures, found %s", entry.Name())
		}
	}
}

func TestRunFormatErrorWritesNoFigures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "expA_loss.csv", testsupport.TensorBoardHeader, "0,0,1")
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "expB_loss.csv", "Wall time,Step", "0,0")

	summary, err := plot.Run(context.Background(), logging.NewNop(), plot.Options{
		CSVDir: cfg.Plot.CSVDir,
		OutDir: cfg.Plot.OutDir,
		Window: 5,
	})
	if !errors.Is(err, failures.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	if len(summary.Figures) != 0 {
		t.Fatalf("expected no figures, got %d", len(summary.Figures))
	}
	if _, err := os.Stat(filepath.Join(cfg.Plot.OutDir, "expA_curves.png")); !os.IsNotExist(err) {
		t.Fatalf("expected no figure for expA, stat err=%v", err)
	}
}

func TestRunRejectsCollidingFigureNames(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "run:1_loss.csv", testsupport.TensorBoardHeader, "0,0,1", "0,1,2")
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "run-1_loss.csv", testsupport.TensorBoardHeader, "0,0,3", "0,1,4")

	summary, err := plot.Run(context.Background(), logging.NewNop(), plot.Options{
		CSVDir: cfg.Plot.CSVDir,
		OutDir: cfg.Plot.OutDir,
		Window: 5,
	})
	if !errors.Is(err, failures.ErrOutput) {
		t.Fatalf("expected output error, got %v", err)
	}
	if len(summary.Figures) != 0 {
		t.Fatalf("expected no figures, got %d", len(summary.Figures))
	}
	if _, err := os.Stat(filepath.Join(cfg.Plot.OutDir, "run-1_curves.png")); !os.IsNotExist(err) {
		t.Fatalf("expected no figure written, stat err=%v", err)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteCSV(t, cfg.Plot.CSVDir, "expA_loss.csv", testsupport.TensorBoardHeader, "0,0,1", "0,1,2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := plot.Run(ctx, logging.NewNop(), plot.Options{CSVDir: cfg.Plot.CSVDir, OutDir: cfg.Plot.OutDir, Window: 5})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestKindTitleAndParse(t *testing.T) {
	if got := plot.KindPSNR.Title(); got != "PSNR" {
		t.Fatalf("title = %q", got)
	}
	got := plot.ParseKinds([]string{"ssim", "", "loss", "ssim"})
	if diff := cmp.Diff([]plot.Kind{plot.KindSSIM, plot.KindLoss}, got); diff != "" {
		t.Fatalf("ParseKinds (-want +got):\n%s", diff)
	}
}
