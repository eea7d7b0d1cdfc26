package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"figprep/internal/fileutil"
)

// Default figure geometry in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 350
	headerHeight  = 30
)

var (
	lineColor = drawing.ColorFromHex("1f77b4")
	gridColor = drawing.ColorFromHex("dddddd")
)

// Renderer draws figures at a fixed pixel size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a renderer for width x height figures; non-positive
// values fall back to the defaults.
func NewRenderer(width, height int) Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return Renderer{Width: width, Height: height}
}

// PanelSize returns the pixel size of one panel slot for a figure with n panels.
func (r Renderer) PanelSize(n int) image.Point {
	if n < 1 {
		n = 1
	}
	return image.Pt(r.Width/n, r.Height-headerHeight)
}

// Compose draws the figure onto a white canvas: the suptitle in a header band
// and each visible panel in its slot, left to right.
func (r Renderer) Compose(fig Figure) (*image.NRGBA, error) {
	canvas := imaging.New(r.Width, r.Height, color.White)
	drawTitle(canvas, fig.Title(), headerHeight)

	slot := r.PanelSize(len(fig.Panels))
	for i, panel := range fig.Panels {
		if !panel.Visible {
			continue
		}
		img, err := renderPanel(panel, slot)
		if err != nil {
			return nil, fmt.Errorf("%s panel %s: %w", fig.Experiment, panel.Kind, err)
		}
		canvas = imaging.Paste(canvas, img, image.Pt(i*slot.X, headerHeight))
	}
	return canvas, nil
}

// Render composes the figure and writes it to path, replacing any existing
// file. The image format follows the path extension.
func (r Renderer) Render(fig Figure, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return err
	}
	img, err := r.Compose(fig)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return imaging.Encode(w, img, format)
	})
}

func renderPanel(panel Panel, size image.Point) (image.Image, error) {
	xs, ys := plottable(panel.Steps, panel.Values)
	if len(xs) == 0 {
		return imaging.New(size.X, size.Y, color.White), nil
	}
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}

	grid := chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
	ch := chart.Chart{
		Title:      panel.Title,
		Width:      size.X,
		Height:     size.Y,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 12, Right: 16, Bottom: 8}},
		XAxis: chart.XAxis{
			Name:           panel.XLabel,
			Range:          stepRange(xs),
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           panel.YLabel,
			Range:          paddedRange(ys),
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    panel.Title,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: lineColor, StrokeWidth: 2},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return imaging.Decode(&buf)
}

// plottable drops points whose step or value is not finite.
func plottable(steps, values []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(steps))
	ys := make([]float64, 0, len(values))
	for i := range steps {
		if i >= len(values) || !finite(steps[i]) || !finite(values[i]) {
			continue
		}
		xs = append(xs, steps[i])
		ys = append(ys, values[i])
	}
	return xs, ys
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// paddedRange spans values with a small margin on both sides and never collapses to zero width.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := bounds(values)
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.05, 0.5)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// stepRange starts at the first step and pads only past the last one, so step
// and epoch axes never show ticks below the data.
func stepRange(steps []float64) *chart.ContinuousRange {
	lo, hi := bounds(steps)
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.05}
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func drawTitle(dst *image.NRGBA, title string, band int) {
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(color.Black), Face: face}
	width := dr.MeasureString(title).Ceil()
	x := (dst.Bounds().Dx() - width) / 2
	if x < 0 {
		x = 0
	}
	y := (band + face.Metrics().Ascent.Ceil()) / 2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(title)
}
