package retile

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Patches cuts the first row of src into RowLength square patches.
func Patches(src image.Image, layout Layout) ([]*image.NRGBA, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := layout.checkSource(src.Bounds()); err != nil {
		return nil, err
	}

	origin := src.Bounds().Min
	row := imaging.Crop(src, image.Rectangle{Min: origin, Max: origin.Add(layout.RowExtent())})

	patches := make([]*image.NRGBA, 0, layout.RowLength)
	for col := 0; col < layout.RowLength; col++ {
		left := col * layout.Patch
		patches = append(patches, imaging.Crop(row, image.Rect(left, 0, left+layout.Patch, layout.Patch)))
	}
	return patches, nil
}

// Tile places the first Rows*Cols patches of the source row onto a new
// opaque canvas in row-major order.
func Tile(src image.Image, layout Layout) (*image.NRGBA, error) {
	patches, err := Patches(src, layout)
	if err != nil {
		return nil, err
	}

	size := layout.CanvasSize()
	canvas := imaging.New(size.X, size.Y, color.NRGBA{A: 255})
	for idx := 0; idx < layout.Count(); idx++ {
		canvas = imaging.Paste(canvas, patches[idx], layout.Cell(idx))
	}
	return canvas, nil
}
