package retile

import (
	"fmt"
	"image"

	"figprep/internal/failures"
)

// Layout describes the patch geometry of a retile operation.
type Layout struct {
	// Patch is the edge length of a square patch in pixels.
	Patch int
	// RowLength is the number of patches in the source row.
	RowLength int
	// Rows and Cols give the output grid shape in patches.
	Rows int
	Cols int
}

// Count returns the number of patches placed in the output.
func (l Layout) Count() int {
	return l.Rows * l.Cols
}

// RowExtent returns the pixel size of the source region the patches are cut from.
func (l Layout) RowExtent() image.Point {
	return image.Pt(l.RowLength*l.Patch, l.Patch)
}

// CanvasSize returns the pixel size of the output image.
func (l Layout) CanvasSize() image.Point {
	return image.Pt(l.Cols*l.Patch, l.Rows*l.Patch)
}

// Cell returns the output offset of the patch at source index idx.
func (l Layout) Cell(idx int) image.Point {
	r, c := idx/l.Cols, idx%l.Cols
	return image.Pt(c*l.Patch, r*l.Patch)
}

// Validate checks the layout values and that the grid fits the source row.
func (l Layout) Validate() error {
	switch {
	case l.Patch <= 0:
		return failures.Wrap(failures.ErrConfiguration, "retile", "layout", fmt.Sprintf("patch size must be positive, got %d", l.Patch), nil)
	case l.RowLength <= 0:
		return failures.Wrap(failures.ErrConfiguration, "retile", "layout", fmt.Sprintf("row length must be positive, got %d", l.RowLength), nil)
	case l.Rows <= 0 || l.Cols <= 0:
		return failures.Wrap(failures.ErrConfiguration, "retile", "layout", fmt.Sprintf("grid must be at least 1x1, got %dx%d", l.Rows, l.Cols), nil)
	}
	if l.Count() > l.RowLength {
		return failures.Wrap(failures.ErrInputShape, "retile", "layout",
			fmt.Sprintf("grid %dx%d needs %d patches but the source row has %d", l.Rows, l.Cols, l.Count(), l.RowLength), nil)
	}
	return nil
}

// checkSource verifies the source covers one full row of patches.
func (l Layout) checkSource(bounds image.Rectangle) error {
	need := l.RowExtent()
	if bounds.Dx() < need.X || bounds.Dy() < need.Y {
		return failures.Wrap(failures.ErrInputShape, "retile", "crop",
			fmt.Sprintf("source is %dx%d but one row of %d patches needs %dx%d",
				bounds.Dx(), bounds.Dy(), l.RowLength, need.X, need.Y), nil)
	}
	return nil
}
