// Package platform exposes local displays as pointer surfaces.
package platform

import (
	"image"

	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"
)

// Displays returns the bounds of every active display in global screen
// coordinates.
func Displays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// A DisplaySurface is the area of one local display. Its bounds are looked
// up on every query so a rearranged or resized display is picked up.
type DisplaySurface struct {
	display int
}

// NewDisplaySurface returns a surface for the display with the given index.
func NewDisplaySurface(display int) (*DisplaySurface, error) {
	if display < 0 {
		return nil, errors.Errorf("invalid display %d", display)
	}
	if n := screenshot.NumActiveDisplays(); display >= n {
		return nil, errors.Errorf("display %d not found (%d active)", display, n)
	}
	return &DisplaySurface{display: display}, nil
}

// Rect returns the display bounds, or an empty rectangle once the display
// is gone.
func (ds *DisplaySurface) Rect() image.Rectangle {
	if ds.display >= screenshot.NumActiveDisplays() {
		return image.Rectangle{}
	}
	return screenshot.GetDisplayBounds(ds.display)
}
