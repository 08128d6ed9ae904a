package input

import (
	"image"
	"sync"
)

// A Surface is the region receiving pointer input. Rect returns its
// current on-screen bounds and is queried on every event.
type Surface interface {
	Rect() image.Rectangle
}

// SurfaceFunc adapts a function to a Surface.
type SurfaceFunc func() image.Rectangle

// Rect calls f.
func (f SurfaceFunc) Rect() image.Rectangle {
	return f()
}

// StaticSurface is a Surface that never moves.
type StaticSurface image.Rectangle

// Rect returns the rectangle.
func (s StaticSurface) Rect() image.Rectangle {
	return image.Rectangle(s)
}

// A RemoteSurface is a Surface whose bounds are reported by a remote client
// (see SurfaceEvent). It is safe for concurrent use.
type RemoteSurface struct {
	mu   sync.Mutex
	rect image.Rectangle
}

// Set replaces the bounds.
func (rs *RemoteSurface) Set(rect image.Rectangle) {
	rs.mu.Lock()
	rs.rect = rect
	rs.mu.Unlock()
}

// Update applies a SurfaceEvent.
func (rs *RemoteSurface) Update(ev SurfaceEvent) {
	rs.Set(image.Rect(ev.Left, ev.Top, ev.Left+ev.Width, ev.Top+ev.Height))
}

// Rect returns the last reported bounds.
func (rs *RemoteSurface) Rect() image.Rectangle {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.rect
}

// TranslatePoint converts a raw position to one relative to rect's origin.
// Fractional device pixels truncate; nothing is clamped.
func TranslatePoint(x, y float64, rect image.Rectangle) Position {
	return Position{
		X: int(x) - rect.Min.X,
		Y: int(y) - rect.Min.Y,
	}
}

// A Translator converts raw positions to surface-relative ones.
type Translator struct {
	surface Surface
}

// NewTranslator returns a Translator for the given surface. A nil surface
// translates against the origin.
func NewTranslator(surface Surface) *Translator {
	return &Translator{surface: surface}
}

// Translate converts a raw position using the surface's current bounds.
func (t *Translator) Translate(x, y float64) Position {
	var rect image.Rectangle
	if t.surface != nil {
		rect = t.surface.Rect()
	}
	return TranslatePoint(x, y, rect)
}
