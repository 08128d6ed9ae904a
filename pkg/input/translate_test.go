package input_test

import (
	"image"
	"testing"

	"go.viam.com/test"

	"github.com/edaniels/gopointer/pkg/input"
)

func TestTranslatePoint(t *testing.T) {
	rect := image.Rect(10, 10, 110, 60)
	pos := input.TranslatePoint(50, 20, rect)
	test.That(t, pos, test.ShouldResemble, input.Position{X: 40, Y: 10})

	// fractional device pixels truncate
	pos = input.TranslatePoint(50.9, 20.2, rect)
	test.That(t, pos, test.ShouldResemble, input.Position{X: 40, Y: 10})

	// no clamping outside the surface
	pos = input.TranslatePoint(5, 500, rect)
	test.That(t, pos, test.ShouldResemble, input.Position{X: -5, Y: 490})

	pos = input.TranslatePoint(7, 8, image.Rectangle{})
	test.That(t, pos, test.ShouldResemble, input.Position{X: 7, Y: 8})
}

func TestTranslatorRequeriesSurface(t *testing.T) {
	rect := image.Rect(10, 10, 20, 20)
	queries := 0
	tr := input.NewTranslator(input.SurfaceFunc(func() image.Rectangle {
		queries++
		return rect
	}))
	test.That(t, tr.Translate(50, 20), test.ShouldResemble, input.Position{X: 40, Y: 10})

	// the surface scrolled between events
	rect = image.Rect(0, 5, 10, 15)
	test.That(t, tr.Translate(50, 20), test.ShouldResemble, input.Position{X: 50, Y: 15})
	test.That(t, queries, test.ShouldEqual, 2)

	test.That(t, input.NewTranslator(nil).Translate(3, 4), test.ShouldResemble, input.Position{X: 3, Y: 4})
}

func TestRemoteSurface(t *testing.T) {
	var rs input.RemoteSurface
	test.That(t, rs.Rect(), test.ShouldResemble, image.Rectangle{})
	rs.Update(input.SurfaceEvent{Left: 10, Top: 20, Width: 300, Height: 200})
	test.That(t, rs.Rect(), test.ShouldResemble, image.Rect(10, 20, 310, 220))

	tr := input.NewTranslator(&rs)
	test.That(t, tr.Translate(15, 25), test.ShouldResemble, input.Position{X: 5, Y: 5})
}
