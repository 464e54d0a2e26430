package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragger_FullGesture(t *testing.T) {
	var d Dragger

	d.PointerDown(Point{X: 100, Y: 40}, true)
	assert.True(t, d.Dragging())

	// Moving the pointer right/down scrolls the content left/up.
	d.PointerMove(Point{X: 130, Y: 50})
	assert.Equal(t, Offset{X: -30, Y: -10}, d.Scroll())

	d.PointerMove(Point{X: 90, Y: 35})
	assert.Equal(t, Offset{X: 10, Y: 5}, d.Scroll())

	d.PointerUp()
	assert.False(t, d.Dragging())
}

func TestDragger_StartsFromExistingScroll(t *testing.T) {
	var d Dragger
	d.SetScroll(Offset{X: 50, Y: 20})

	d.PointerDown(Point{X: 0, Y: 0}, true)
	d.PointerMove(Point{X: 10, Y: -5})

	assert.Equal(t, Offset{X: 40, Y: 25}, d.Scroll())
}

func TestDragger_IneligibleSurfaceIgnored(t *testing.T) {
	var d Dragger

	d.PointerDown(Point{X: 5, Y: 5}, false)
	assert.False(t, d.Dragging())

	d.PointerMove(Point{X: 50, Y: 50})
	assert.Equal(t, Offset{}, d.Scroll())
}

func TestDragger_MoveWhileIdleIgnored(t *testing.T) {
	var d Dragger

	d.PointerMove(Point{X: 50, Y: 50})
	assert.Equal(t, Offset{}, d.Scroll())
}

func TestDragger_SecondSessionResumesFromLastOffset(t *testing.T) {
	var d Dragger

	d.PointerDown(Point{X: 0, Y: 0}, true)
	d.PointerMove(Point{X: 20, Y: 0})
	d.PointerUp()
	assert.Equal(t, Offset{X: -20}, d.Scroll())

	d.PointerDown(Point{X: 200, Y: 0}, true)
	d.PointerMove(Point{X: 210, Y: 0})
	assert.Equal(t, Offset{X: -30}, d.Scroll())
}

func TestZoom_DefaultIsOne(t *testing.T) {
	var z Zoom
	assert.InDelta(t, 1.0, z.Factor(), 1e-9)
}

func TestZoom_StepAndClamp(t *testing.T) {
	var z Zoom

	for i := 0; i < 20; i++ {
		z.In()
	}
	assert.InDelta(t, 1.5, z.Factor(), 1e-9)

	for i := 0; i < 20; i++ {
		z.Out()
	}
	assert.InDelta(t, 0.6, z.Factor(), 1e-9)

	z.In()
	assert.InDelta(t, 0.7, z.Factor(), 1e-9)

	z.Reset()
	assert.InDelta(t, 1.0, z.Factor(), 1e-9)
}
