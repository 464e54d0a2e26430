// Package viewport turns pointer-drag gestures into scroll offsets and
// holds the visual zoom factor for the tree and timeline views. It only
// moves presentation offsets; layout geometry is never touched here.
package viewport

// Point is a pointer position in view coordinates.
type Point struct {
	X, Y int
}

// Offset is a scroll position.
type Offset struct {
	X, Y int
}

// Phase is the drag state machine's current state.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

// Dragger is the idle -> dragging -> idle state machine. It is decoupled
// from any rendering framework; callers feed it pointer messages and read
// the resulting scroll offset back.
type Dragger struct {
	phase        Phase
	startPointer Point
	startScroll  Offset
	scroll       Offset
}

// PointerDown begins a drag session when the press landed on an eligible
// surface (not on an interactive child element). Presses while already
// dragging are ignored.
func (d *Dragger) PointerDown(p Point, eligible bool) {
	if d.phase != Idle || !eligible {
		return
	}
	d.phase = Dragging
	d.startPointer = p
	d.startScroll = d.scroll
}

// PointerMove updates the scroll offset while dragging:
// scroll = initialScroll - (currentPointer - startPointer).
func (d *Dragger) PointerMove(p Point) {
	if d.phase != Dragging {
		return
	}
	d.scroll = Offset{
		X: d.startScroll.X - (p.X - d.startPointer.X),
		Y: d.startScroll.Y - (p.Y - d.startPointer.Y),
	}
}

// PointerUp ends the drag session. The pointer leaving the surface is
// treated the same way.
func (d *Dragger) PointerUp() {
	d.phase = Idle
}

// Dragging reports whether a drag session is active.
func (d *Dragger) Dragging() bool {
	return d.phase == Dragging
}

// Scroll returns the current scroll offset.
func (d *Dragger) Scroll() Offset {
	return d.scroll
}

// SetScroll moves the viewport programmatically (e.g. jump to today).
// Calling it mid-drag rebases the session so the next move doesn't snap
// back.
func (d *Dragger) SetScroll(o Offset) {
	d.scroll = o
	d.startScroll = o
}
