package viewport

// Zoom bounds, in tenths to keep the arithmetic exact.
const (
	zoomMinTenths  = 6  // 0.6
	zoomMaxTenths  = 15 // 1.5
	zoomStepTenths = 1  // 0.1
)

// Zoom holds the visual scale factor for a view. It is applied as a
// transform at render time only; underlying layout geometry is computed
// once and never rescaled. The zero value means 1.0.
type Zoom struct {
	tenths int
}

func (z *Zoom) current() int {
	if z.tenths == 0 {
		return 10
	}
	return z.tenths
}

// Factor returns the scale in [0.6, 1.5].
func (z *Zoom) Factor() float64 {
	return float64(z.current()) / 10
}

// In zooms in one step, clamped at 1.5.
func (z *Zoom) In() {
	z.tenths = z.current() + zoomStepTenths
	if z.tenths > zoomMaxTenths {
		z.tenths = zoomMaxTenths
	}
}

// Out zooms out one step, clamped at 0.6.
func (z *Zoom) Out() {
	z.tenths = z.current() - zoomStepTenths
	if z.tenths < zoomMinTenths {
		z.tenths = zoomMinTenths
	}
}

// Reset returns the zoom to 1.0.
func (z *Zoom) Reset() {
	z.tenths = 10
}
