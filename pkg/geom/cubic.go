package geom

// Cubic is a cubic Bezier segment from P0 to P3 with control points P1, P2.
type Cubic struct {
	P0, P1, P2, P3 Vec
}

// At evaluates the curve at t in [0,1] by repeated linear interpolation.
func (c Cubic) At(t float64) Vec {
	a := c.P0.Lerp(c.P1, t)
	b := c.P1.Lerp(c.P2, t)
	d := c.P2.Lerp(c.P3, t)
	ab := a.Lerp(b, t)
	bd := b.Lerp(d, t)
	return ab.Lerp(bd, t)
}

// Flatten samples the curve into n+1 points including both ends.
func (c Cubic) Flatten(n int) []Vec {
	if n < 1 {
		n = 1
	}
	pts := make([]Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, c.At(float64(i)/float64(n)))
	}
	return pts
}

// Hull returns the bounding box of the four control points. The curve is
// always contained in it.
func (c Cubic) Hull() Rect {
	r := Rect{Min: c.P0, Max: c.P0}
	for _, p := range []Vec{c.P1, c.P2, c.P3} {
		r = r.Extend(Rect{Min: p, Max: p})
	}
	return r
}

// PathData renders the curve as an SVG path "d" attribute.
func (c Cubic) PathData() string {
	return "M" + c.P0.String() + " C" + c.P1.String() + " " + c.P2.String() + " " + c.P3.String()
}
