package svgmorph

import "math"

// BoundingBox is the axis-aligned bounds of a curve together with its
// center. It is always derived from curve data.
type BoundingBox struct {
	X, Y          float64
	Width, Height float64
	CX, CY        float64
}

// Center returns the center point of the box.
func (bb BoundingBox) Center() Tuple {
	return Tuple{bb.CX, bb.CY}
}

func newBoundingBox(x, y, w, h float64) BoundingBox {
	return BoundingBox{X: x, Y: y, Width: w, Height: h, CX: x + w/2, CY: y + h/2}
}

// BBox computes the bounds of c, including the extrema of every cubic.
// An empty curve yields the zero box.
func (c Curve) BBox() BoundingBox {
	if len(c) == 0 {
		return BoundingBox{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	include := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	var x, y float64
	for _, s := range c {
		if s.Type == MoveTo {
			x, y = s.Coords[0], s.Coords[1]
			include(x, y)
			continue
		}
		p := s.Coords
		lo, hi := cubicExtent(x, y, p[0], p[1], p[2], p[3], p[4], p[5])
		include(lo[0], lo[1])
		include(hi[0], hi[1])
		x, y = p[4], p[5]
	}
	return newBoundingBox(minX, minY, maxX-minX, maxY-minY)
}

// PathBBox returns the bounds of the curve built from path data.
func PathBBox(d string) BoundingBox {
	return PathToCurve(d).BBox()
}

// cubicExtent returns the min and max corners of a cubic Bezier by
// evaluating it at the roots of its derivative.
func cubicExtent(x0, y0, x1, y1, x2, y2, x3, y3 float64) (lo, hi Tuple) {
	ts := make([]float64, 0, 4)
	for i := 0; i < 2; i++ {
		var a, b, c float64
		if i == 0 {
			b = 6*x0 - 12*x1 + 6*x2
			a = -3*x0 + 9*x1 - 9*x2 + 3*x3
			c = 3*x1 - 3*x0
		} else {
			b = 6*y0 - 12*y1 + 6*y2
			a = -3*y0 + 9*y1 - 9*y2 + 3*y3
			c = 3*y1 - 3*y0
		}
		if math.Abs(a) < 1e-12 {
			if math.Abs(b) < 1e-12 {
				continue
			}
			if t := -c / b; 0 < t && t < 1 {
				ts = append(ts, t)
			}
			continue
		}
		b2ac := b*b - 4*c*a
		if b2ac < 0 {
			continue
		}
		sq := math.Sqrt(b2ac)
		if t := (-b + sq) / (2 * a); 0 < t && t < 1 {
			ts = append(ts, t)
		}
		if t := (-b - sq) / (2 * a); 0 < t && t < 1 {
			ts = append(ts, t)
		}
	}

	lo = Tuple{math.Min(x0, x3), math.Min(y0, y3)}
	hi = Tuple{math.Max(x0, x3), math.Max(y0, y3)}
	for _, t := range ts {
		mt := 1 - t
		x := mt*mt*mt*x0 + 3*mt*mt*t*x1 + 3*mt*t*t*x2 + t*t*t*x3
		y := mt*mt*mt*y0 + 3*mt*mt*t*y1 + 3*mt*t*t*y2 + t*t*t*y3
		lo = Tuple{math.Min(lo[0], x), math.Min(lo[1], y)}
		hi = Tuple{math.Max(hi[0], x), math.Max(hi[1], y)}
	}
	return lo, hi
}
