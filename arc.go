package svgmorph

import "math"

// arcSplit is the largest sweep a single cubic may approximate.
const arcSplit = math.Pi * 120 / 180

// arcSegments converts an elliptical arc from (x1, y1) to (x2, y2) into cubic
// segments using the endpoint to center parameterization, see
// http://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes.
// Sweeps wider than 120° are split so no cubic covers more than that.
func arcSegments(x1, y1, rx, ry, angle float64, largeArc, sweep bool, x2, y2 float64) []Segment {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || (x1 == x2 && y1 == y2) {
		return []Segment{lineSegment(x1, y1, x2, y2)}
	}
	endX, endY := x2, y2

	rad := math.Pi / 180 * angle
	x1, y1 = rotatePoint(x1, y1, -rad)
	x2, y2 = rotatePoint(x2, y2, -rad)

	x := (x1 - x2) / 2
	y := (y1 - y2) / 2
	if h := x*x/(rx*rx) + y*y/(ry*ry); h > 1 {
		h = math.Sqrt(h)
		rx *= h
		ry *= h
	}

	rx2, ry2 := rx*rx, ry*ry
	sign := 1.0
	if largeArc == sweep {
		sign = -1
	}
	k := sign * math.Sqrt(math.Abs((rx2*ry2-rx2*y*y-ry2*x*x)/(rx2*y*y+ry2*x*x)))
	cx := k*rx*y/ry + (x1+x2)/2
	cy := k*-ry*x/rx + (y1+y2)/2

	f1 := math.Asin(unitRound((y1 - cy) / ry))
	f2 := math.Asin(unitRound((y2 - cy) / ry))
	if x1 < cx {
		f1 = math.Pi - f1
	}
	if x2 < cx {
		f2 = math.Pi - f2
	}
	if f1 < 0 {
		f1 += math.Pi * 2
	}
	if f2 < 0 {
		f2 += math.Pi * 2
	}
	if sweep && f1 > f2 {
		f1 -= math.Pi * 2
	}
	if !sweep && f2 > f1 {
		f2 -= math.Pi * 2
	}

	var res []Segment
	for {
		last := math.Abs(f2-f1) <= arcSplit
		to, tx, ty := f2, x2, y2
		if !last {
			dir := -1.0
			if sweep && f2 > f1 {
				dir = 1
			}
			to = f1 + arcSplit*dir
			tx = cx + rx*math.Cos(to)
			ty = cy + ry*math.Sin(to)
		}
		res = append(res, arcPiece(x1, y1, tx, ty, f1, to, rx, ry))
		if last {
			break
		}
		f1, x1, y1 = to, tx, ty
	}

	for i := range res {
		c := &res[i].Coords
		for j := 0; j < len(c); j += 2 {
			c[j], c[j+1] = rotatePoint(c[j], c[j+1], rad)
		}
	}
	// rotating back drifts by a few ulps; the arc must land on its endpoint
	res[len(res)-1].Coords[4] = endX
	res[len(res)-1].Coords[5] = endY
	return res
}

// arcPiece approximates the arc between angles f1 and f2 (at most 120°
// apart) with one cubic, in the unrotated frame.
func arcPiece(x1, y1, x2, y2, f1, f2, rx, ry float64) Segment {
	t := math.Tan((f2 - f1) / 4)
	hx := 4.0 / 3 * rx * t
	hy := 4.0 / 3 * ry * t
	c1, s1 := math.Cos(f1), math.Sin(f1)
	c2, s2 := math.Cos(f2), math.Sin(f2)
	return cubicSegment(
		x1-hx*s1, y1+hy*c1,
		x2+hx*s2, y2-hy*c2,
		x2, y2,
	)
}

func rotatePoint(x, y, rad float64) (float64, float64) {
	sin, cos := math.Sincos(rad)
	return x*cos - y*sin, x*sin + y*cos
}

// unitRound rounds v to nine decimals and clamps it to [-1, 1] so rounding
// noise never pushes math.Asin out of its domain.
func unitRound(v float64) float64 {
	v = math.Round(v*1e9) / 1e9
	return clamp(v, -1, 1)
}
