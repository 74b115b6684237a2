package svgmorph

import "strings"

// Tuple is an X,Y coordinate
type Tuple [2]float64

// Segment is one normalized curve instruction: either a move (Type MoveTo,
// first two coordinates used) or a cubic Bezier (Type CurveTo, all six
// coordinates used).
type Segment struct {
	Type   CommandType
	Coords [6]float64
}

// moveSegment returns a move to (x, y).
func moveSegment(x, y float64) Segment {
	return Segment{Type: MoveTo, Coords: [6]float64{x, y}}
}

// cubicSegment returns a cubic Bezier ending at (x, y).
func cubicSegment(x1, y1, x2, y2, x, y float64) Segment {
	return Segment{Type: CurveTo, Coords: [6]float64{x1, y1, x2, y2, x, y}}
}

// pointSegment returns a cubic of zero length sitting at (x, y).
func pointSegment(x, y float64) Segment {
	return cubicSegment(x, y, x, y, x, y)
}

// lineSegment returns a straight line from (x1, y1) to (x2, y2) as a cubic
// whose control points equal the endpoints.
func lineSegment(x1, y1, x2, y2 float64) Segment {
	return cubicSegment(x1, y1, x2, y2, x2, y2)
}

// Values returns the coordinates the segment actually uses.
func (s Segment) Values() []float64 {
	if s.Type == MoveTo {
		return s.Coords[:2]
	}
	return s.Coords[:]
}

// End returns the point the segment finishes on.
func (s Segment) End() Tuple {
	if s.Type == MoveTo {
		return Tuple{s.Coords[0], s.Coords[1]}
	}
	return Tuple{s.Coords[4], s.Coords[5]}
}

// Curve is a path made only of move and cubic segments. A Curve built by
// this package always starts with a move.
type Curve []Segment

// String renders the curve as path data, e.g. "M0,0C0,0,10,10,10,10".
func (c Curve) String() string {
	var sb strings.Builder
	for _, s := range c {
		sb.WriteByte(byte(s.Type))
		writeNumbers(&sb, s.Values())
	}
	return sb.String()
}

func (c Curve) clone() Curve {
	return append(Curve(nil), c...)
}

// CurveCalc interpolates every coordinate of two equal-length curves. Segment
// types are taken from from.
func CurveCalc(from, to Curve, t float64) Curve {
	res := make(Curve, len(from))
	for i, s := range from {
		res[i].Type = s.Type
		for j := range s.Coords {
			res[i].Coords[j] = lerp(s.Coords[j], to[i].Coords[j], t)
		}
	}
	return res
}

// curveState is the pen state carried across commands while converting a
// path to curves.
type curveState struct {
	x, y   float64 // current point
	bx, by float64 // second control point of the previous cubic
	mx, my float64 // last move anchor
	qx, qy float64 // control point of the previous quadratic
}

func (st *curveState) advance(s Segment) {
	if s.Type == MoveTo {
		st.x, st.y = s.Coords[0], s.Coords[1]
		st.bx, st.by = st.x, st.y
		return
	}
	st.bx, st.by = s.Coords[2], s.Coords[3]
	st.x, st.y = s.Coords[4], s.Coords[5]
}

// convert turns one absolute command into curve segments. prev is the type of
// the previous source command and drives S and T reflection.
func (st *curveState) convert(c Command, prev CommandType) []Segment {
	a := c.Args
	switch c.Type {
	case MoveTo:
		st.mx, st.my = a[0], a[1]
		return []Segment{moveSegment(a[0], a[1])}
	case LineTo:
		return []Segment{lineSegment(st.x, st.y, a[0], a[1])}
	case HLineTo:
		return []Segment{lineSegment(st.x, st.y, a[0], st.y)}
	case VLineTo:
		return []Segment{lineSegment(st.x, st.y, st.x, a[0])}
	case ClosePath:
		return []Segment{lineSegment(st.x, st.y, st.mx, st.my)}
	case CurveTo:
		return []Segment{cubicSegment(a[0], a[1], a[2], a[3], a[4], a[5])}
	case SmoothCurveTo:
		nx, ny := st.x, st.y
		if prev == CurveTo || prev == SmoothCurveTo {
			nx, ny = st.x*2-st.bx, st.y*2-st.by
		}
		return []Segment{cubicSegment(nx, ny, a[0], a[1], a[2], a[3])}
	case QuadTo:
		st.qx, st.qy = a[0], a[1]
		return []Segment{quadSegment(st.x, st.y, a[0], a[1], a[2], a[3])}
	case SmoothQuadTo:
		if prev == QuadTo || prev == SmoothQuadTo {
			st.qx, st.qy = st.x*2-st.qx, st.y*2-st.qy
		} else {
			st.qx, st.qy = st.x, st.y
		}
		return []Segment{quadSegment(st.x, st.y, st.qx, st.qy, a[0], a[1])}
	case ArcTo:
		return arcSegments(st.x, st.y, a[0], a[1], a[2], a[3] != 0, a[4] != 0, a[5], a[6])
	}
	return []Segment{lineSegment(st.x, st.y, a[len(a)-2], a[len(a)-1])}
}

// quadSegment raises a quadratic Bezier to a cubic.
func quadSegment(x1, y1, ax, ay, x2, y2 float64) Segment {
	const third, twoThirds = 1.0 / 3, 2.0 / 3
	return cubicSegment(
		third*x1+twoThirds*ax,
		third*y1+twoThirds*ay,
		third*x2+twoThirds*ax,
		third*y2+twoThirds*ay,
		x2, y2,
	)
}

// PathToCurve converts path data into a curve on its own, without a
// counterpart path.
func PathToCurve(d string) Curve {
	return CurveFromPath(ParsePath(d))
}

// CurveFromPath converts parsed commands into a curve.
func CurveFromPath(p Path) Curve {
	abs := AbsolutePath(p)
	var (
		st   curveState
		prev CommandType
		res  = make(Curve, 0, len(abs))
	)
	for _, c := range abs {
		for _, s := range st.convert(c, prev) {
			res = append(res, s)
			st.advance(s)
		}
		prev = c.Type
	}
	return res
}
