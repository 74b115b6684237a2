package svgmorph

// curveWalker yields the converted segments of one side of a path pair one
// at a time, keeping the pen state of that side.
type curveWalker struct {
	src     Path
	next    int
	pending []Segment
	prev    CommandType
	st      curveState
}

func newCurveWalker(d string) *curveWalker {
	return &curveWalker{src: ToAbsolute(d)}
}

func (w *curveWalker) done() bool {
	return len(w.pending) == 0 && w.next >= len(w.src)
}

// peek returns the next segment without consuming it. An exhausted walker
// keeps yielding zero-length cubics at its last point.
func (w *curveWalker) peek() Segment {
	if len(w.pending) == 0 {
		if w.next >= len(w.src) {
			return pointSegment(w.st.x, w.st.y)
		}
		c := w.src[w.next]
		w.next++
		w.pending = w.st.convert(c, w.prev)
		w.prev = c.Type
	}
	return w.pending[0]
}

func (w *curveWalker) pop() Segment {
	s := w.peek()
	if len(w.pending) > 0 {
		w.pending = w.pending[1:]
	}
	w.st.advance(s)
	return s
}

// insertMove emits a move to the walker's current point without consuming
// anything, so the two sides start their sub-paths on the same index.
func (w *curveWalker) insertMove() Segment {
	s := moveSegment(w.st.x, w.st.y)
	w.st.advance(s)
	return s
}

// EqualizeCurves converts two paths into curves of identical length whose
// segments pair up by position. A move on one side is matched by a move to
// the current point on the other, and the shorter side is padded with
// zero-length cubics at its last endpoint.
func EqualizeCurves(from, to string) (Curve, Curve) {
	a, b := newCurveWalker(from), newCurveWalker(to)
	var ca, cb Curve
	for !a.done() || !b.done() {
		sa, sb := a.peek(), b.peek()
		switch {
		case sa.Type == MoveTo && sb.Type != MoveTo:
			ca = append(ca, a.pop())
			cb = append(cb, b.insertMove())
		case sb.Type == MoveTo && sa.Type != MoveTo:
			ca = append(ca, a.insertMove())
			cb = append(cb, b.pop())
		default:
			ca = append(ca, a.pop())
			cb = append(cb, b.pop())
		}
	}
	return ca, cb
}
