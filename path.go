package svgmorph

import (
	"strconv"
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// Path is a list of parsed path-data commands.
type Path []Command

type pathDescriptionParser struct {
	d    []byte
	pos  int
	cmds Path
}

// ParsePath tokenizes path data into commands. It never fails: malformed
// numbers are read as 0, unknown command letters are read as line-to
// pairs and operand groups that are shorter than the command's arity are
// dropped.
func ParsePath(d string) Path {
	pdp := &pathDescriptionParser{d: []byte(d)}
	pdp.parse()
	return pdp.cmds
}

func (pdp *pathDescriptionParser) parse() {
	for pdp.pos < len(pdp.d) {
		c := pdp.d[pdp.pos]
		if !isASCIILetter(c) {
			// operands before the first command carry no meaning
			pdp.pos++
			continue
		}
		pdp.pos++
		typ, rel, ok := commandFromLetter(c)
		if !ok {
			typ = LineTo
		}
		pdp.parseCommand(typ, rel, pdp.parseOperands())
	}
}

func (pdp *pathDescriptionParser) parseCommand(typ CommandType, rel bool, args []float64) {
	if typ == ClosePath {
		pdp.cmds = append(pdp.cmds, Command{Type: ClosePath, Relative: rel})
		return
	}

	n := typ.Arity()
	if typ == MoveTo && len(args) >= n {
		pdp.cmds = append(pdp.cmds, Command{Type: MoveTo, Relative: rel, Args: args[:n:n]})
		args = args[n:]
		typ = LineTo
		n = typ.Arity()
	}
	for len(args) >= n {
		pdp.cmds = append(pdp.cmds, Command{Type: typ, Relative: rel, Args: args[:n:n]})
		args = args[n:]
	}
}

func (pdp *pathDescriptionParser) parseOperands() []float64 {
	var args []float64
	for {
		pdp.consumeSeparators()
		if pdp.pos >= len(pdp.d) || isASCIILetter(pdp.d[pdp.pos]) {
			return args
		}
		f, n := pstrconv.ParseFloat(pdp.d[pdp.pos:])
		if n == 0 {
			pdp.skipMalformed()
			f = 0
		}
		pdp.pos += n
		args = append(args, f)
	}
}

// skipMalformed advances past a token that is neither a number, a
// separator nor a command letter.
func (pdp *pathDescriptionParser) skipMalformed() {
	pdp.pos++
	for pdp.pos < len(pdp.d) {
		c := pdp.d[pdp.pos]
		if isSeparator(c) || isASCIILetter(c) {
			return
		}
		if _, n := pstrconv.ParseFloat(pdp.d[pdp.pos:]); n > 0 {
			return
		}
		pdp.pos++
	}
}

func (pdp *pathDescriptionParser) consumeSeparators() {
	for pdp.pos < len(pdp.d) && isSeparator(pdp.d[pdp.pos]) {
		pdp.pos++
	}
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', ',', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ToAbsolute parses path data and rewrites every command in absolute
// coordinates.
func ToAbsolute(d string) Path {
	return AbsolutePath(ParsePath(d))
}

// Absolute returns a copy of p with every command in absolute
// coordinates.
func (p Path) Absolute() Path {
	return AbsolutePath(p)
}

// AbsolutePath rewrites an already parsed command list in absolute
// coordinates. An empty list normalizes to a single "M 0 0" and a list that
// does not start with a move gets an implicit "M 0 0" in front.
func AbsolutePath(p Path) Path {
	if len(p) == 0 {
		return Path{{Type: MoveTo, Args: []float64{0, 0}}}
	}

	res := make(Path, 0, len(p)+1)
	if p[0].Type != MoveTo {
		res = append(res, Command{Type: MoveTo, Args: []float64{0, 0}})
	}

	var x, y, mx, my float64
	for _, c := range p {
		r := Command{Type: c.Type, Args: make([]float64, len(c.Args))}
		copy(r.Args, c.Args)

		if c.Relative {
			switch c.Type {
			case ArcTo:
				r.Args[5] += x
				r.Args[6] += y
			case HLineTo:
				r.Args[0] += x
			case VLineTo:
				r.Args[0] += y
			default:
				for j := range r.Args {
					if j%2 == 0 {
						r.Args[j] += x
					} else {
						r.Args[j] += y
					}
				}
			}
		}

		switch r.Type {
		case ClosePath:
			x, y = mx, my
		case HLineTo:
			x = r.Args[0]
		case VLineTo:
			y = r.Args[0]
		case MoveTo:
			mx, my = r.Args[0], r.Args[1]
			x, y = mx, my
		default:
			x, y = r.Args[len(r.Args)-2], r.Args[len(r.Args)-1]
		}
		res = append(res, r)
	}
	return res
}

// String renders the commands back into compact path data.
func (p Path) String() string {
	var sb strings.Builder
	for _, c := range p {
		sb.WriteByte(c.Letter())
		writeNumbers(&sb, c.Args)
	}
	return sb.String()
}

func (p Path) clone() Path {
	if p == nil {
		return nil
	}
	res := make(Path, len(p))
	for i, c := range p {
		res[i] = c.clone()
	}
	return res
}

func writeNumbers(sb *strings.Builder, nums []float64) {
	for i, v := range nums {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(formatNumber(v))
	}
}

// formatNumber renders v in the shortest form that parses back to the same
// value.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
