package svgmorph

// CommandType tells the curve converter which path-data instruction a
// command carries. The value is the upper case command letter.
type CommandType byte

// These are the path-data commands understood by the parser.
const (
	MoveTo         CommandType = 'M'
	LineTo         CommandType = 'L'
	HLineTo        CommandType = 'H'
	VLineTo        CommandType = 'V'
	CurveTo        CommandType = 'C'
	SmoothCurveTo  CommandType = 'S'
	QuadTo         CommandType = 'Q'
	SmoothQuadTo   CommandType = 'T'
	ArcTo          CommandType = 'A'
	ClosePath      CommandType = 'Z'
	unknownCommand CommandType = 0
)

// Arity returns the number of operands a single instance of the command
// takes.
func (c CommandType) Arity() int {
	switch c {
	case ArcTo:
		return 7
	case CurveTo:
		return 6
	case SmoothCurveTo, QuadTo:
		return 4
	case MoveTo, LineTo, SmoothQuadTo:
		return 2
	case HLineTo, VLineTo:
		return 1
	case ClosePath:
		return 0
	}
	return 2
}

func (c CommandType) String() string {
	if c == unknownCommand {
		return "?"
	}
	return string(rune(c))
}

// commandFromLetter maps a path-data letter to its command. ok is false for
// letters that are not path commands.
func commandFromLetter(b byte) (typ CommandType, relative bool, ok bool) {
	relative = b >= 'a' && b <= 'z'
	if relative {
		b -= 'a' - 'A'
	}
	switch CommandType(b) {
	case MoveTo, LineTo, HLineTo, VLineTo, CurveTo, SmoothCurveTo, QuadTo, SmoothQuadTo, ArcTo, ClosePath:
		return CommandType(b), relative, true
	}
	return unknownCommand, relative, false
}

// Command contains one parsed path-data instruction. Args always holds
// exactly Type.Arity() operands.
type Command struct {
	Type     CommandType
	Relative bool
	Args     []float64
}

// Letter returns the command letter as written in path data.
func (c Command) Letter() byte {
	if c.Relative {
		return byte(c.Type) + 'a' - 'A'
	}
	return byte(c.Type)
}

func (c Command) clone() Command {
	c.Args = append([]float64(nil), c.Args...)
	return c
}
