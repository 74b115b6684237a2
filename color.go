package svgmorph

import (
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
	"golang.org/x/xerrors"
)

// Color is a paint value in numeric form: red, green and blue in [0, 255]
// and opacity in [0, 1]. When Keyword is set the color is opaque to the
// engine (a url(#id) reference, none, or an unresolved currentColor) and is
// switched rather than blended.
type Color struct {
	R, G, B float64
	Opacity float64
	Keyword string
}

// RGBA returns a numeric color.
func RGBA(r, g, b, opacity float64) Color {
	return Color{R: r, G: g, B: b, Opacity: opacity}
}

func keywordColor(kw string) Color {
	return Color{Keyword: kw}
}

// IsPassthrough reports whether the color is a keyword that cannot be
// interpolated numerically.
func (c Color) IsPassthrough() bool {
	return c.Keyword != ""
}

// String renders the color as rgba(r,g,b,opacity) with integer channels and
// a two decimal opacity, or returns the keyword unchanged.
func (c Color) String() string {
	if c.IsPassthrough() {
		return c.Keyword
	}
	var sb strings.Builder
	sb.WriteString("rgba(")
	sb.WriteString(strconv.Itoa(int(math.Round(clamp(c.R, 0, 255)))))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(int(math.Round(clamp(c.G, 0, 255)))))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(int(math.Round(clamp(c.B, 0, 255)))))
	sb.WriteByte(',')
	sb.WriteString(formatNumber(math.Round(clamp(c.Opacity, 0, 1)*100) / 100))
	sb.WriteByte(')')
	return sb.String()
}

// ColorCalc blends two colors. Passthrough colors switch from a to b at the
// halfway point instead of blending.
func ColorCalc(a, b Color, t float64) Color {
	if a.IsPassthrough() || b.IsPassthrough() {
		if t < 0.5 {
			return a
		}
		return b
	}
	return Color{
		R:       lerp(a.R, b.R, t),
		G:       lerp(a.G, b.G, t),
		B:       lerp(a.B, b.B, t),
		Opacity: lerp(a.Opacity, b.Opacity, t),
	}
}

// ParseColor reads a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(),
// rgba(), hsl(), hsla(), hsb(), hsba(), a named color, transparent, none,
// currentColor or a url(#id) reference. currentColor resolves to current when
// it is given and stays a keyword otherwise.
func ParseColor(s string, current *Color) (Color, error) {
	raw := strings.TrimSpace(s)
	lower := strings.ToLower(raw)
	switch {
	case lower == "":
		return Color{}, xerrors.Errorf("empty value: %w", ErrInvalidColor)
	case strings.HasPrefix(lower, "url("):
		return keywordColor(raw), nil
	case lower == "none":
		return keywordColor("none"), nil
	case lower == "currentcolor":
		if current != nil && !current.IsPassthrough() {
			return *current, nil
		}
		return keywordColor("currentColor"), nil
	case lower == "transparent":
		return RGBA(0, 0, 0, 0), nil
	case lower[0] == '#':
		return parseHexColor(lower)
	case strings.HasPrefix(lower, "rgb"):
		return parseColorFunc(lower, "rgb")
	case strings.HasPrefix(lower, "hsl"):
		return parseColorFunc(lower, "hsl")
	case strings.HasPrefix(lower, "hsb"):
		return parseColorFunc(lower, "hsb")
	}
	if c, ok := colornames.Map[lower]; ok {
		return RGBA(float64(c.R), float64(c.G), float64(c.B), 1), nil
	}
	return Color{}, xerrors.Errorf("%q: %w", s, ErrInvalidColor)
}

func parseHexColor(s string) (Color, error) {
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		var sb strings.Builder
		for i := 0; i < len(hex); i++ {
			sb.WriteByte(hex[i])
			sb.WriteByte(hex[i])
		}
		hex = sb.String()
	case 6, 8:
	default:
		return Color{}, xerrors.Errorf("%q: %w", s, ErrInvalidColor)
	}

	var ch [4]float64
	ch[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, xerrors.Errorf("%q: %w", s, ErrInvalidColor)
		}
		ch[i] = float64(v)
	}
	return RGBA(ch[0], ch[1], ch[2], math.Round(ch[3]/255*100)/100), nil
}

// colorArg is one argument of a color function.
type colorArg struct {
	v       float64
	percent bool
	degrees bool
}

func parseColorFunc(s, fn string) (Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, xerrors.Errorf("%q: %w", s, ErrInvalidColor)
	}
	name := strings.TrimSpace(s[:open])
	if name != fn && name != fn+"a" {
		return Color{}, xerrors.Errorf("%q: %w", s, ErrInvalidColor)
	}

	fields := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return Color{}, xerrors.Errorf("%q: want 3 or 4 arguments: %w", s, ErrInvalidColor)
	}
	args := make([]colorArg, len(fields))
	for i, f := range fields {
		a, ok := parseColorArg(f)
		if !ok {
			return Color{}, xerrors.Errorf("%q: bad argument %q: %w", s, f, ErrInvalidColor)
		}
		args[i] = a
	}

	opacity := 1.0
	if len(args) == 4 {
		opacity = args[3].v
		if args[3].percent {
			opacity /= 100
		}
		opacity = clamp(opacity, 0, 1)
	}

	if fn == "rgb" {
		var ch [3]float64
		for i := range ch {
			v := args[i].v
			if args[i].percent {
				v = v * 255 / 100
			}
			ch[i] = math.Min(math.Round(v), 255)
		}
		return RGBA(ch[0], ch[1], ch[2], opacity), nil
	}

	h := args[0].v
	if args[0].percent {
		h = h / 100 * 360
	}
	if h = math.Mod(h, 360); h < 0 {
		h += 360
	}
	s1, s2 := fraction(args[1]), fraction(args[2])
	var c colorful.Color
	if fn == "hsl" {
		c = colorful.Hsl(h, s1, s2)
	} else {
		c = colorful.Hsv(h, s1, s2)
	}
	c = c.Clamped()
	return RGBA(math.Round(c.R*255), math.Round(c.G*255), math.Round(c.B*255), opacity), nil
}

// fraction reads a saturation, lightness or brightness argument into
// [0, 1]. Plain numbers above 1 are taken as percentages.
func fraction(a colorArg) float64 {
	v := a.v
	if a.percent || v > 1 {
		v /= 100
	}
	return clamp(v, 0, 1)
}

func parseColorArg(f string) (colorArg, bool) {
	var a colorArg
	switch {
	case strings.HasSuffix(f, "%"):
		a.percent = true
		f = f[:len(f)-1]
	case strings.HasSuffix(f, "deg"):
		a.degrees = true
		f = f[:len(f)-3]
	case strings.HasSuffix(f, "°"):
		a.degrees = true
		f = strings.TrimSuffix(f, "°")
	}
	v, n := pstrconv.ParseFloat([]byte(f))
	if n == 0 || n != len(f) {
		return a, false
	}
	a.v = v
	return a, true
}
