package svgmorph

import (
	"strconv"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"
	"golang.org/x/xerrors"
)

// DefaultViewBox is the frame used when neither icon declares one.
var DefaultViewBox = ViewBox{Width: 24, Height: 24, Original: "0 0 24 24"}

// ViewBox is the user coordinate frame an icon was authored in.
type ViewBox struct {
	MinX, MinY    float64
	Width, Height float64
	Original      string
}

// String returns the attribute value of the viewBox.
func (vb ViewBox) String() string {
	if vb.Original != "" {
		return vb.Original
	}
	return formatNumber(vb.MinX) + " " + formatNumber(vb.MinY) + " " +
		formatNumber(vb.Width) + " " + formatNumber(vb.Height)
}

// Equal compares the four numbers of both frames.
func (vb ViewBox) Equal(o ViewBox) bool {
	return vb.MinX == o.MinX && vb.MinY == o.MinY && vb.Width == o.Width && vb.Height == o.Height
}

// ParseViewBox reads "min-x min-y width height". The numbers may be
// separated by whitespace or commas; width and height must be positive.
func ParseViewBox(s string) (ViewBox, error) {
	nums, err := ParseNumberList(s)
	if err != nil {
		return ViewBox{}, xerrors.Errorf("viewBox %q: %v: %w", s, err, ErrInvalidViewBox)
	}
	if len(nums) != 4 {
		return ViewBox{}, xerrors.Errorf("viewBox %q: want 4 numbers, got %d: %w", s, len(nums), ErrInvalidViewBox)
	}
	if nums[2] <= 0 || nums[3] <= 0 {
		return ViewBox{}, xerrors.Errorf("viewBox %q: non-positive size: %w", s, ErrInvalidViewBox)
	}
	return ViewBox{MinX: nums[0], MinY: nums[1], Width: nums[2], Height: nums[3], Original: s}, nil
}

// ParseNumberList reads a whitespace or comma separated list of numbers.
// Input the lexer stops on (a leading dot, a carriage return, any other
// character outside numbers and separators) is an error.
func ParseNumberList(s string) ([]float64, error) {
	l, items := gl.Lex("numbers", s)
	// the lexer goroutine sends a final EOS after its own and only exits
	// once someone reads it
	defer func() {
		for range items {
		}
	}()

	var nums []float64
	consumed := 0
	for {
		i := l.NextItem()
		consumed += len(i.Value)
		switch i.Type {
		case gl.ItemWSP, gl.ItemComma:
		case gl.ItemNumber:
			n, err := strconv.ParseFloat(i.Value, 64)
			if err != nil {
				return nums, xerrors.Errorf("number %q: %w", i.Value, err)
			}
			nums = append(nums, n)
		case gl.ItemEOS:
			if consumed < len(s) {
				return nums, xerrors.Errorf("unreadable input at %q", s[consumed:])
			}
			return nums, nil
		default:
			return nums, xerrors.Errorf("unexpected %q", i.Value)
		}
	}
}

// CalculateOptimalViewBox picks the frame the animation runs in: the
// target's frame when both are known, the only known one otherwise, and
// DefaultViewBox when neither is.
func CalculateOptimalViewBox(from, to *ViewBox) ViewBox {
	switch {
	case to != nil:
		return *to
	case from != nil:
		return *from
	}
	return DefaultViewBox
}

// Affine is a scale followed by a translation.
type Affine struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// IdentityAffine leaves coordinates unchanged.
var IdentityAffine = Affine{ScaleX: 1, ScaleY: 1}

// AffineBetween maps coordinates of the from frame onto the to frame.
func AffineBetween(from, to ViewBox) Affine {
	if from.Width <= 0 || from.Height <= 0 || to.Width <= 0 || to.Height <= 0 {
		return IdentityAffine
	}
	sx := to.Width / from.Width
	sy := to.Height / from.Height
	return Affine{
		ScaleX:     sx,
		ScaleY:     sy,
		TranslateX: to.MinX - from.MinX*sx,
		TranslateY: to.MinY - from.MinY*sy,
	}
}

// IsIdentity reports whether a leaves coordinates unchanged.
func (a Affine) IsIdentity() bool {
	return a == IdentityAffine
}

func (a Affine) matrix() mt.Transform {
	m := mt.Identity()
	m[0][0] = a.ScaleX
	m[1][1] = a.ScaleY
	m[0][2] = a.TranslateX
	m[1][2] = a.TranslateY
	return m
}

// Apply maps a point.
func (a Affine) Apply(x, y float64) (float64, float64) {
	m := a.matrix()
	return m.Apply(x, y)
}
