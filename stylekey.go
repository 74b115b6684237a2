package svgmorph

// StyleKey is one of the presentation attributes the engine animates. The set
// is closed; every switch over it must handle all keys.
type StyleKey int

const (
	Fill StyleKey = iota
	Stroke
	Opacity
	FillOpacity
	StrokeOpacity
	StrokeWidth

	numStyleKeys
)

// StyleKeys lists every key in rendering order.
var StyleKeys = [numStyleKeys]StyleKey{Fill, Stroke, Opacity, FillOpacity, StrokeOpacity, StrokeWidth}

var styleKeyNames = [numStyleKeys]string{
	Fill:          "fill",
	Stroke:        "stroke",
	Opacity:       "opacity",
	FillOpacity:   "fill-opacity",
	StrokeOpacity: "stroke-opacity",
	StrokeWidth:   "stroke-width",
}

func (k StyleKey) String() string {
	if k < 0 || k >= numStyleKeys {
		return "StyleKey(?)"
	}
	return styleKeyNames[k]
}

// IsColor reports whether the key holds a paint (fill, stroke) rather than a
// number.
func (k StyleKey) IsColor() bool {
	switch k {
	case Fill, Stroke:
		return true
	case Opacity, FillOpacity, StrokeOpacity, StrokeWidth:
		return false
	}
	panic("svgmorph: invalid style key " + k.String())
}

// ParseStyleKey looks up the key for an attribute or CSS property name.
func ParseStyleKey(name string) (StyleKey, bool) {
	for k, n := range styleKeyNames {
		if n == name {
			return StyleKey(k), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k StyleKey) MarshalText() ([]byte, error) {
	if k < 0 || k >= numStyleKeys {
		return nil, errUnknownStyleKey(k.String())
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StyleKey) UnmarshalText(b []byte) error {
	v, ok := ParseStyleKey(string(b))
	if !ok {
		return errUnknownStyleKey(string(b))
	}
	*k = v
	return nil
}

// StyleAttributes is a sparse set of presentation values. A missing key
// means the attribute is unset, not zero.
type StyleAttributes map[StyleKey]string

// Clone returns an independent copy of a.
func (a StyleAttributes) Clone() StyleAttributes {
	res := make(StyleAttributes, len(a))
	for k, v := range a {
		res[k] = v
	}
	return res
}

// Map returns the attributes keyed by their attribute names.
func (a StyleAttributes) Map() map[string]string {
	res := make(map[string]string, len(a))
	for k, v := range a {
		res[k.String()] = v
	}
	return res
}

// StyleAttributesFromMap converts attribute names to keys. Names outside the
// animated set are reported as an error rather than dropped.
func StyleAttributesFromMap(m map[string]string) (StyleAttributes, error) {
	res := make(StyleAttributes, len(m))
	for name, v := range m {
		k, ok := ParseStyleKey(name)
		if !ok {
			return nil, errUnknownStyleKey(name)
		}
		res[k] = v
	}
	return res, nil
}
