package svgmorph

import (
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/exp/slog"
)

// NormValue is the numeric form of one style value. Color is used for fill
// and stroke, Number for everything else.
type NormValue struct {
	Color  Color
	Number float64
}

// NormalizedStyle holds the numeric form of a StyleAttributes set.
type NormalizedStyle map[StyleKey]NormValue

func (n NormalizedStyle) clone() NormalizedStyle {
	if n == nil {
		return nil
	}
	res := make(NormalizedStyle, len(n))
	for k, v := range n {
		res[k] = v
	}
	return res
}

// StyleToNorm converts a pair of style sets into numeric form with the same
// keys on both sides. A key present on one side only is synthesized on the
// other: colors take the same RGB with opacity 0 (or the same keyword for
// passthrough values) and numbers default to 1. current resolves
// currentColor when non-nil.
func StyleToNorm(from, to StyleAttributes, current *Color) (NormalizedStyle, NormalizedStyle) {
	return styleToNorm(from, to, current, nil)
}

func styleToNorm(from, to StyleAttributes, current *Color, logger *slog.Logger) (NormalizedStyle, NormalizedStyle) {
	nf := make(NormalizedStyle, len(from))
	nt := make(NormalizedStyle, len(to))
	for _, k := range StyleKeys {
		fv, inFrom := from[k]
		tv, inTo := to[k]
		switch {
		case inFrom && inTo:
			nf[k] = normValue(k, fv, current, logger)
			nt[k] = normValue(k, tv, current, logger)
		case inFrom:
			nf[k] = normValue(k, fv, current, logger)
			nt[k] = counterpart(k, nf[k])
		case inTo:
			nt[k] = normValue(k, tv, current, logger)
			nf[k] = counterpart(k, nt[k])
		}
	}
	return nf, nt
}

func counterpart(k StyleKey, v NormValue) NormValue {
	if !k.IsColor() {
		return NormValue{Number: 1}
	}
	c := v.Color
	if !c.IsPassthrough() {
		c.Opacity = 0
	}
	return NormValue{Color: c}
}

func normValue(k StyleKey, s string, current *Color, logger *slog.Logger) NormValue {
	if k.IsColor() {
		c, err := ParseColor(s, current)
		if err != nil {
			if logger != nil {
				logger.Debug("color kept as passthrough", "key", k.String(), "value", s, "err", err)
			}
			c = keywordColor(strings.TrimSpace(s))
		}
		return NormValue{Color: c}
	}
	v, ok := parseScalar(s, k != StrokeWidth)
	if !ok {
		if logger != nil {
			logger.Debug("unreadable number defaults to 1", "key", k.String(), "value", s)
		}
		v = 1
	}
	return NormValue{Number: v}
}

// parseScalar reads a number with an optional px unit. A percent sign is
// accepted only when percent is set and turns the value into a fraction.
func parseScalar(s string, percent bool) (float64, bool) {
	s = strings.TrimSpace(s)
	isPercent := false
	switch {
	case strings.HasSuffix(s, "%"):
		if !percent {
			return 0, false
		}
		isPercent = true
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "px"):
		s = s[:len(s)-2]
	}
	v, n := pstrconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, false
	}
	if isPercent {
		v /= 100
	}
	return v, true
}

// StyleNormCalc interpolates every key of from toward the same key of to.
// Keys missing from to are copied from from.
func StyleNormCalc(from, to NormalizedStyle, t float64) NormalizedStyle {
	res := make(NormalizedStyle, len(from))
	for k, fv := range from {
		tv, ok := to[k]
		if !ok {
			res[k] = fv
			continue
		}
		if k.IsColor() {
			res[k] = NormValue{Color: ColorCalc(fv.Color, tv.Color, t)}
		} else {
			res[k] = NormValue{Number: lerp(fv.Number, tv.Number, t)}
		}
	}
	return res
}

// Attributes renders the normalized style back into attribute values.
// Colors become rgba(), opacities are clamped to [0, 1] and stroke-width to
// non-negative values.
func (n NormalizedStyle) Attributes() StyleAttributes {
	res := make(StyleAttributes, len(n))
	for k, v := range n {
		switch k {
		case Fill, Stroke:
			res[k] = v.Color.String()
		case Opacity, FillOpacity, StrokeOpacity:
			res[k] = formatNumber(clamp(v.Number, 0, 1))
		case StrokeWidth:
			res[k] = formatNumber(max(v.Number, 0))
		}
	}
	return res
}
