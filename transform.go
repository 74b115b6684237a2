package svgmorph

import (
	"math"
	"strings"

	"golang.org/x/xerrors"
)

// RotationPolicy selects how the synthetic rotation of each item runs during
// a morph.
type RotationPolicy string

const (
	RotateClock        RotationPolicy = "clock"
	RotateCounterClock RotationPolicy = "counterclock"
	RotateNone         RotationPolicy = "none"
	RotateRandom       RotationPolicy = "random"
)

// Valid reports whether p is one of the known policies.
func (p RotationPolicy) Valid() bool {
	switch p {
	case RotateClock, RotateCounterClock, RotateNone, RotateRandom:
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *RotationPolicy) UnmarshalText(b []byte) error {
	v := RotationPolicy(strings.ToLower(strings.TrimSpace(string(b))))
	if !v.Valid() {
		return xerrors.Errorf("rotation %q: %w", string(b), ErrInvalidOptions)
	}
	*p = v
	return nil
}

// resolve turns random into clock or counterclock. rnd returns values in
// [0, 1).
func (p RotationPolicy) resolve(rnd func() float64) RotationPolicy {
	if p != RotateRandom {
		return p
	}
	if rnd() < 0.5 {
		return RotateCounterClock
	}
	return RotateClock
}

// Rotation is an angle in degrees about a center point.
type Rotation struct {
	Angle  float64
	CX, CY float64
}

// Transform is the synthetic transform applied to an animated item.
type Transform struct {
	Rotate Rotation
}

// String renders the transform attribute value.
func (t Transform) String() string {
	var sb strings.Builder
	sb.WriteString("rotate(")
	sb.WriteString(formatNumber(t.Rotate.Angle))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(t.Rotate.CX))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(t.Rotate.CY))
	sb.WriteByte(')')
	return sb.String()
}

// TransCalc interpolates angle and center.
func TransCalc(from, to Transform, t float64) Transform {
	return Transform{Rotate: Rotation{
		Angle: lerp(from.Rotate.Angle, to.Rotate.Angle, t),
		CX:    lerp(from.Rotate.CX, to.Rotate.CX, t),
		CY:    lerp(from.Rotate.CY, to.Rotate.CY, t),
	}}
}

// TargetAngle returns the end angle for an item that starts at from. For
// clock the result is a multiple of 360 greater than from; counterclock
// mirrors it. none keeps the angle. random must be resolved first and is
// treated as clock here.
func TargetAngle(policy RotationPolicy, from float64) float64 {
	switch policy {
	case RotateNone:
		return from
	case RotateCounterClock:
		to := from - 360
		add := math.Mod(-from, 360)
		if add < 180 {
			return to + add
		}
		return to + add - 360
	default:
		to := from + 360
		add := math.Mod(from, 360)
		if add < 180 {
			return to - add
		}
		return to + 360 - add
	}
}
