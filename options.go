package svgmorph

import (
	"math/rand"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

// Defaults applied to zero Config and MorphOptions fields.
const (
	DefaultDuration = 750 * time.Millisecond
	DefaultEasing   = "quad-in-out"
	DefaultRotation = RotateClock
)

// Config configures a Morpher. Zero fields take their defaults.
type Config struct {
	// Duration of a morph. Zero selects DefaultDuration and negative values
	// are rejected, so a morph always spans at least one frame. Pick a
	// duration shorter than the frame interval to finish on the next tick.
	Duration time.Duration
	// Easing names a registered easing. Defaults to DefaultEasing.
	Easing string
	// Rotation defaults to DefaultRotation.
	Rotation RotationPolicy
	// IconID is shown first. Defaults to the first icon.
	IconID string
	// CurrentColor resolves currentColor in fill and stroke. When nil
	// currentColor is switched like a url() reference.
	CurrentColor *Color
	// SharedRotationCenter rotates every item about the average of the
	// target item centers instead of each item's own center.
	SharedRotationCenter bool

	Logger  *slog.Logger
	Easings *EasingRegistry
	// Rand returns values in [0, 1) and resolves the random rotation.
	Rand func() float64
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	var c Config
	return c.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Easing == "" {
		c.Easing = DefaultEasing
	}
	if c.Rotation == "" {
		c.Rotation = DefaultRotation
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Easings == nil {
		c.Easings = DefaultEasings
	}
	if c.Rand == nil {
		c.Rand = rand.Float64
	}
	return c
}

func (c Config) validate() error {
	if c.Duration < 0 {
		return xerrors.Errorf("negative duration %s: %w", c.Duration, ErrInvalidOptions)
	}
	if !c.Rotation.Valid() {
		return xerrors.Errorf("rotation %q: %w", c.Rotation, ErrInvalidOptions)
	}
	if _, err := c.Easings.Lookup(c.Easing); err != nil {
		return err
	}
	return nil
}

// MorphOptions override the Config defaults for a single morph. Zero
// fields keep the defaults.
type MorphOptions struct {
	// Duration zero keeps the Config duration. There is no zero-length
	// morph.
	Duration time.Duration
	Easing   string
	Rotation RotationPolicy
}

// morphParams is a fully resolved set of options for one morph.
type morphParams struct {
	duration time.Duration
	easing   Easing
	rotation RotationPolicy
}

func (c Config) resolve(opts *MorphOptions) (morphParams, error) {
	var o MorphOptions
	if opts != nil {
		o = *opts
	}
	if o.Duration < 0 {
		return morphParams{}, xerrors.Errorf("negative duration %s: %w", o.Duration, ErrInvalidOptions)
	}
	if o.Duration == 0 {
		o.Duration = c.Duration
	}
	if o.Easing == "" {
		o.Easing = c.Easing
	}
	if o.Rotation == "" {
		o.Rotation = c.Rotation
	}
	if !o.Rotation.Valid() {
		return morphParams{}, xerrors.Errorf("rotation %q: %w", o.Rotation, ErrInvalidOptions)
	}
	fn, err := c.Easings.Lookup(o.Easing)
	if err != nil {
		return morphParams{}, err
	}
	return morphParams{duration: o.Duration, easing: fn, rotation: o.Rotation.resolve(c.Rand)}, nil
}
