package svgmorph

import (
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/xerrors"
)

// configFile is the on-disk form of Config.
type configFile struct {
	Duration             int64          `toml:"duration"` // milliseconds
	Easing               string         `toml:"easing"`
	Rotation             RotationPolicy `toml:"rotation"`
	IconID               string         `toml:"iconId"`
	CurrentColor         string         `toml:"currentColor"`
	SharedRotationCenter bool           `toml:"sharedRotationCenter"`
}

// LoadConfig reads a TOML configuration:
//
//	duration = 500
//	easing = "cubic-in-out"
//	rotation = "counterclock"
//	iconId = "menu"
//	currentColor = "#333"
//	sharedRotationCenter = true
//
// Keys left out keep their defaults. Unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	var f configFile
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&f); err != nil {
		return Config{}, xerrors.Errorf("loading config: %v: %w", err, ErrInvalidOptions)
	}
	if f.Duration < 0 {
		return Config{}, xerrors.Errorf("loading config: negative duration %d: %w", f.Duration, ErrInvalidOptions)
	}

	c := Config{
		Duration:             time.Duration(f.Duration) * time.Millisecond,
		Easing:               f.Easing,
		Rotation:             f.Rotation,
		IconID:               f.IconID,
		SharedRotationCenter: f.SharedRotationCenter,
	}
	if f.CurrentColor != "" {
		col, err := ParseColor(f.CurrentColor, nil)
		if err != nil {
			return Config{}, xerrors.Errorf("loading config: currentColor: %w", err)
		}
		c.CurrentColor = &col
	}
	return c, nil
}
