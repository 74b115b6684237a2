package svgmorph

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
duration = 500
easing = "cubic-in-out"
rotation = "counterclock"
iconId = "menu"
currentColor = "#336699"
sharedRotationCenter = true
`))
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Duration)
	assert.Equal(t, "cubic-in-out", cfg.Easing)
	assert.Equal(t, RotateCounterClock, cfg.Rotation)
	assert.Equal(t, "menu", cfg.IconID)
	require.NotNil(t, cfg.CurrentColor)
	assert.Equal(t, RGBA(0x33, 0x66, 0x99, 1), *cfg.CurrentColor)
	assert.True(t, cfg.SharedRotationCenter)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	cfg = cfg.withDefaults()
	assert.Equal(t, DefaultDuration, cfg.Duration)
	assert.Equal(t, DefaultEasing, cfg.Easing)
	assert.Equal(t, DefaultRotation, cfg.Rotation)
	assert.Nil(t, cfg.CurrentColor)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigErrors(t *testing.T) {
	for _, in := range []string{
		`duration = -1`,
		`rotation = "sideways"`,
		`colour = "red"`,
		`currentColor = "not a color"`,
		`duration = "fast"`,
	} {
		_, err := LoadConfig(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.validate())

	bad := cfg
	bad.Duration = -time.Second
	assert.True(t, xerrors.Is(bad.validate(), ErrInvalidOptions))

	bad = cfg
	bad.Rotation = "sideways"
	assert.True(t, xerrors.Is(bad.validate(), ErrInvalidOptions))

	bad = cfg
	bad.Easing = "bounce"
	assert.True(t, xerrors.Is(bad.validate(), ErrUnknownEasing))
}

func TestResolveMorphOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rand = func() float64 { return 0.2 }

	p, err := cfg.resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, p.duration)
	assert.Equal(t, RotateClock, p.rotation)

	p, err = cfg.resolve(&MorphOptions{Duration: time.Second, Easing: "linear", Rotation: RotateRandom})
	require.NoError(t, err)
	assert.Equal(t, time.Second, p.duration)
	assert.Equal(t, RotateCounterClock, p.rotation)
	assert.Equal(t, 0.3, p.easing(0.3))

	cfg.Duration = 2 * time.Second
	p, err = cfg.resolve(&MorphOptions{Duration: 0, Easing: "linear"})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, p.duration, "zero duration keeps the configured one")

	_, err = cfg.resolve(&MorphOptions{Duration: -1})
	assert.True(t, xerrors.Is(err, ErrInvalidOptions))
	_, err = cfg.resolve(&MorphOptions{Rotation: "spin"})
	assert.True(t, xerrors.Is(err, ErrInvalidOptions))
	_, err = cfg.resolve(&MorphOptions{Easing: "bounce"})
	assert.True(t, xerrors.Is(err, ErrUnknownEasing))
}
