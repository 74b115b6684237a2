package svgmorph

import "golang.org/x/xerrors"

var (
	// ErrUnknownIcon is returned by MorphTo when the requested icon is not
	// registered. The morpher state is left untouched.
	ErrUnknownIcon = xerrors.New("svgmorph: unknown icon")

	// ErrEasingExists is returned when an easing name is registered twice.
	ErrEasingExists = xerrors.New("svgmorph: easing already registered")

	// ErrUnknownEasing is returned when options name an easing that is not
	// registered.
	ErrUnknownEasing = xerrors.New("svgmorph: unknown easing")

	// ErrInvalidIcon is returned for icons without an id, with a duplicate
	// id or without items.
	ErrInvalidIcon = xerrors.New("svgmorph: invalid icon")

	// ErrInvalidOptions is returned for malformed construction or morph
	// options.
	ErrInvalidOptions = xerrors.New("svgmorph: invalid options")

	// ErrUnknownStyleKey is returned for attribute names outside the
	// animated set.
	ErrUnknownStyleKey = xerrors.New("svgmorph: unknown style attribute")

	// ErrInvalidColor is returned by ParseColor for values it cannot read.
	ErrInvalidColor = xerrors.New("svgmorph: invalid color")

	// ErrInvalidViewBox is returned by ParseViewBox.
	ErrInvalidViewBox = xerrors.New("svgmorph: invalid viewBox")

	// ErrInvalidDefinition is returned for gradient, pattern or other
	// definition fragments that cannot be read.
	ErrInvalidDefinition = xerrors.New("svgmorph: invalid definition")
)

func errUnknownStyleKey(name string) error {
	return xerrors.Errorf("%q: %w", name, ErrUnknownStyleKey)
}
