package svgmorph

import (
	"io"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

type iconSetFile struct {
	Icons []iconFile `yaml:"icons"`
}

type iconFile struct {
	ID      string            `yaml:"id"`
	ViewBox string            `yaml:"viewBox"`
	Defs    string            `yaml:"defs"`
	Attrs   map[string]string `yaml:"attrs"`
	Items   []iconItemFile    `yaml:"items"`
}

type iconItemFile struct {
	Path  string            `yaml:"path"`
	Attrs map[string]string `yaml:"attrs"`
	Style map[string]string `yaml:"style"`
}

// LoadIconSet reads icons from a YAML document:
//
//	icons:
//	  - id: close
//	    viewBox: 0 0 24 24
//	    defs: |
//	      <linearGradient id="g1"><stop offset="0" stop-color="red"/></linearGradient>
//	    items:
//	      - path: M6 6L18 18
//	        attrs: {stroke: "url(#g1)", stroke-width: "2"}
//
// Icons are returned in document order.
func LoadIconSet(r io.Reader) ([]Icon, error) {
	var f iconSetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, xerrors.Errorf("loading icon set: %w", err)
	}

	icons := make([]Icon, 0, len(f.Icons))
	for i, fi := range f.Icons {
		ic, err := fi.icon()
		if err != nil {
			return nil, xerrors.Errorf("loading icon set: icon %d: %w", i, err)
		}
		icons = append(icons, ic)
	}
	if err := validateIcons(icons); err != nil {
		return nil, xerrors.Errorf("loading icon set: %w", err)
	}
	return icons, nil
}

func (fi iconFile) icon() (Icon, error) {
	ic := Icon{ID: fi.ID, RootAttrs: fi.Attrs}
	if strings.TrimSpace(fi.ViewBox) != "" {
		vb, err := ParseViewBox(fi.ViewBox)
		if err != nil {
			return Icon{}, err
		}
		ic.ViewBox = &vb
	}
	if strings.TrimSpace(fi.Defs) != "" {
		defs, err := ParseDefs(fi.Defs)
		if err != nil {
			return Icon{}, err
		}
		ic.Defs = defs
	}
	for _, it := range fi.Items {
		attrs, err := StyleAttributesFromMap(it.Attrs)
		if err != nil {
			return Icon{}, xerrors.Errorf("icon %q attrs: %w", fi.ID, err)
		}
		style, err := StyleAttributesFromMap(it.Style)
		if err != nil {
			return Icon{}, xerrors.Errorf("icon %q style: %w", fi.ID, err)
		}
		ic.Items = append(ic.Items, IconItem{Path: it.Path, Attrs: attrs, Style: style})
	}
	return ic, nil
}

// validateIcons checks that every icon has a unique id and at least one
// item.
func validateIcons(icons []Icon) error {
	seen := make(map[string]bool, len(icons))
	for _, ic := range icons {
		switch {
		case ic.ID == "":
			return xerrors.Errorf("icon without id: %w", ErrInvalidIcon)
		case seen[ic.ID]:
			return xerrors.Errorf("duplicate icon %q: %w", ic.ID, ErrInvalidIcon)
		case len(ic.Items) == 0:
			return xerrors.Errorf("icon %q has no items: %w", ic.ID, ErrInvalidIcon)
		}
		seen[ic.ID] = true
	}
	return nil
}
