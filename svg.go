package svgmorph

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// DefinitionKind groups definitions the way they are stored in Defs.
type DefinitionKind int

const (
	Gradient DefinitionKind = iota
	Pattern
	OtherDefinition
)

func (k DefinitionKind) String() string {
	switch k {
	case Gradient:
		return "gradient"
	case Pattern:
		return "pattern"
	}
	return "other"
}

func kindOf(element string) DefinitionKind {
	switch element {
	case "linearGradient", "radialGradient":
		return Gradient
	case "pattern":
		return Pattern
	}
	return OtherDefinition
}

// Defs holds the reusable definitions of an icon as raw markup, keyed by
// element id.
type Defs struct {
	Gradients map[string]string
	Patterns  map[string]string
	Others    map[string]string
	Raw       string
}

// NewDefs returns an empty set.
func NewDefs() *Defs {
	return &Defs{
		Gradients: map[string]string{},
		Patterns:  map[string]string{},
		Others:    map[string]string{},
	}
}

func (d *Defs) bucket(k DefinitionKind) map[string]string {
	switch k {
	case Gradient:
		return d.Gradients
	case Pattern:
		return d.Patterns
	}
	return d.Others
}

// Add stores raw under id in the map for kind.
func (d *Defs) Add(kind DefinitionKind, id, raw string) {
	d.bucket(kind)[id] = raw
}

// Len returns the number of definitions.
func (d *Defs) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Gradients) + len(d.Patterns) + len(d.Others)
}

// String renders every definition as the body of a <defs> element, ordered
// by kind and id.
func (d *Defs) String() string {
	if d == nil {
		return ""
	}
	var sb strings.Builder
	for _, m := range []map[string]string{d.Gradients, d.Patterns, d.Others} {
		ids := maps.Keys(m)
		slices.Sort(ids)
		for _, id := range ids {
			sb.WriteString(m[id])
		}
	}
	return sb.String()
}

// ParseDefs splits markup into its definitions. The input may be a whole
// <defs> element or just its children. Top level elements without an id
// cannot be referenced and are dropped.
func ParseDefs(raw string) (*Defs, error) {
	d := NewDefs()
	d.Raw = raw

	decoder := xml.NewDecoder(strings.NewReader(raw))
	for {
		offset := decoder.InputOffset()
		token, err := decoder.Token()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, xerrors.Errorf("parsing defs: %v: %w", err, ErrInvalidDefinition)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			if tok.Name.Local == "defs" {
				continue
			}
			if err = decoder.Skip(); err != nil {
				return nil, xerrors.Errorf("parsing <%s>: %v: %w", tok.Name.Local, err, ErrInvalidDefinition)
			}
			id := attrValue(tok, "id")
			if id == "" {
				continue
			}
			d.Add(kindOf(tok.Name.Local), id, raw[offset:decoder.InputOffset()])

		case xml.EndElement:
			if tok.Name.Local == "defs" {
				return d, nil
			}
		}
	}
}

func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// MergeDefs combines several sets. Later sets win on id collisions.
func MergeDefs(sets ...*Defs) *Defs {
	res := NewDefs()
	for _, s := range sets {
		if s == nil {
			continue
		}
		for _, k := range []DefinitionKind{Gradient, Pattern, OtherDefinition} {
			maps.Copy(res.bucket(k), s.bucket(k))
		}
	}
	res.Raw = res.String()
	return res
}
