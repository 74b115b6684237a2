package svgmorph

import (
	"math"
	"regexp"
	"strings"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

// TransformPath maps every coordinate of d through a. Arc radii are
// scaled, H keeps only x and V only y. Blank input is returned as is.
func TransformPath(d string, a Affine) string {
	if strings.TrimSpace(d) == "" {
		return d
	}
	p := ToAbsolute(d)
	for i, c := range p {
		args := c.Args
		switch c.Type {
		case HLineTo:
			args[0] = args[0]*a.ScaleX + a.TranslateX
		case VLineTo:
			args[0] = args[0]*a.ScaleY + a.TranslateY
		case ArcTo:
			args[0] *= a.ScaleX
			args[1] *= a.ScaleY
			args[5], args[6] = a.Apply(args[5], args[6])
		case ClosePath:
		default:
			for j := 0; j+1 < len(args); j += 2 {
				args[j], args[j+1] = a.Apply(args[j], args[j+1])
			}
		}
		p[i].Args = args
	}
	return p.String()
}

var (
	rootTagRe   = regexp.MustCompile(`^\s*<([A-Za-z][\w:.-]*)[^>]*>`)
	coordAttrRe = regexp.MustCompile(`(\s)(x1|y1|x2|y2|cx|cy|fx|fy|r|x|y|width|height)(\s*=\s*)("[^"]*"|'[^']*')`)
	idAttrRe    = regexp.MustCompile(`(\sid\s*=\s*)("[^"]*"|'[^']*')`)
	hrefRe      = regexp.MustCompile(`(href\s*=\s*)("#[^"]*"|'#[^']*')`)
	urlRefRe    = regexp.MustCompile(`url\(\s*#([^)\s]+)\s*\)`)
	bboxUnitsRe = regexp.MustCompile(`(gradientUnits|patternUnits)\s*=\s*["']objectBoundingBox["']`)
)

// coordAttrs lists the root attributes of each element that hold user
// space coordinates.
var coordAttrs = map[string][]string{
	"linearGradient": {"x1", "y1", "x2", "y2"},
	"radialGradient": {"cx", "cy", "fx", "fy", "r"},
	"pattern":        {"x", "y", "width", "height"},
}

// TransformDefinition rewrites one definition for a new frame and a new
// set of ids. The coordinate attributes of gradient and pattern roots are
// mapped through a unless they are percentages or the element declares
// objectBoundingBox units; a radial r scales by the geometric mean of the
// two scales. Ids and references (url(#id), href="#id") found in idMap are
// renamed everywhere in the fragment.
func TransformDefinition(raw string, a Affine, idMap map[string]string) (string, error) {
	loc := rootTagRe.FindStringSubmatchIndex(raw)
	if loc == nil {
		return "", xerrors.Errorf("no root element in %q: %w", raw, ErrInvalidDefinition)
	}
	root := raw[loc[0]:loc[1]]
	element := raw[loc[2]:loc[3]]
	if i := strings.IndexByte(element, ':'); i >= 0 {
		element = element[i+1:]
	}

	if names := coordAttrs[element]; names != nil && !a.IsIdentity() && !bboxUnitsRe.MatchString(root) {
		root = coordAttrRe.ReplaceAllStringFunc(root, func(m string) string {
			sub := coordAttrRe.FindStringSubmatch(m)
			if !slices.Contains(names, sub[2]) {
				return m
			}
			return sub[1] + sub[2] + sub[3] + transformCoordValue(sub[2], sub[4], a)
		})
	}
	res := raw[:loc[0]] + root + raw[loc[1]:]
	if len(idMap) == 0 {
		return res, nil
	}

	res = idAttrRe.ReplaceAllStringFunc(res, func(m string) string {
		sub := idAttrRe.FindStringSubmatch(m)
		q, id := sub[2][:1], sub[2][1:len(sub[2])-1]
		if n, ok := idMap[id]; ok {
			return sub[1] + q + n + q
		}
		return m
	})
	res = hrefRe.ReplaceAllStringFunc(res, func(m string) string {
		sub := hrefRe.FindStringSubmatch(m)
		q, id := sub[2][:1], sub[2][2:len(sub[2])-1]
		if n, ok := idMap[id]; ok {
			return sub[1] + q + "#" + n + q
		}
		return m
	})
	return RewriteURLRefs(res, idMap), nil
}

func transformCoordValue(name, quoted string, a Affine) string {
	q, v := quoted[:1], strings.TrimSpace(quoted[1:len(quoted)-1])
	if strings.HasSuffix(v, "%") {
		return quoted
	}
	f, n := pstrconv.ParseFloat([]byte(v))
	if n == 0 || n != len(v) {
		return quoted
	}
	switch name {
	case "x1", "x2", "cx", "fx", "x":
		f = f*a.ScaleX + a.TranslateX
	case "y1", "y2", "cy", "fy", "y":
		f = f*a.ScaleY + a.TranslateY
	case "width":
		f *= a.ScaleX
	case "height":
		f *= a.ScaleY
	case "r":
		f *= math.Sqrt(a.ScaleX * a.ScaleY)
	}
	return q + formatNumber(f) + q
}

// RewriteURLRefs renames every url(#id) in s whose id is in idMap.
func RewriteURLRefs(s string, idMap map[string]string) string {
	if len(idMap) == 0 || !strings.Contains(s, "url(") {
		return s
	}
	return urlRefRe.ReplaceAllStringFunc(s, func(m string) string {
		id := urlRefRe.FindStringSubmatch(m)[1]
		if n, ok := idMap[id]; ok {
			return "url(#" + n + ")"
		}
		return m
	})
}

func rewriteStyleRefs(attrs StyleAttributes, idMap map[string]string) {
	for k, v := range attrs {
		attrs[k] = RewriteURLRefs(v, idMap)
	}
}

// Prefixes that keep the ids of the two icons of a morph apart.
const (
	fromPrefix = "from"
	toPrefix   = "to"
)

// NamespaceID returns the id a definition gets while it takes part in a
// morph, e.g. to_heart_grad1.
func NamespaceID(prefix, iconID, id string) string {
	return prefix + "_" + iconID + "_" + id
}

// definition is one entry of the defs in use by a morph. Origin is the id
// it was authored with in icon Icon; ID is its current, namespaced id.
type definition struct {
	ID     string
	Icon   string
	Origin string
	Kind   DefinitionKind
	Raw    string
}

// iconDefinitions lists the definitions of ic in id order.
func iconDefinitions(ic *Icon) []definition {
	if ic.Defs == nil {
		return nil
	}
	var res []definition
	for _, k := range []DefinitionKind{Gradient, Pattern, OtherDefinition} {
		m := ic.Defs.bucket(k)
		ids := maps.Keys(m)
		slices.Sort(ids)
		for _, id := range ids {
			res = append(res, definition{ID: id, Icon: ic.ID, Origin: id, Kind: k, Raw: m[id]})
		}
	}
	return res
}

// namespaceDefinitions renames defs to prefix_<icon>_<origin> and maps them
// through a. It returns the renamed set and the old to new id map.
// Definitions that cannot be rewritten are logged and dropped.
func namespaceDefinitions(defs []definition, prefix string, a Affine, logger *slog.Logger) ([]definition, map[string]string) {
	idMap := make(map[string]string, len(defs))
	for _, d := range defs {
		idMap[d.ID] = NamespaceID(prefix, d.Icon, d.Origin)
	}

	res := make([]definition, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		newID := idMap[d.ID]
		if seen[newID] {
			continue
		}
		raw, err := TransformDefinition(d.Raw, a, idMap)
		if err != nil {
			logger.Warn("skipping definition", "id", d.ID, "icon", d.Icon, "err", err)
			continue
		}
		seen[newID] = true
		d.ID, d.Raw = newID, raw
		res = append(res, d)
	}
	return res, idMap
}

func definitionsToDefs(sets ...[]definition) *Defs {
	res := NewDefs()
	for _, set := range sets {
		for _, d := range set {
			res.Add(d.Kind, d.ID, d.Raw)
		}
	}
	res.Raw = res.String()
	return res
}
