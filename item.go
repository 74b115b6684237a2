package svgmorph

// IconItem is one shape of an icon: its path data and the presentation
// values carried as attributes and as inline style.
type IconItem struct {
	Path  string
	Attrs StyleAttributes
	Style StyleAttributes
}

// Clone returns a copy of the item that shares nothing with it.
func (it IconItem) Clone() IconItem {
	return IconItem{Path: it.Path, Attrs: it.Attrs.Clone(), Style: it.Style.Clone()}
}

// Icon is a named set of items. Icons are treated as immutable once they
// are handed to a Morpher.
type Icon struct {
	ID        string
	Items     []IconItem
	ViewBox   *ViewBox
	Defs      *Defs
	RootAttrs map[string]string
}

func (ic *Icon) cloneItems() []IconItem {
	res := make([]IconItem, len(ic.Items))
	for i, it := range ic.Items {
		res[i] = it.Clone()
	}
	return res
}

// morphItem is the working copy of an item during a morph.
type morphItem struct {
	path      string
	attrs     StyleAttributes
	style     StyleAttributes
	curve     Curve
	attrsNorm NormalizedStyle
	styleNorm NormalizedStyle
	trans     Transform
	hasTrans  bool
}

func newMorphItem(it IconItem) morphItem {
	return morphItem{path: it.Path, attrs: it.Attrs.Clone(), style: it.Style.Clone()}
}

func (m morphItem) clone() morphItem {
	m.attrs = m.attrs.Clone()
	m.style = m.style.Clone()
	m.curve = m.curve.clone()
	m.attrsNorm = m.attrsNorm.clone()
	m.styleNorm = m.styleNorm.clone()
	return m
}

func cloneMorphItems(items []morphItem) []morphItem {
	res := make([]morphItem, len(items))
	for i, it := range items {
		res[i] = it.clone()
	}
	return res
}

// placeholderItem is a zero-size shape at the center of bb, standing in for
// a missing counterpart so that it grows out of (or shrinks into) that
// point.
func placeholderItem(bb BoundingBox) morphItem {
	return morphItem{
		path:     "M" + formatNumber(bb.CX) + "," + formatNumber(bb.CY) + "l0,0",
		attrs:    StyleAttributes{},
		style:    StyleAttributes{},
		trans:    Transform{Rotate: Rotation{CX: bb.CX, CY: bb.CY}},
		hasTrans: true,
	}
}

// padItems extends the shorter of two item lists with placeholders placed
// at the centers of the counterpart items. Both results have the same
// length.
func padItems(from, to []morphItem) ([]morphItem, []morphItem) {
	for i := len(from); i < len(to); i++ {
		from = append(from, placeholderItem(PathBBox(to[i].path)))
	}
	for i := len(to); i < len(from); i++ {
		to = append(to, placeholderItem(PathBBox(from[i].path)))
	}
	return from, to
}
