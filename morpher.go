package svgmorph

import (
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

// State is the phase of a Morpher.
type State int

const (
	Idle State = iota
	Setup
	Animating
	Finalizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Setup:
		return "setup"
	case Animating:
		return "animating"
	case Finalizing:
		return "finalizing"
	}
	return "unknown"
}

// Morpher animates a set of rendered items from one icon to another. It
// is driven by a FrameClock and pushes every frame to a RenderSink.
//
// A Morpher is not safe for concurrent use. All calls, and the clock
// callbacks, must happen on one goroutine.
type Morpher struct {
	cfg    Config
	logger *slog.Logger
	log    *slog.Logger
	sink   RenderSink
	doc    DocumentSink
	clock  FrameClock

	icons map[string]*Icon
	order []string

	state  State
	curID  string
	toID   string
	params morphParams
	done   func()

	gen          uint64
	frame        FrameID
	framePending bool
	start        time.Time
	started      bool

	cur, from, to []morphItem
	handles       []NodeHandle

	frameBox         ViewBox
	hasFrame         bool
	curDefs          []definition
	fromDefs, toDefs []definition
}

// New returns a Morpher showing cfg.IconID, or the first icon when it is
// empty. The initial icon is rendered immediately, without animation.
func New(icons []Icon, sink RenderSink, clock FrameClock, cfg Config) (*Morpher, error) {
	if sink == nil {
		return nil, xerrors.Errorf("nil render sink: %w", ErrInvalidOptions)
	}
	if clock == nil {
		return nil, xerrors.Errorf("nil frame clock: %w", ErrInvalidOptions)
	}
	if err := validateIcons(icons); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Morpher{
		cfg:    cfg,
		logger: cfg.Logger,
		log:    cfg.Logger,
		sink:   sink,
		clock:  clock,
		icons:  make(map[string]*Icon, len(icons)),
	}
	m.doc, _ = sink.(DocumentSink)
	for i := range icons {
		ic := icons[i]
		ic.Items = ic.cloneItems()
		m.icons[ic.ID] = &ic
		m.order = append(m.order, ic.ID)
	}

	initial := cfg.IconID
	if initial == "" && len(m.order) > 0 {
		initial = m.order[0]
	}
	if initial == "" {
		return m, nil
	}
	if _, ok := m.icons[initial]; !ok {
		return nil, xerrors.Errorf("initial icon %q: %w", initial, ErrUnknownIcon)
	}
	m.show(initial)
	return m, nil
}

// show renders iconID at once, skipping the animation and the callback.
func (m *Morpher) show(iconID string) {
	m.toID = iconID
	m.done = nil
	m.params = morphParams{easing: builtinEasings["linear"], rotation: RotateNone}
	m.setup(iconID)
	m.update(1)
	m.finalize()
}

// MorphTo starts a morph from whatever is shown now to iconID. done, if
// not nil, is called once when the morph completes; it is dropped if the
// morph is interrupted by another MorphTo. Morphing to the icon already
// being animated to does nothing. An unknown icon returns ErrUnknownIcon
// and leaves the Morpher untouched.
func (m *Morpher) MorphTo(iconID string, opts *MorphOptions, done func()) error {
	if m.state == Animating && iconID == m.toID {
		return nil
	}
	if _, ok := m.icons[iconID]; !ok {
		return xerrors.Errorf("morph to %q: %w", iconID, ErrUnknownIcon)
	}
	p, err := m.cfg.resolve(opts)
	if err != nil {
		return err
	}

	if m.framePending {
		m.clock.CancelFrame(m.frame)
		m.framePending = false
	}
	m.log = m.logger.With("morph", uuid.NewString())
	m.params = p
	m.done = done
	m.toID = iconID
	m.setup(iconID)
	m.state = Animating
	m.requestFrame()
	return nil
}

// RegisterEasing adds a named easing to the registry the Morpher uses.
func (m *Morpher) RegisterEasing(name string, fn Easing) error {
	return m.cfg.Easings.Register(name, fn)
}

// CurrentIconID returns the icon of the last completed morph.
func (m *Morpher) CurrentIconID() string {
	return m.curID
}

// State returns the current phase.
func (m *Morpher) State() State {
	return m.state
}

// Icons returns the registered icon ids in registration order.
func (m *Morpher) Icons() []string {
	return append([]string(nil), m.order...)
}

// Frame returns the last rendered state of every item.
func (m *Morpher) Frame() []ItemFrame {
	res := make([]ItemFrame, len(m.cur))
	for i := range m.cur {
		res[i] = m.itemFrame(i)
	}
	return res
}

// Document returns the frame the items are rendered in and the
// definitions they refer to.
func (m *Morpher) Document() Document {
	return Document{ViewBox: m.frameBox, Defs: definitionsToDefs(m.curDefs)}
}

func (m *Morpher) requestFrame() {
	gen := m.gen + 1
	m.gen = gen
	m.frame = m.clock.RequestFrame(func(now time.Time) {
		if gen != m.gen {
			return
		}
		m.framePending = false
		m.tick(now)
	})
	m.framePending = true
}

func (m *Morpher) tick(now time.Time) {
	if m.state != Animating {
		return
	}
	if !m.started {
		m.start, m.started = now, true
	}
	progress := 1.0
	if m.params.duration > 0 {
		progress = min(float64(now.Sub(m.start))/float64(m.params.duration), 1)
	}
	m.update(progress)
	if progress < 1 {
		m.requestFrame()
		return
	}
	m.finalize()
}

// setup builds the from and to item lists for a morph to iconID, starting
// from the items currently shown.
func (m *Morpher) setup(iconID string) {
	m.state = Setup
	m.started = false
	toIcon := m.icons[iconID]

	var curFrame *ViewBox
	if m.hasFrame {
		curFrame = &m.frameBox
	}
	target := toIcon.ViewBox
	if target != nil && (target.Width <= 0 || target.Height <= 0) {
		m.log.Warn("ignoring unusable viewBox", "icon", iconID, "viewBox", target.String())
		target = nil
	}
	frame := CalculateOptimalViewBox(curFrame, target)
	fromAff, toAff := IdentityAffine, IdentityAffine
	if m.hasFrame {
		fromAff = AffineBetween(m.frameBox, frame)
	}
	if target != nil {
		toAff = AffineBetween(*target, frame)
	}

	fromDefs, fromMap := namespaceDefinitions(m.curDefs, fromPrefix, fromAff, m.log)
	toDefs, toMap := namespaceDefinitions(iconDefinitions(toIcon), toPrefix, toAff, m.log)

	from := cloneMorphItems(m.cur)
	for i := range from {
		it := &from[i]
		if !fromAff.IsIdentity() {
			it.path = TransformPath(it.path, fromAff)
			it.trans.Rotate.CX, it.trans.Rotate.CY = fromAff.Apply(it.trans.Rotate.CX, it.trans.Rotate.CY)
		}
		rewriteStyleRefs(it.attrs, fromMap)
		rewriteStyleRefs(it.style, fromMap)
	}
	to := make([]morphItem, len(toIcon.Items))
	for i, src := range toIcon.Items {
		it := newMorphItem(src)
		if !toAff.IsIdentity() {
			it.path = TransformPath(it.path, toAff)
		}
		rewriteStyleRefs(it.attrs, toMap)
		rewriteStyleRefs(it.style, toMap)
		to[i] = it
	}
	from, to = padItems(from, to)

	for len(m.handles) < len(from) {
		m.handles = append(m.handles, m.sink.Create(len(m.handles)))
	}

	var sumX, sumY float64
	for i := range from {
		f, t := &from[i], &to[i]
		f.curve, t.curve = EqualizeCurves(f.path, t.path)
		f.attrsNorm, t.attrsNorm = styleToNorm(f.attrs, t.attrs, m.cfg.CurrentColor, m.log)
		f.styleNorm, t.styleNorm = styleToNorm(f.style, t.style, m.cfg.CurrentColor, m.log)
		f.attrs, t.attrs = f.attrsNorm.Attributes(), t.attrsNorm.Attributes()
		f.style, t.style = f.styleNorm.Attributes(), t.styleNorm.Attributes()

		bb := t.curve.BBox()
		t.trans = Transform{Rotate: Rotation{CX: bb.CX, CY: bb.CY}}
		t.hasTrans = true
		sumX += bb.CX
		sumY += bb.CY
	}
	if m.cfg.SharedRotationCenter && len(to) > 0 {
		cx, cy := sumX/float64(len(to)), sumY/float64(len(to))
		for i := range to {
			to[i].trans.Rotate.CX, to[i].trans.Rotate.CY = cx, cy
		}
	}
	for i := range from {
		f, t := &from[i], &to[i]
		if !f.hasTrans {
			f.trans = Transform{Rotate: Rotation{CX: t.trans.Rotate.CX, CY: t.trans.Rotate.CY}}
			f.hasTrans = true
		}
		t.trans.Rotate.Angle = TargetAngle(m.params.rotation, f.trans.Rotate.Angle)
	}

	m.from, m.to = from, to
	m.cur = cloneMorphItems(from)
	m.frameBox, m.hasFrame = frame, true
	m.fromDefs, m.toDefs = fromDefs, toDefs
	m.curDefs = append(append([]definition(nil), fromDefs...), toDefs...)
	m.updateDocument()

	m.log.Debug("morph setup",
		"from", m.curID, "to", iconID, "items", len(from),
		"viewBox", frame.String(), "rotation", string(m.params.rotation),
		"duration", m.params.duration)
}

// update renders the items at raw progress p.
func (m *Morpher) update(p float64) {
	t := m.params.easing(p)
	for i := range m.cur {
		c, f, to := &m.cur[i], &m.from[i], &m.to[i]
		c.curve = CurveCalc(f.curve, to.curve, t)
		c.path = c.curve.String()
		c.attrsNorm = StyleNormCalc(f.attrsNorm, to.attrsNorm, t)
		c.attrs = c.attrsNorm.Attributes()
		c.styleNorm = StyleNormCalc(f.styleNorm, to.styleNorm, t)
		c.style = c.styleNorm.Attributes()
		c.trans = TransCalc(f.trans, to.trans, t)
		c.hasTrans = true
	}
	m.render()
}

// finalize snaps every item onto the target, drops the slots the target
// does not use and calls the completion callback.
func (m *Morpher) finalize() {
	m.state = Finalizing
	n := len(m.icons[m.toID].Items)
	for i := len(m.handles) - 1; i >= n; i-- {
		m.sink.Destroy(m.handles[i])
	}
	m.handles = m.handles[:min(n, len(m.handles))]
	m.cur = m.cur[:min(n, len(m.cur))]
	for i := range m.cur {
		c, to := &m.cur[i], &m.to[i]
		c.path = to.path
		c.curve = to.curve.clone()
		c.attrsNorm, c.styleNorm = to.attrsNorm.clone(), to.styleNorm.clone()
		c.attrs, c.style = c.attrsNorm.Attributes(), c.styleNorm.Attributes()
		c.trans = to.trans
		// keep the angle within one turn
		c.trans.Rotate.Angle = math.Mod(c.trans.Rotate.Angle, 360)
		c.hasTrans = true
	}
	m.render()

	m.curDefs = m.toDefs
	m.fromDefs, m.toDefs = nil, nil
	m.from, m.to = nil, nil
	m.updateDocument()

	m.log.Debug("morph finished", "from", m.curID, "to", m.toID)
	m.curID, m.toID = m.toID, ""
	m.state = Idle

	done := m.done
	m.done = nil
	if done != nil {
		done()
	}
}

func (m *Morpher) itemFrame(i int) ItemFrame {
	c := m.cur[i]
	return ItemFrame{
		Index:     i,
		Path:      c.path,
		Attrs:     c.attrs.Clone(),
		Style:     c.style.Clone(),
		Transform: c.trans.String(),
	}
}

func (m *Morpher) render() {
	for i, h := range m.handles {
		m.sink.Update(h, m.itemFrame(i))
	}
}

func (m *Morpher) updateDocument() {
	if m.doc == nil {
		return
	}
	m.doc.UpdateDocument(m.Document())
}
