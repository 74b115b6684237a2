package svgmorph

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"
)

type recordingSink struct {
	next      int
	live      map[int]bool
	frames    map[int][]ItemFrame
	destroyed []int
	docs      []Document
}

func newRecordingSink() *recordingSink {
	return &recordingSink{live: map[int]bool{}, frames: map[int][]ItemFrame{}}
}

func (s *recordingSink) Create(index int) NodeHandle {
	h := s.next
	s.next++
	s.live[h] = true
	return h
}

func (s *recordingSink) Update(h NodeHandle, f ItemFrame) {
	s.frames[h.(int)] = append(s.frames[h.(int)], f)
}

func (s *recordingSink) Destroy(h NodeHandle) {
	delete(s.live, h.(int))
	s.destroyed = append(s.destroyed, h.(int))
}

func (s *recordingSink) UpdateDocument(doc Document) {
	s.docs = append(s.docs, doc)
}

func (s *recordingSink) last(h int) ItemFrame {
	f := s.frames[h]
	return f[len(f)-1]
}

type plainSink struct{ updates int }

func (s *plainSink) Create(index int) NodeHandle       { return index }
func (s *plainSink) Update(h NodeHandle, f ItemFrame) { s.updates++ }
func (s *plainSink) Destroy(h NodeHandle)             {}

func testConfig() Config {
	return Config{
		Duration: 100 * time.Millisecond,
		Easing:   "linear",
		Rotation: RotateNone,
		Logger:   slog.New(slog.NewTextHandler(discard{}, nil)),
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newTestMorpher(t *testing.T, icons []Icon, cfg Config) (*Morpher, *recordingSink, *StepClock) {
	t.Helper()
	sink := newRecordingSink()
	clock := NewStepClock(time.Unix(0, 0))
	m, err := New(icons, sink, clock, cfg)
	require.NoError(t, err)
	return m, sink, clock
}

func icon(id string, paths ...string) Icon {
	ic := Icon{ID: id}
	for _, p := range paths {
		ic.Items = append(ic.Items, IconItem{Path: p, Attrs: StyleAttributes{Fill: "#000"}})
	}
	return ic
}

func TestNewShowsInitialIcon(t *testing.T) {
	m, sink, clock := newTestMorpher(t, []Icon{icon("a", "M0 0 L10 10"), icon("b", "M1 1 L2 2")}, testConfig())

	assert.Equal(t, "a", m.CurrentIconID())
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, []string{"a", "b"}, m.Icons())
	assert.Equal(t, 0, clock.Pending())
	require.Len(t, sink.live, 1)
	assert.Equal(t, "M0 0 L10 10", sink.last(0).Path)
	assert.Equal(t, "rgba(0,0,0,1)", sink.last(0).Attrs[Fill])
	assert.Equal(t, DefaultViewBox, m.Document().ViewBox)

	cfg := testConfig()
	cfg.IconID = "b"
	m, _, _ = newTestMorpher(t, []Icon{icon("a", "M0 0"), icon("b", "M1 1")}, cfg)
	assert.Equal(t, "b", m.CurrentIconID())
}

func TestNewErrors(t *testing.T) {
	icons := []Icon{icon("a", "M0 0")}
	clock := NewStepClock(time.Unix(0, 0))
	sink := newRecordingSink()

	_, err := New(icons, nil, clock, testConfig())
	assert.True(t, xerrors.Is(err, ErrInvalidOptions))
	_, err = New(icons, sink, nil, testConfig())
	assert.True(t, xerrors.Is(err, ErrInvalidOptions))

	cfg := testConfig()
	cfg.IconID = "missing"
	_, err = New(icons, sink, clock, cfg)
	assert.True(t, xerrors.Is(err, ErrUnknownIcon))

	cfg = testConfig()
	cfg.Easing = "bounce"
	_, err = New(icons, sink, clock, cfg)
	assert.True(t, xerrors.Is(err, ErrUnknownEasing))

	_, err = New([]Icon{icon("a", "M0 0"), icon("a", "M1 1")}, sink, clock, testConfig())
	assert.True(t, xerrors.Is(err, ErrInvalidIcon))
}

func TestMorphIdenticalIcons(t *testing.T) {
	d := "M2 2 L8 2 L8 8 Z"
	m, sink, clock := newTestMorpher(t, []Icon{icon("a", d), icon("b", d)}, testConfig())
	before := len(sink.frames[0])

	calls := 0
	require.NoError(t, m.MorphTo("b", nil, func() { calls++ }))
	assert.Equal(t, Animating, m.State())
	clock.Run(10*time.Millisecond, 100)

	assert.Equal(t, 1, calls)
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, "b", m.CurrentIconID())

	want := PathToCurve(d).String()
	frames := sink.frames[0][before:]
	require.Greater(t, len(frames), 10)
	for _, f := range frames[:len(frames)-1] {
		assert.Equal(t, want, f.Path)
		assert.Equal(t, "rgba(0,0,0,1)", f.Attrs[Fill])
	}
	assert.Equal(t, d, frames[len(frames)-1].Path, "the last frame is the target's own path")
}

func TestMorphItemCountMismatch(t *testing.T) {
	a := icon("a", "M0 0 L4 4")
	b := icon("b", "M0 0 L2 2", "M10 10 h10 v10 h-10z", "M30 30 L40 40")
	m, sink, clock := newTestMorpher(t, []Icon{a, b}, testConfig())

	require.NoError(t, m.MorphTo("b", nil, nil))
	require.Len(t, sink.live, 3)

	clock.Step(0)
	assert.True(t, strings.HasPrefix(sink.last(1).Path, "M15,15C15,15,"), sink.last(1).Path)
	assert.True(t, strings.HasPrefix(sink.last(2).Path, "M35,35C35,35,"), sink.last(2).Path)
	assert.Equal(t, "rgba(0,0,0,0)", sink.last(1).Attrs[Fill], "placeholders fade in")

	clock.Run(10*time.Millisecond, 100)
	require.Len(t, sink.live, 3)
	for i, it := range b.Items {
		assert.Equal(t, it.Path, sink.last(i).Path)
	}
	assert.Equal(t, "rgba(0,0,0,1)", sink.last(2).Attrs[Fill])

	require.NoError(t, m.MorphTo("a", nil, nil))
	clock.Run(10*time.Millisecond, 100)
	assert.Len(t, sink.live, 1)
	assert.ElementsMatch(t, []int{1, 2}, sink.destroyed)
	assert.Equal(t, a.Items[0].Path, sink.last(0).Path)
	assert.Len(t, m.Frame(), 1)
}

func TestMorphRetargetIsContinuous(t *testing.T) {
	icons := []Icon{
		icon("a", "M0 0 L10 0 L10 10"),
		icon("b", "M0 0 L20 0 L20 20"),
		icon("c", "M5 5 L6 6 L7 7"),
	}
	cfg := testConfig()
	cfg.Rotation = RotateClock
	m, sink, clock := newTestMorpher(t, icons, cfg)

	bDone, cDone := 0, 0
	require.NoError(t, m.MorphTo("b", nil, func() { bDone++ }))
	clock.Step(0)
	clock.Step(50 * time.Millisecond)
	mid := sink.last(0)

	require.NoError(t, m.MorphTo("c", nil, func() { cDone++ }))
	assert.Equal(t, 1, clock.Pending(), "the pending frame of the old morph is cancelled")
	clock.Step(0)
	first := sink.last(0)
	assert.Equal(t, mid.Path, first.Path)
	assert.Equal(t, mid.Attrs, first.Attrs)
	assert.Equal(t, mid.Transform, first.Transform)

	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, 0, bDone)
	assert.Equal(t, 1, cDone)
	assert.Equal(t, "c", m.CurrentIconID())
	assert.Equal(t, "M5 5 L6 6 L7 7", sink.last(0).Path)
}

func TestMorphToInFlightTargetIsNoop(t *testing.T) {
	m, _, clock := newTestMorpher(t, []Icon{icon("a", "M0 0 L1 1"), icon("b", "M0 0 L2 2")}, testConfig())

	require.NoError(t, m.MorphTo("b", nil, nil))
	clock.Step(0)
	clock.Step(30 * time.Millisecond)
	require.NoError(t, m.MorphTo("b", &MorphOptions{Duration: time.Hour}, nil))
	assert.Equal(t, 3, clock.Run(30*time.Millisecond, 100), "the running morph keeps its timing")
	assert.Equal(t, "b", m.CurrentIconID())

	// once idle, morphing to the shown icon runs again
	require.NoError(t, m.MorphTo("b", nil, nil))
	assert.Equal(t, Animating, m.State())
}

func TestMorphToUnknownIcon(t *testing.T) {
	m, sink, clock := newTestMorpher(t, []Icon{icon("a", "M0 0 L1 1")}, testConfig())
	updates := len(sink.frames[0])

	err := m.MorphTo("nope", nil, nil)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, ErrUnknownIcon))
	assert.Equal(t, Idle, m.State())
	assert.Equal(t, "a", m.CurrentIconID())
	assert.Equal(t, 0, clock.Pending())
	assert.Len(t, sink.frames[0], updates)

	err = m.MorphTo("a", &MorphOptions{Easing: "bounce"}, nil)
	assert.True(t, xerrors.Is(err, ErrUnknownEasing))
	assert.Equal(t, Idle, m.State())
}

func TestMorphViewBoxScale(t *testing.T) {
	vb24 := ViewBox{Width: 24, Height: 24}
	vb48 := ViewBox{Width: 48, Height: 48}
	a := icon("a", "M0 0 L24 24")
	a.ViewBox = &vb24
	b := icon("b", "M0 0 L48 48")
	b.ViewBox = &vb48
	m, sink, clock := newTestMorpher(t, []Icon{a, b}, testConfig())
	assert.Equal(t, vb24, m.Document().ViewBox)

	require.NoError(t, m.MorphTo("b", nil, nil))
	assert.Equal(t, vb48, m.Document().ViewBox)
	clock.Step(0)
	assert.Equal(t, "M0,0C0,0,48,48,48,48", sink.last(0).Path, "the source is scaled by exactly 2")
	clock.Step(50 * time.Millisecond)
	assert.Equal(t, "M0,0C0,0,48,48,48,48", sink.last(0).Path)

	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, "M0 0 L48 48", sink.last(0).Path)
	assert.Equal(t, vb48, sink.docs[len(sink.docs)-1].ViewBox)
}

func TestMorphRotation(t *testing.T) {
	cfg := testConfig()
	cfg.Rotation = RotateClock
	cfg.SharedRotationCenter = true
	icons := []Icon{
		icon("a", "M0 0 L2 2"),
		icon("b", "M0 0 L10 10", "M10 10 L20 20"),
	}
	m, sink, clock := newTestMorpher(t, icons, cfg)

	require.NoError(t, m.MorphTo("b", nil, nil))
	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, "rotate(0 10 10)", sink.last(0).Transform)
	assert.Equal(t, "rotate(0 10 10)", sink.last(1).Transform)

	require.NoError(t, m.MorphTo("a", &MorphOptions{Rotation: RotateCounterClock}, nil))
	clock.Step(0)
	clock.Step(50 * time.Millisecond)
	// the placeholder for the dropped item counts toward the shared center
	assert.Equal(t, "rotate(-180 9 9)", sink.last(0).Transform)
	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, "rotate(0 8 8)", sink.last(0).Transform)
}

func TestMorphRenamesDefinitions(t *testing.T) {
	a := icon("a", "M0 0 L10 10")
	a.Items[0].Attrs = StyleAttributes{Fill: "url(#g)"}
	a.Defs = NewDefs()
	a.Defs.Add(Gradient, "g", `<linearGradient id="g"/>`)
	b := icon("b", "M0 0 L10 10")
	b.Items[0].Attrs = StyleAttributes{Fill: "url(#g)"}
	b.Defs = NewDefs()
	b.Defs.Add(Gradient, "g", `<linearGradient id="g" x1="1"/>`)

	m, sink, clock := newTestMorpher(t, []Icon{a, b}, testConfig())
	assert.Equal(t, "url(#to_a_g)", sink.last(0).Attrs[Fill])
	assert.Contains(t, m.Document().Defs.Gradients, "to_a_g")

	require.NoError(t, m.MorphTo("b", nil, nil))
	defs := m.Document().Defs
	assert.Equal(t, `<linearGradient id="from_a_g"/>`, defs.Gradients["from_a_g"])
	assert.Equal(t, `<linearGradient id="to_b_g" x1="1"/>`, defs.Gradients["to_b_g"])

	clock.Step(0)
	assert.Equal(t, "url(#from_a_g)", sink.last(0).Attrs[Fill])
	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, "url(#to_b_g)", sink.last(0).Attrs[Fill])

	final := sink.docs[len(sink.docs)-1].Defs
	assert.Equal(t, 1, final.Len())
	assert.Contains(t, final.Gradients, "to_b_g")
}

func TestMorphCallbackCanChain(t *testing.T) {
	m, _, clock := newTestMorpher(t, []Icon{icon("a", "M0 0 L1 1"), icon("b", "M0 0 L2 2")}, testConfig())

	var order []string
	require.NoError(t, m.MorphTo("b", nil, func() {
		order = append(order, "b")
		require.NoError(t, m.MorphTo("a", nil, func() { order = append(order, "a") }))
	}))
	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, []string{"b", "a"}, order)
	assert.Equal(t, "a", m.CurrentIconID())
}

func TestMorpherRegisterEasing(t *testing.T) {
	cfg := testConfig()
	cfg.Easings = NewEasingRegistry()
	sink := &plainSink{}
	m, err := New([]Icon{icon("a", "M0 0 L1 1"), icon("b", "M0 0 L2 2")}, sink, NewStepClock(time.Unix(0, 0)), cfg)
	require.NoError(t, err)

	half := func(t float64) float64 { return t / 2 }
	require.NoError(t, m.RegisterEasing("half", half))
	assert.True(t, xerrors.Is(m.RegisterEasing("half", half), ErrEasingExists))
	require.NoError(t, m.MorphTo("b", &MorphOptions{Easing: "half"}, nil))

	_, err = DefaultEasings.Lookup("half")
	assert.Error(t, err, "a private registry does not leak into the default one")
	assert.Greater(t, sink.updates, 0)
}

func TestMorphIgnoresUnusableViewBox(t *testing.T) {
	a := icon("a", "M0 0 L10 10")
	a.ViewBox = &ViewBox{Width: 48, Height: 48}
	b := icon("b", "M0 0 L20 20")
	b.ViewBox = &ViewBox{Width: 0, Height: 24}

	m, sink, clock := newTestMorpher(t, []Icon{a, b}, testConfig())
	require.NoError(t, m.MorphTo("b", nil, nil))
	assert.Equal(t, *a.ViewBox, m.Document().ViewBox)
	clock.Run(10*time.Millisecond, 100)
	assert.Equal(t, "M0 0 L20 20", sink.last(0).Path)
}

func TestMorphSnapsToTargetValues(t *testing.T) {
	cfg := testConfig()
	cfg.Easing = "sine-in"
	cfg.Rotation = RotateClock
	a := icon("a", "M0 0 L20 20")
	b := icon("b", "M0 0 L20 20")
	b.Items[0].Attrs[Opacity] = "0.7"
	b.Items[0].Style = StyleAttributes{Stroke: "rgba(10,20,30,0.3)", StrokeWidth: "1.1"}

	m, sink, clock := newTestMorpher(t, []Icon{a, b}, cfg)
	for _, id := range []string{"b", "a", "b", "a", "b"} {
		require.NoError(t, m.MorphTo(id, nil, nil))
		clock.Run(7*time.Millisecond, 100)
		assert.Equal(t, "rotate(0 10 10)", sink.last(0).Transform, "after morphing to %s", id)
	}

	last := sink.last(0)
	assert.Equal(t, "0.7", last.Attrs[Opacity])
	assert.Equal(t, "rgba(10,20,30,0.3)", last.Style[Stroke])
	assert.Equal(t, "1.1", last.Style[StrokeWidth])
	assert.Equal(t, last, m.Frame()[0])
}
