package svgmorph

import (
	"sync"
	"time"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameClock schedules frame callbacks, the way requestAnimationFrame does
// in a browser. Callbacks receive the frame timestamp.
type FrameClock interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// StepClock is a FrameClock driven by hand. Requested callbacks run on the
// next call to Step, in request order.
type StepClock struct {
	mu      sync.Mutex
	now     time.Time
	next    FrameID
	pending []pendingFrame
}

type pendingFrame struct {
	id FrameID
	fn func(time.Time)
}

// NewStepClock returns a clock reading start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// RequestFrame implements FrameClock.
func (c *StepClock) RequestFrame(fn func(now time.Time)) FrameID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.pending = append(c.pending, pendingFrame{id: c.next, fn: fn})
	return c.next
}

// CancelFrame implements FrameClock. Unknown ids are ignored.
func (c *StepClock) CancelFrame(id FrameID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.pending {
		if f.id == id {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Now returns the current clock reading.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of callbacks waiting for the next frame.
func (c *StepClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Step advances the clock by d and runs the callbacks that were pending
// before the call. Callbacks requested while stepping wait for the next
// Step. It returns the number of callbacks run.
func (c *StepClock) Step(d time.Duration) int {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	frames := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, f := range frames {
		f.fn(now)
	}
	return len(frames)
}

// Run steps by d until no callback is pending or limit steps were taken.
func (c *StepClock) Run(d time.Duration, limit int) int {
	steps := 0
	for steps < limit && c.Pending() > 0 {
		c.Step(d)
		steps++
	}
	return steps
}
