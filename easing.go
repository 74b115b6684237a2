package svgmorph

import (
	"math"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// Easing maps raw progress in [0, 1] to eased progress. The result may
// leave [0, 1] (elastic easings overshoot).
type Easing func(t float64) float64

const (
	elasticPeriod      = 0.3
	elasticInOutPeriod = 0.45
)

func elasticShift(p float64) float64 {
	return p / (2 * math.Pi) * math.Asin(1)
}

var builtinEasings = map[string]Easing{
	"linear": func(t float64) float64 { return t },

	"quad-in":  func(t float64) float64 { return t * t },
	"quad-out": func(t float64) float64 { return t * (2 - t) },
	"quad-in-out": func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	},

	"cubic-in": func(t float64) float64 { return t * t * t },
	"cubic-out": func(t float64) float64 {
		t--
		return t*t*t + 1
	},
	"cubic-in-out": func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return (t-1)*(2*t-2)*(2*t-2) + 1
	},

	"quart-in": func(t float64) float64 { return t * t * t * t },
	"quart-out": func(t float64) float64 {
		t--
		return 1 - t*t*t*t
	},
	"quart-in-out": func(t float64) float64 {
		if t < 0.5 {
			return 8 * t * t * t * t
		}
		t--
		return 1 - 8*t*t*t*t
	},

	"quint-in": func(t float64) float64 { return t * t * t * t * t },
	"quint-out": func(t float64) float64 {
		t--
		return 1 + t*t*t*t*t
	},
	"quint-in-out": func(t float64) float64 {
		if t < 0.5 {
			return 16 * t * t * t * t * t
		}
		t--
		return 1 + 16*t*t*t*t*t
	},

	"sine-in":     func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	"sine-out":    func(t float64) float64 { return math.Sin(t * math.Pi / 2) },
	"sine-in-out": func(t float64) float64 { return 0.5 * (1 - math.Cos(math.Pi*t)) },

	"expo-in": func(t float64) float64 {
		if t == 0 {
			return 0
		}
		return math.Pow(2, 10*(t-1))
	},
	"expo-out": func(t float64) float64 {
		if t == 1 {
			return 1
		}
		return 1 - math.Pow(2, -10*t)
	},
	"expo-in-out": func(t float64) float64 {
		switch {
		case t == 0:
			return 0
		case t == 1:
			return 1
		}
		t *= 2
		if t < 1 {
			return 0.5 * math.Pow(2, 10*(t-1))
		}
		return 0.5 * (2 - math.Pow(2, -10*(t-1)))
	},

	"circ-in":  func(t float64) float64 { return 1 - math.Sqrt(1-t*t) },
	"circ-out": func(t float64) float64 { t--; return math.Sqrt(1 - t*t) },
	"circ-in-out": func(t float64) float64 {
		t *= 2
		if t < 1 {
			return -0.5 * (math.Sqrt(1-t*t) - 1)
		}
		t -= 2
		return 0.5 * (math.Sqrt(1-t*t) + 1)
	},

	"elastic-in": func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		s := elasticShift(elasticPeriod)
		t--
		return -(math.Pow(2, 10*t) * math.Sin((t-s)*2*math.Pi/elasticPeriod))
	},
	"elastic-out": func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		s := elasticShift(elasticPeriod)
		return math.Pow(2, -10*t)*math.Sin((t-s)*2*math.Pi/elasticPeriod) + 1
	},
	"elastic-in-out": func(t float64) float64 {
		if t == 0 || t == 1 {
			return t
		}
		s := elasticShift(elasticInOutPeriod)
		t = t*2 - 1
		if t < 0 {
			return -0.5 * (math.Pow(2, 10*t) * math.Sin((t-s)*2*math.Pi/elasticInOutPeriod))
		}
		return math.Pow(2, -10*t)*math.Sin((t-s)*2*math.Pi/elasticInOutPeriod)*0.5 + 1
	},
}

// CubicBezierEasing returns a CSS style timing function. The curve starts
// at (0,0) heading toward (x1,y1) and arrives at (1,1) coming from (x2,y2).
func CubicBezierEasing(x1, y1, x2, y2 float64) Easing {
	return func(x float64) float64 {
		if x <= 0 || x >= 1 {
			return x
		}
		// Solve B(t) = x for t with Newton's method, then evaluate y at t.
		t := x
		for i := 0; i < 8; i++ {
			t2 := t * t
			d := 1 - t
			nx := 3*d*d*t*x1 + 3*d*t2*x2 + t2*t
			dxdt := 3*d*d*x1 + 6*d*t*(x2-x1) + 3*t2*(1-x2)
			if dxdt == 0 {
				break
			}
			t -= (nx - x) / dxdt
			if t <= 0 || t >= 1 {
				break
			}
		}
		t = clamp(t, 0, 1)
		d := 1 - t
		return 3*d*d*t*y1 + 3*d*t*t*y2 + t*t*t
	}
}

// EasingRegistry is a named set of easings safe for concurrent use.
type EasingRegistry struct {
	mu      sync.RWMutex
	easings map[string]Easing
}

// NewEasingRegistry returns a registry holding the built in easings.
func NewEasingRegistry() *EasingRegistry {
	r := &EasingRegistry{easings: make(map[string]Easing, len(builtinEasings))}
	for name, fn := range builtinEasings {
		r.easings[name] = fn
	}
	return r
}

// Register adds fn under name. Names are never overwritten.
func (r *EasingRegistry) Register(name string, fn Easing) error {
	if name == "" || fn == nil {
		return xerrors.Errorf("easing %q: empty name or nil function: %w", name, ErrInvalidOptions)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.easings[name]; ok {
		return xerrors.Errorf("easing %q: %w", name, ErrEasingExists)
	}
	r.easings[name] = fn
	return nil
}

// Lookup returns the easing registered under name.
func (r *EasingRegistry) Lookup(name string) (Easing, error) {
	r.mu.RLock()
	fn, ok := r.easings[name]
	r.mu.RUnlock()
	if !ok {
		return nil, xerrors.Errorf("easing %q: %w", name, ErrUnknownEasing)
	}
	return fn, nil
}

// Names lists the registered easings in sorted order.
func (r *EasingRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.easings)
	slices.Sort(names)
	return names
}

// DefaultEasings is the process wide registry used by a Morpher whose
// Config carries none.
var DefaultEasings = NewEasingRegistry()
