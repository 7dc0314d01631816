package factors

import (
	"strings"
	"sync/atomic"
)

// Axis constants. AxisWeight is the cooking-yield axis; AxisAll is the
// catch-all retention row a method may declare for every nutrient.
const (
	AxisWeight = "WEIGHT"
	AxisAll    = "ALL"
)

// Key identifies one correction factor: a cooking method paired with either
// the weight axis or a nutrient name. Both parts are matched after
// upper-case trimming.
type Key struct {
	Method string
	Axis   string
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NewKey builds a normalized key.
func NewKey(method, axis string) Key {
	return Key{Method: norm(method), Axis: norm(axis)}
}

// Set resolves yield and retention factors through a precedence chain:
// user override, then built-in default, then the method's ALL retention row
// (override before default again), then identity. Unknown methods never
// error; absent domain knowledge must not block computation. Sets are
// immutable; replacing the overrides builds a new Set.
type Set struct {
	defaults  map[Key]float64
	overrides map[Key]float64
}

// Default returns a set carrying only the built-in factor tables.
func Default() *Set {
	return &Set{defaults: defaultFactors, overrides: map[Key]float64{}}
}

// WithOverrides returns a copy of the set with the override layer replaced.
func (s *Set) WithOverrides(overrides map[Key]float64) *Set {
	copied := make(map[Key]float64, len(overrides))
	for k, v := range overrides {
		copied[NewKey(k.Method, k.Axis)] = v
	}
	return &Set{defaults: s.defaults, overrides: copied}
}

// Overrides returns a copy of the current override layer.
func (s *Set) Overrides() map[Key]float64 {
	out := make(map[Key]float64, len(s.overrides))
	for k, v := range s.overrides {
		out[k] = v
	}
	return out
}

// Yield returns the multiplicative weight change for a cooking method.
func (s *Set) Yield(method string) float64 {
	if f, ok := s.lookup(NewKey(method, AxisWeight)); ok {
		return f
	}
	return 1.0
}

// Retention returns the fraction of a nutrient surviving a cooking method.
func (s *Set) Retention(method, nutrient string) float64 {
	if f, ok := s.lookup(NewKey(method, nutrient)); ok {
		return f
	}
	if f, ok := s.lookup(NewKey(method, AxisAll)); ok {
		return f
	}
	return 1.0
}

func (s *Set) lookup(k Key) (float64, bool) {
	if f, ok := s.overrides[k]; ok {
		return f, true
	}
	if f, ok := s.defaults[k]; ok {
		return f, true
	}
	return 0, false
}

// Store publishes the active factor set; override uploads swap the whole
// set atomically.
type Store struct {
	current atomic.Pointer[Set]
}

// NewStore returns a store seeded with the built-in defaults.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(Default())
	return s
}

// Current returns the active set.
func (s *Store) Current() *Set {
	return s.current.Load()
}

// Swap publishes a new set.
func (s *Store) Swap(set *Set) {
	s.current.Store(set)
}
