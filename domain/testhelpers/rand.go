package testhelpers

import "sync"

// ScriptedRand replays fixed values. IntN values are reduced modulo n; once a
// script runs out the last value repeats, or zero when the script is empty.
type ScriptedRand struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
}

// NewScriptedRand creates a source replaying the given values
func NewScriptedRand(ints []int, floats []float64) *ScriptedRand {
	return &ScriptedRand{ints: ints, floats: floats}
}

func (r *ScriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	if len(r.ints) > 1 {
		r.ints = r.ints[1:]
	}
	return ((v % n) + n) % n
}

func (r *ScriptedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	if len(r.floats) > 1 {
		r.floats = r.floats[1:]
	}
	return v
}
