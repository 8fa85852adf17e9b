package collector

import (
	"sync"
	"sync/atomic"
	"time"
)

// ChartView tracks the load generations of one client chart. Only the most
// recently started load may publish its result.
type ChartView struct {
	gen      atomic.Uint64
	lastUsed atomic.Int64
}

// Begin starts a new load and returns its generation.
func (v *ChartView) Begin() uint64 {
	v.lastUsed.Store(time.Now().UnixNano())
	return v.gen.Add(1)
}

// IsLatest reports whether gen is still the newest load.
func (v *ChartView) IsLatest(gen uint64) bool {
	return v.gen.Load() == gen
}

// ViewRegistry hands out ChartViews keyed by client view id.
type ViewRegistry struct {
	mu    sync.Mutex
	views map[string]*ChartView
}

func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{views: make(map[string]*ChartView)}
}

// Get returns the view for id, creating it on first use.
func (r *ViewRegistry) Get(id string) *ChartView {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if !ok {
		v = &ChartView{}
		v.lastUsed.Store(time.Now().UnixNano())
		r.views[id] = v
	}
	return v
}

// Len returns the number of tracked views.
func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Prune drops views idle for longer than maxIdle and returns how many were removed.
func (r *ViewRegistry) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle).UnixNano()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, v := range r.views {
		if v.lastUsed.Load() < cutoff {
			delete(r.views, id)
			removed++
		}
	}
	return removed
}
