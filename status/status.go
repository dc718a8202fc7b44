// Package status is the engine's telemetry surface: a registry of named
// atomics. Hot loops cache metric pointers at construction and write to
// them lock-free; readers snapshot on demand.
package status

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry groups counters and gauges by name.
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry.
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot returns all metrics as plain values keyed by name,
// floats rendered alongside ints. Keys are unique across both maps
// by convention (dotted names).
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Ints.Count()+r.Floats.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = float64(ptr.Load())
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = ptr.Get()
	})
	return out
}

// MetricMap is a concurrency-safe registry for metrics of type T.
// Registration takes the mutex; cached pointer access is lock-free.
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an initialized MetricMap.
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric pointer for key, allocating on first use.
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

// Range iterates over all metrics in sorted key order.
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Count returns the number of registered metrics.
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// AtomicFloat provides atomic float64 operations via bit conversion.
// The zero value is ready to use.
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val atomically.
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value atomically.
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta and returns the new value.
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
