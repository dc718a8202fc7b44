package engine

// System is a unit of per-tick simulation logic. Systems run inside the
// fixed update in ascending Priority order; lower values run first.
// Returning an error aborts the tick and propagates to the loop caller.
type System interface {
	Update(w *World, dt float64) error
	Priority() int
}
