package application

import "sync/atomic"

// StoreVersion tracks a monotonically increasing mutation counter shared by
// the write-side services. Read-side caches key entries by the current
// version, so any room or booking mutation implicitly invalidates them.
type StoreVersion struct {
	counter atomic.Uint64
}

// Bump records a mutation. Safe on a nil receiver.
func (v *StoreVersion) Bump() {
	if v != nil {
		v.counter.Add(1)
	}
}

// Current returns the latest version. Safe on a nil receiver.
func (v *StoreVersion) Current() uint64 {
	if v == nil {
		return 0
	}
	return v.counter.Load()
}
