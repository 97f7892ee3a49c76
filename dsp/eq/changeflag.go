package eq

import "sync/atomic"

// ChangeFlag is a dirty bit shared between a parameter-change notifier and
// a periodic consumer. Set never blocks; CompareAndClear reports a change
// exactly once no matter how many Set calls preceded it.
type ChangeFlag struct {
	dirty atomic.Bool
}

// Set marks the flag dirty.
func (f *ChangeFlag) Set() {
	f.dirty.Store(true)
}

// CompareAndClear clears the flag and reports whether it was set.
func (f *ChangeFlag) CompareAndClear() bool {
	return f.dirty.CompareAndSwap(true, false)
}

// IsSet reports whether the flag is dirty without clearing it.
func (f *ChangeFlag) IsSet() bool {
	return f.dirty.Load()
}
