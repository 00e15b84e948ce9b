package cuid2

import "sync/atomic"

// Counter is a lock-free, monotonically increasing 64-bit counter. After
// math.MaxUint64 it wraps to 0. The zero value is ready to use.
type Counter struct {
	n atomic.Uint64
}

// Next increments the counter and returns the new value.
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}

// Reset sets the counter so that the following call to Next returns
// start+1.
func (c *Counter) Reset(start uint64) {
	c.n.Store(start)
}
