// Package bufferpool hands out fixed size byte buffers for copying payload data, up to a limit.
package bufferpool

import (
	"go.uber.org/atomic"
)

type Pool struct {
	allocated atomic.Int64
	size      int
	free      chan *Buffer
}

type Buffer struct {
	Data []byte
	pool *Pool
}

// New returns a pool of buffers of 'size' bytes. At most 'max' buffers are ever allocated.
func New(size, max int) *Pool {
	if max < 1 {
		max = 1
	}
	return &Pool{
		size: size,
		free: make(chan *Buffer, max),
	}
}

// Get returns a free buffer, allocating one if under the limit. Otherwise it blocks until one is released.
func (p *Pool) Get() *Buffer {
	select {
	case buf := <-p.free:
		return buf
	default:
	}
	if p.reserve() {
		return &Buffer{Data: make([]byte, p.size), pool: p}
	}
	return <-p.free
}

func (p *Pool) reserve() bool {
	for {
		n := p.allocated.Load()
		if int(n) >= cap(p.free) {
			return false
		}
		if p.allocated.CAS(n, n+1) {
			return true
		}
	}
}

// Allocated returns the number of buffers created so far.
func (p *Pool) Allocated() int {
	return int(p.allocated.Load())
}

// Release returns b to its pool. b must not be used afterward.
func (b *Buffer) Release() {
	b.pool.free <- b
}
