// Package pool provides typed wrappers around sync.Pool.
package pool

import "sync"

// Pool is a generic wrapper around sync.Pool.
type Pool[T any] struct {
	internal sync.Pool
}

// New creates a new Pool with the given constructor.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// Get retrieves an item from the pool.
func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	p.internal.Put(item)
}

// Buffers hands out byte slices of one fixed size, used as receive buffers
// for DNS responses. Slices are pooled by pointer to avoid an allocation on
// every Put.
type Buffers struct {
	size int
	p    *Pool[*[]byte]
}

// NewBuffers creates a buffer pool of size-byte slices.
func NewBuffers(size int) *Buffers {
	return &Buffers{
		size: size,
		p: New(func() *[]byte {
			b := make([]byte, size)
			return &b
		}),
	}
}

// Size returns the length of every buffer in the pool.
func (b *Buffers) Size() int { return b.size }

// Get returns a buffer of Size bytes. Its contents are unspecified.
func (b *Buffers) Get() *[]byte {
	buf := b.p.Get()
	*buf = (*buf)[:b.size]
	return buf
}

// Put returns buf to the pool. Buffers of a different capacity are dropped.
func (b *Buffers) Put(buf *[]byte) {
	if buf == nil || cap(*buf) != b.size {
		return
	}
	b.p.Put(buf)
}
