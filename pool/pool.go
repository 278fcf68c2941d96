// pool.go implements a generic pool of natively-allocated objects.

// Package pool provides a generic object pool whose objects release their
// native memory when garbage collected.
package pool

import (
	"runtime"
	"sync"
)

// ReuseMemory may be disabled to make every Get allocate; useful when
// chasing use-after-free bugs with sanitizers.
var ReuseMemory = true

type Pool[T any] struct {
	sync.Pool
	ResetFunc func(*T)
}

// NewPool creates a pool. resetFunc is applied on Put, freeFunc when a
// pooled object is collected.
func NewPool[T any](
	allocFunc func() *T,
	resetFunc func(*T),
	freeFunc func(*T),
) *Pool[T] {
	return &Pool[T]{
		Pool: sync.Pool{
			New: func() any {
				v := allocFunc()
				runtime.SetFinalizer(v, func(v *T) {
					freeFunc(v)
				})
				return v
			},
		},
		ResetFunc: resetFunc,
	}
}

func (p *Pool[T]) Get() *T {
	return p.Pool.Get().(*T)
}

// Put resets and returns items to the pool. nil items are ignored.
func (p *Pool[T]) Put(items ...*T) {
	if !ReuseMemory {
		return
	}
	for _, item := range items {
		if item == nil {
			continue
		}
		p.ResetFunc(item)
		p.Pool.Put(item)
	}
}
