package utils

import (
	"context"
	"sync"
)

// Deferred is a value or error produced once, possibly by another goroutine.
// Only the first Resolve or Reject has an effect.
type Deferred[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{
		done: make(chan struct{}),
	}
}

func (d *Deferred[T]) Resolve(value T) bool {
	return d.settle(value, nil)
}

func (d *Deferred[T]) Reject(err error) bool {
	var zero T
	return d.settle(zero, err)
}

func (d *Deferred[T]) settle(value T, err error) bool {
	settled := false
	d.once.Do(func() {
		d.value = value
		d.err = err
		settled = true
		close(d.done)
	})
	return settled
}

func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

func (d *Deferred[T]) IsSettled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
