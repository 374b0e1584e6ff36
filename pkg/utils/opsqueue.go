package utils

import (
	"context"
	"sync"

	"github.com/frostbyte73/core"
	"github.com/gammazero/deque"

	"github.com/livekit/protocol/logger"
)

// OpsQueue runs enqueued operations one at a time in submission order.
// The backlog is unbounded, size only sets when a backlog warning is logged.
type OpsQueue struct {
	logger logger.Logger
	name   string
	size   int

	lock      sync.Mutex
	ops       *deque.Deque[func()]
	wake      chan struct{}
	isStopped bool
	warned    bool
	done      core.Fuse
}

func NewOpsQueue(logger logger.Logger, name string, size int) *OpsQueue {
	return &OpsQueue{
		logger: logger,
		name:   name,
		size:   size,
		ops:    new(deque.Deque[func()]),
		wake:   make(chan struct{}, 1),
	}
}

func (oq *OpsQueue) Start() {
	go oq.process()
}

// Stop lets already queued operations run and rejects new ones.
func (oq *OpsQueue) Stop() {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		return
	}

	oq.isStopped = true
	oq.lock.Unlock()
	oq.notify()
}

// Enqueue returns false only once the queue is stopped.
func (oq *OpsQueue) Enqueue(op func()) bool {
	oq.lock.Lock()
	if oq.isStopped {
		oq.lock.Unlock()
		return false
	}

	oq.ops.PushBack(op)
	backlog := oq.ops.Len()
	warn := oq.size > 0 && backlog > oq.size && !oq.warned
	if warn {
		oq.warned = true
	}
	oq.lock.Unlock()

	if warn {
		oq.logger.Warnw("ops queue backlog", nil, "name", oq.name, "backlog", backlog, "size", oq.size)
	}
	oq.notify()
	return true
}

// Flush waits until every operation enqueued before the call has run.
func (oq *OpsQueue) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	if !oq.Enqueue(func() { close(flushed) }) {
		// stopped queues still drain what they hold
		select {
		case <-oq.done.Watch():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the queue is stopped and drained.
func (oq *OpsQueue) Done() <-chan struct{} {
	return oq.done.Watch()
}

// Backlog is the number of operations waiting to run.
func (oq *OpsQueue) Backlog() int {
	oq.lock.Lock()
	defer oq.lock.Unlock()

	return oq.ops.Len()
}

func (oq *OpsQueue) notify() {
	select {
	case oq.wake <- struct{}{}:
	default:
	}
}

func (oq *OpsQueue) process() {
	defer oq.done.Break()

	for range oq.wake {
		for {
			oq.lock.Lock()
			if oq.ops.Len() == 0 {
				stopped := oq.isStopped
				if !stopped {
					oq.warned = false
				}
				oq.lock.Unlock()
				if stopped {
					return
				}
				break
			}
			op := oq.ops.PopFront()
			oq.lock.Unlock()

			op()
		}
	}
}
