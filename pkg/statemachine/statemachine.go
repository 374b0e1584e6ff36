// Copyright 2024 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statemachine

import (
	"context"
	"sync"

	"github.com/gammazero/deque"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/livekit/protocol/logger"
)

const preemptionLockName = "preemption"

type State string

func (s State) String() string {
	return string(s)
}

// Transitions maps every state to the states reachable from it in one step.
// A state with no outgoing edges is terminal.
type Transitions map[State][]State

type Params struct {
	Name        string
	Initial     State
	Transitions Transitions
	Logger      logger.Logger
}

type waiter struct {
	name      string
	key       *Key
	ready     chan struct{}
	cancelled bool
}

type stateWatcher struct {
	target State
	result chan error
}

// StateMachine is a finite state machine with an explicit transition table and a single
// FIFO lock used to serialize multi-step asynchronous transitions.
type StateMachine struct {
	params Params

	lock        sync.Mutex
	state       State
	edges       map[State]map[State]struct{}
	reachable   map[State]map[State]struct{}
	holder      *Key
	waiters     *deque.Deque[*waiter]
	observers   []func(State, error)
	watchers    []*stateWatcher
	keyCounter  atomic.Uint64
	transitions atomic.Uint64
}

func New(params Params) (*StateMachine, error) {
	if params.Logger == nil {
		params.Logger = logger.GetLogger()
	}

	edges := make(map[State]map[State]struct{}, len(params.Transitions))
	for from, targets := range params.Transitions {
		set := make(map[State]struct{}, len(targets))
		for _, to := range targets {
			if _, ok := params.Transitions[to]; !ok {
				return nil, errors.Wrapf(ErrUnknownState, "%s -> %s", from, to)
			}
			set[to] = struct{}{}
		}
		edges[from] = set
	}
	if _, ok := edges[params.Initial]; !ok {
		return nil, errors.Wrapf(ErrUnknownState, "initial state %s", params.Initial)
	}

	m := &StateMachine{
		params:    params,
		state:     params.Initial,
		edges:     edges,
		reachable: computeReachability(edges),
		waiters:   new(deque.Deque[*waiter]),
	}
	return m, nil
}

// MustNew is New for static transition tables, where an error is a programming mistake.
func MustNew(params Params) *StateMachine {
	m, err := New(params)
	if err != nil {
		panic(err)
	}
	return m
}

func computeReachability(edges map[State]map[State]struct{}) map[State]map[State]struct{} {
	reachable := make(map[State]map[State]struct{}, len(edges))
	for from := range edges {
		seen := make(map[State]struct{})
		queue := []State{from}
		for len(queue) > 0 {
			s := queue[0]
			queue = queue[1:]
			for next := range edges[s] {
				if _, ok := seen[next]; ok {
					continue
				}
				seen[next] = struct{}{}
				queue = append(queue, next)
			}
		}
		reachable[from] = seen
	}
	return reachable
}

func (m *StateMachine) State() State {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.state
}

// TransitionCount is the number of transitions applied since creation.
func (m *StateMachine) TransitionCount() uint64 {
	return m.transitions.Load()
}

func (m *StateMachine) IsLocked() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.holder != nil
}

// LockName returns the name the current holder took the lock under, empty when unlocked.
func (m *StateMachine) LockName() string {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.holder == nil {
		return ""
	}
	return m.holder.name
}

func (m *StateMachine) IsValidTransition(to State) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.isValidTransitionLocked(to)
}

func (m *StateMachine) isValidTransitionLocked(to State) bool {
	_, ok := m.edges[m.state][to]
	return ok
}

// OnStateChanged registers an observer called after every successful transition with the new
// state and the optional payload passed to the transition.
func (m *StateMachine) OnStateChanged(f func(state State, payload error)) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.observers = append(m.observers, f)
}

// Transition moves the machine to the given state. When the machine is locked, key must be the
// key of the current holder. A failed transition never mutates state.
func (m *StateMachine) Transition(to State, key *Key, payload error) error {
	m.lock.Lock()
	if err := m.checkKeyLocked(key); err != nil {
		m.lock.Unlock()
		return err
	}
	if !m.isValidTransitionLocked(to) {
		from := m.state
		m.lock.Unlock()
		return errors.Wrapf(ErrInvalidTransition, "%s: %s -> %s", m.params.Name, from, to)
	}
	observers := m.setStateLocked(to)
	m.lock.Unlock()

	m.notify(observers, to, payload)
	return nil
}

// TryTransition is Transition without the error.
func (m *StateMachine) TryTransition(to State, key *Key, payload error) bool {
	return m.Transition(to, key, payload) == nil
}

// Preempt forces a transition regardless of who holds the lock. The current holder's key is
// invalidated. When lockName is set the lock is re-acquired under that name and its key is
// returned, otherwise a placeholder lock is taken and released so queued waiters keep their order.
func (m *StateMachine) Preempt(to State, lockName string, payload error) (*Key, error) {
	m.lock.Lock()
	if !m.isValidTransitionLocked(to) {
		from := m.state
		m.lock.Unlock()
		return nil, errors.Wrapf(ErrInvalidTransition, "%s: preempt %s -> %s", m.params.Name, from, to)
	}

	by := lockName
	if by == "" {
		by = preemptionLockName
	}

	preempted := m.holder
	m.holder = nil
	if preempted != nil {
		preempted.preempt(&PreemptedError{Holder: preempted.name, By: by})
	}

	var key *Key
	if lockName != "" {
		key = m.newKeyLocked(lockName)
		m.holder = key
	} else {
		m.holder = m.newKeyLocked(preemptionLockName)
	}

	observers := m.setStateLocked(to)

	if lockName == "" {
		m.holder.release()
		m.grantNextLocked()
	}
	m.lock.Unlock()

	if preempted != nil {
		m.params.Logger.Debugw("lock preempted", "machine", m.params.Name, "holder", preempted.name, "by", by, "state", to)
	}
	m.notify(observers, to, payload)
	return key, nil
}

// TakeLock waits, in FIFO order, for the lock. Cancelling ctx abandons the wait.
func (m *StateMachine) TakeLock(ctx context.Context, name string) (*Key, error) {
	m.lock.Lock()
	if m.holder == nil && m.pendingWaitersLocked() == 0 {
		key := m.newKeyLocked(name)
		m.holder = key
		m.lock.Unlock()
		return key, nil
	}

	w := &waiter{
		name:  name,
		ready: make(chan struct{}),
	}
	m.waiters.PushBack(w)
	m.lock.Unlock()

	select {
	case <-w.ready:
		return w.key, nil

	case <-ctx.Done():
		m.lock.Lock()
		granted := w.key
		if granted == nil {
			w.cancelled = true
		}
		m.lock.Unlock()

		if granted != nil {
			// lock was handed over while the context was being cancelled
			_ = m.ReleaseLock(granted)
		}
		return nil, ctx.Err()
	}
}

// TakeLockSync takes the lock only if it is free and nobody is waiting for it.
func (m *StateMachine) TakeLockSync(name string) (*Key, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.holder != nil {
		return nil, errors.Wrapf(ErrAlreadyLocked, "%s: held by %q", m.params.Name, m.holder.name)
	}
	if m.pendingWaitersLocked() != 0 {
		return nil, errors.Wrapf(ErrAlreadyLocked, "%s: lock has waiters", m.params.Name)
	}

	key := m.newKeyLocked(name)
	m.holder = key
	return key, nil
}

// ReleaseLock releases the lock held by key and hands it to the next waiter.
func (m *StateMachine) ReleaseLock(key *Key) error {
	m.lock.Lock()
	if key == nil || m.holder != key {
		m.lock.Unlock()
		if key != nil {
			if err := key.Err(); err != nil {
				return err
			}
		}
		return errors.Wrapf(ErrLockNotHeld, "%s: release", m.params.Name)
	}

	key.release()
	m.grantNextLocked()
	m.lock.Unlock()
	return nil
}

// Bracket runs fn while holding the lock under name and releases it afterwards on both paths.
// The context passed to fn is cancelled when the lock is preempted.
func (m *StateMachine) Bracket(ctx context.Context, name string, fn func(ctx context.Context, key *Key) error) error {
	key, err := m.TakeLock(ctx, name)
	if err != nil {
		return err
	}

	fnCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-key.Done():
			cancel()
		case <-fnCtx.Done():
		}
	}()

	fnErr := fn(fnCtx, key)
	releaseErr := m.ReleaseLock(key)

	if fnErr != nil {
		if preemptErr := key.preemption(); preemptErr != nil && errors.Is(fnErr, context.Canceled) {
			return preemptErr
		}
		return fnErr
	}
	return releaseErr
}

// WhenState waits until the machine enters the given state. It fails with ErrUnreachableState
// as soon as the state can no longer be reached from the current one.
func (m *StateMachine) WhenState(ctx context.Context, target State) error {
	m.lock.Lock()
	if m.state == target {
		m.lock.Unlock()
		return nil
	}
	if _, ok := m.reachable[m.state][target]; !ok {
		from := m.state
		m.lock.Unlock()
		return errors.Wrapf(ErrUnreachableState, "%s: %s from %s", m.params.Name, target, from)
	}

	w := &stateWatcher{
		target: target,
		result: make(chan error, 1),
	}
	m.watchers = append(m.watchers, w)
	m.lock.Unlock()

	select {
	case err := <-w.result:
		return err
	case <-ctx.Done():
		m.lock.Lock()
		for i, other := range m.watchers {
			if other == w {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		m.lock.Unlock()
		return ctx.Err()
	}
}

func (m *StateMachine) checkKeyLocked(key *Key) error {
	if m.holder != nil {
		if key == m.holder {
			return nil
		}
		if key != nil {
			if err := key.Err(); err != nil {
				return err
			}
		}
		return errors.Wrapf(ErrLockNotHeld, "%s: held by %q", m.params.Name, m.holder.name)
	}

	if key != nil {
		return key.Err()
	}
	return nil
}

func (m *StateMachine) setStateLocked(to State) []func(State, error) {
	from := m.state
	m.state = to
	m.transitions.Inc()

	remaining := m.watchers[:0]
	for _, w := range m.watchers {
		switch {
		case w.target == to:
			w.result <- nil
		case !m.canReachLocked(w.target):
			w.result <- errors.Wrapf(ErrUnreachableState, "%s: %s from %s", m.params.Name, w.target, to)
		default:
			remaining = append(remaining, w)
		}
	}
	m.watchers = remaining

	m.params.Logger.Debugw("state changed", "machine", m.params.Name, "from", from, "to", to)

	observers := make([]func(State, error), len(m.observers))
	copy(observers, m.observers)
	return observers
}

func (m *StateMachine) canReachLocked(target State) bool {
	_, ok := m.reachable[m.state][target]
	return ok
}

func (m *StateMachine) notify(observers []func(State, error), state State, payload error) {
	for _, f := range observers {
		f(state, payload)
	}
}

func (m *StateMachine) pendingWaitersLocked() int {
	n := 0
	for i := 0; i < m.waiters.Len(); i++ {
		if !m.waiters.At(i).cancelled {
			n++
		}
	}
	return n
}

func (m *StateMachine) grantNextLocked() {
	m.holder = nil
	for m.waiters.Len() > 0 {
		w := m.waiters.PopFront()
		if w.cancelled {
			continue
		}
		key := m.newKeyLocked(w.name)
		m.holder = key
		w.key = key
		close(w.ready)
		return
	}
}

func (m *StateMachine) newKeyLocked(name string) *Key {
	return &Key{
		name: name,
		id:   m.keyCounter.Inc(),
		done: make(chan struct{}),
	}
}

// Key is the proof of lock ownership handed out by TakeLock, TakeLockSync and Preempt.
type Key struct {
	name string
	id   uint64

	lock      sync.Mutex
	err       error
	preempted error
	done      chan struct{}
}

func (k *Key) Name() string {
	return k.name
}

// Done is closed once the key stops holding the lock, either released or preempted.
func (k *Key) Done() <-chan struct{} {
	return k.done
}

// Err is nil while the key holds the lock. A preempted key returns a *PreemptedError.
func (k *Key) Err() error {
	k.lock.Lock()
	defer k.lock.Unlock()

	return k.err
}

func (k *Key) preemption() error {
	k.lock.Lock()
	defer k.lock.Unlock()

	return k.preempted
}

func (k *Key) release() {
	k.invalidate(ErrKeyReleased, nil)
}

func (k *Key) preempt(err error) {
	k.invalidate(err, err)
}

func (k *Key) invalidate(err error, preempted error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	if k.err != nil {
		return
	}
	k.err = err
	k.preempted = preempted
	close(k.done)
}
