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

package events

import (
	"sync"
)

type Listener func(args ...interface{})

type listener struct {
	id   uint64
	fn   Listener
	once bool
}

// EventEmitter delivers named events to listeners in registration order.
type EventEmitter struct {
	lock      sync.RWMutex
	nextID    uint64
	listeners map[string][]*listener
}

func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		listeners: make(map[string][]*listener),
	}
}

// On registers fn for event and returns a function removing it.
func (e *EventEmitter) On(event string, fn Listener) func() {
	return e.add(event, fn, false)
}

// Once registers fn to be called at most once.
func (e *EventEmitter) Once(event string, fn Listener) func() {
	return e.add(event, fn, true)
}

func (e *EventEmitter) add(event string, fn Listener, once bool) func() {
	e.lock.Lock()
	e.nextID++
	l := &listener{
		id:   e.nextID,
		fn:   fn,
		once: once,
	}
	e.listeners[event] = append(e.listeners[event], l)
	e.lock.Unlock()

	return func() {
		e.remove(event, l.id)
	}
}

func (e *EventEmitter) remove(event string, id uint64) {
	e.lock.Lock()
	defer e.lock.Unlock()

	ls := e.listeners[event]
	for i, l := range ls {
		if l.id == id {
			e.listeners[event] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(e.listeners[event]) == 0 {
		delete(e.listeners, event)
	}
}

// Emit calls every listener of event with args. Returns false when there was no listener.
func (e *EventEmitter) Emit(event string, args ...interface{}) bool {
	e.lock.Lock()
	ls := e.listeners[event]
	if len(ls) == 0 {
		e.lock.Unlock()
		return false
	}

	fire := make([]*listener, len(ls))
	copy(fire, ls)

	remaining := ls[:0:0]
	for _, l := range ls {
		if !l.once {
			remaining = append(remaining, l)
		}
	}
	if len(remaining) == 0 {
		delete(e.listeners, event)
	} else {
		e.listeners[event] = remaining
	}
	e.lock.Unlock()

	for _, l := range fire {
		l.fn(args...)
	}
	return true
}

func (e *EventEmitter) ListenerCount(event string) int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.listeners[event])
}

// RemoveAllListeners removes the listeners of the given events, or of every event when none are given.
func (e *EventEmitter) RemoveAllListeners(events ...string) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if len(events) == 0 {
		e.listeners = make(map[string][]*listener)
		return
	}
	for _, event := range events {
		delete(e.listeners, event)
	}
}
