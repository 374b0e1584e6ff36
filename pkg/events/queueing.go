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

	"github.com/elliotchance/orderedmap/v2"
)

// QueueingEventEmitter buffers events emitted while nobody listens and replays them on Dequeue.
// Signaling can report state before the application has attached its listeners.
type QueueingEventEmitter struct {
	*EventEmitter

	queueLock sync.Mutex
	queued    *orderedmap.OrderedMap[string, [][]interface{}]
}

func NewQueueingEventEmitter() *QueueingEventEmitter {
	return &QueueingEventEmitter{
		EventEmitter: NewEventEmitter(),
		queued:       orderedmap.NewOrderedMap[string, [][]interface{}](),
	}
}

// Queue emits event immediately when it has listeners and returns true. Otherwise the arguments
// are buffered under the event name and false is returned.
func (q *QueueingEventEmitter) Queue(event string, args ...interface{}) bool {
	if q.ListenerCount(event) > 0 {
		return q.Emit(event, args...)
	}

	q.queueLock.Lock()
	pending, _ := q.queued.Get(event)
	q.queued.Set(event, append(pending, args))
	q.queueLock.Unlock()
	return false
}

// Dequeue replays and clears the buffered events of the given name, or of every name in the
// order they were first queued. Returns true only if every replayed event found a listener.
func (q *QueueingEventEmitter) Dequeue(events ...string) bool {
	if len(events) == 0 {
		q.queueLock.Lock()
		events = q.queued.Keys()
		q.queueLock.Unlock()
	}

	result := true
	for _, event := range events {
		result = q.dequeue(event) && result
	}
	return result
}

func (q *QueueingEventEmitter) dequeue(event string) bool {
	q.queueLock.Lock()
	pending, ok := q.queued.Get(event)
	if ok {
		q.queued.Delete(event)
	}
	q.queueLock.Unlock()

	result := true
	for _, args := range pending {
		result = q.Emit(event, args...) && result
	}
	return result
}

// QueuedCount is the number of buffered events for event.
func (q *QueueingEventEmitter) QueuedCount(event string) int {
	q.queueLock.Lock()
	defer q.queueLock.Unlock()

	pending, _ := q.queued.Get(event)
	return len(pending)
}
