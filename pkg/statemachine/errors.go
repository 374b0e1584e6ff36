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
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrUnknownState      = errors.New("unknown state")
	ErrLockNotHeld       = errors.New("key does not hold the lock")
	ErrAlreadyLocked     = errors.New("state machine is already locked")
	ErrKeyReleased       = errors.New("key has been released")
	ErrPreempted         = errors.New("lock preempted")
	ErrUnreachableState  = errors.New("state is no longer reachable")
)

// PreemptedError is the error held by a key whose lock was taken away by Preempt.
type PreemptedError struct {
	Holder string
	By     string
}

func (e *PreemptedError) Error() string {
	return fmt.Sprintf("lock %q preempted by %q", e.Holder, e.By)
}

func (e *PreemptedError) Is(target error) bool {
	return target == ErrPreempted
}
