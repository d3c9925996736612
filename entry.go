// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package cascadewheel

import (
	"sync"
	"sync/atomic"
)

// Notifier is how a waiting caller learns that its Entry fired. Wake calls
// Notify once per delivery; Notify must not block and must tolerate being
// invoked from the wheel's driver goroutine.
type Notifier interface {
	Notify()
}

const (
	entryExpired uint32 = 1 << iota
	entryRegistered
)

// Entry is a single scheduled item: an immutable delay, the tick it was
// inserted at, and a concurrent wake handshake (expired/registered flags
// plus a pluggable Notifier). An Entry participates in exactly one queue
// at a time via its intrusive next/prev linkage.
//
// The expired/registered pair is packed into one atomic word and mutated
// with compare-and-swap loops, directly grounded on the teacher's tInfo
// (tinfo.go): "several small flags that change together get one packed
// atomic word with CAS loops" rather than independent atomic.Bools. The
// notifier itself is guarded by a narrow sync.Mutex -- the one piece of
// per-entry state that isn't a flag -- matching the teacher's own pattern
// of a small dedicated lock per hot, independently-accessed piece of state
// (see wtimer.go's rQlocks[idx]), just scoped to a single Entry instead of
// a run queue.
type Entry struct {
	next, prev *Entry // intrusive queue linkage; nil when detached

	flags atomic.Uint32

	mu       sync.Mutex
	notifier Notifier

	delay     Tick
	startTick Tick
}

// NewEntry constructs an Entry requesting the given relative delay. Its
// start tick is set later, by Wheel.Insert.
func NewEntry(delay Tick) *Entry {
	return &Entry{delay: delay}
}

// Delay returns the entry's immutable requested relative delay.
func (e *Entry) Delay() Tick { return e.delay }

// StartTick returns the wheel tick this entry was inserted at.
func (e *Entry) StartTick() Tick { return e.startTick }

// setStartTick is used by the wheel during Insert and during cascading
// re-insertion; it is not part of the concurrent surface (only the wheel's
// single mutator goroutine calls it).
func (e *Entry) setStartTick(t Tick) { e.startTick = t }

// detached reports whether the entry currently belongs to no queue.
func (e *Entry) detached() bool { return e.next == nil && e.prev == nil }

// Register atomically stores the notifier to invoke on Wake. A later call
// replaces the previous notifier.
func (e *Entry) Register(n Notifier) {
	e.mu.Lock()
	e.notifier = n
	e.mu.Unlock()
}

// Cancel clears the notifier; a subsequent Wake becomes a no-op delivery
// (the entry may still traverse the wheel structure -- cancellation is
// lazy, per spec).
func (e *Entry) Cancel() {
	e.mu.Lock()
	e.notifier = nil
	e.mu.Unlock()
}

// ShouldRegister atomically swaps the registered flag from false to true,
// returning true iff a fresh registration (and wheel insertion) is needed.
// Callers use this to avoid re-inserting an entry already queued in the
// wheel.
func (e *Entry) ShouldRegister() bool {
	for {
		old := e.flags.Load()
		if old&entryRegistered != 0 {
			return false
		}
		if e.flags.CompareAndSwap(old, old|entryRegistered) {
			return true
		}
	}
}

// TakeExpired atomically reads and clears the expired flag.
func (e *Entry) TakeExpired() bool {
	for {
		old := e.flags.Load()
		if old&entryExpired == 0 {
			return false
		}
		if e.flags.CompareAndSwap(old, old&^entryExpired) {
			return true
		}
	}
}

// Wake sets the expired flag, clears the registered flag, and invokes the
// notifier if one is registered. It is called by the wheel's Wake method,
// once per delivered entry.
func (e *Entry) Wake() {
	for {
		old := e.flags.Load()
		next := (old | entryExpired) &^ entryRegistered
		if e.flags.CompareAndSwap(old, next) {
			break
		}
	}
	e.mu.Lock()
	n := e.notifier
	e.mu.Unlock()
	if n != nil {
		n.Notify()
	}
}
