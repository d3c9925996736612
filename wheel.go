// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package cascadewheel

// skipIterationBound is the liveness bound on the skip loop: Skip must
// reach a populated slot or pending delivery in fewer than this many
// internal steps, or the wheel's own invariants are broken. Debug builds
// assert it; release builds don't pay for the check.
const skipIterationBound = 1 << 16

// Wheel is the top-level API: insert entries, advance the logical clock
// to the next populated slot, and drain due entries for delivery. All
// Wheel methods assume a single mutator goroutine; there is no internal
// locking (see spec.md §5 -- only the Entry wake handshake is concurrent).
//
// The core algorithm (Insert/insertAt/Skip/skipOnce/NextExpiration/Wake)
// follows original_source/src/wheel.rs precisely: it solves the same
// "bucket an absolute expiry by its highest byte of disagreement with
// now, cascade on wrap" problem the teacher's own WTimer.addUnsafe /
// redistTimers / run solve with direct bit-masking instead of a
// byte-indexed bitset scan. Every naming, logging, and error-reporting
// choice around that algorithm instead follows the teacher's conventions.
type Wheel struct {
	storage     *storage
	pendingWake entryQueue
	mask        uint64
	signBit     uint64
}

// Default returns an empty 8-stack (64-bit tick) Wheel, mirroring the
// teacher's Default()/New() pairing (Default picks a fixed, sensible
// configuration; New4/New8 let a caller pick explicitly).
func Default() *Wheel { return New8() }

// New4 returns an empty Wheel using 4 cascading stacks (32-bit ticks).
func New4() *Wheel { return newWheel(4) }

// New8 returns an empty Wheel using 8 cascading stacks (64-bit ticks).
func New8() *Wheel { return newWheel(8) }

func newWheel(width int) *Wheel {
	s, err := newStorage(width)
	if err != nil {
		// newStorage only rejects width values this package itself passes,
		// so reaching this is a programming error in cascadewheel, not
		// caller misuse -- PANIC, matching the teacher's own BUG/PANIC
		// idiom for "this should be structurally impossible".
		PANIC("cascadewheel: %v\n", err)
	}
	w := &Wheel{
		storage: s,
		mask:    maskForWidth(width),
		signBit: signBitForWidth(width),
	}
	w.pendingWake.init()
	return w
}

// Ticks returns the wheel's current logical time: the little-endian
// concatenation of each stack's cursor byte.
func (w *Wheel) Ticks() Tick { return w.storage.ticks() }

// IsEmpty reports whether the cascading storage holds no entries. Note
// this does not consider the pending-wake queue (matching the source:
// Wheel::is_empty only inspects the stacks) -- an entry inserted with
// delay 0 sits in pendingWake while IsEmpty is still true.
func (w *Wheel) IsEmpty() bool { return w.storage.isEmpty() }

// PendingLen reports how many entries are currently queued for delivery
// via Wake. Debug/diagnostic accessor, grounded on the teacher's own
// count()-style queries (timerLst.forEach, tInfo.String).
func (w *Wheel) PendingLen() int { return w.pendingWake.count() }

// Insert stamps entry's start tick to the wheel's current time and places
// it into the wheel (or, for a zero-delay entry, directly into the
// pending-wake queue).
func (w *Wheel) Insert(e *Entry) {
	now := w.Ticks()
	e.setStartTick(now)
	w.insertAt(e, now, now)
}

// insertAt buckets entry according to the highest byte at which its
// absolute expiry disagrees with now. It returns true iff the entry was
// routed to the pending-wake queue (i.e. it is already due).
func (w *Wheel) insertAt(e *Entry, now, startTick Tick) bool {
	absolute := wrapAdd(e.Delay(), startTick, w.mask)
	index, allMatch := highestDifferingByte(absolute, now, w.storage.width)
	if allMatch {
		w.pendingWake.push(e)
		return true
	}
	debugAssert(index >= 0 && index < w.storage.width, "cascadewheel: insertAt computed out-of-range stack index %d", index)
	pos := byte(uint64(absolute) >> (8 * uint(index)))
	w.storage.get(index).insert(pos, e)
	return false
}

// NextExpiration returns the absolute tick at which the soonest entry is
// due, and true, or (0, false) if the wheel is empty. It narrows canSkip
// by higher-stack emptiness exactly as skipOnce does, without mutating
// anything.
func (w *Wheel) NextExpiration() (Tick, bool) {
	if w.storage.isEmpty() {
		return 0, false
	}

	width := w.storage.width
	next := tickBytes(w.Ticks(), width)
	canSkip := true

	for index := 0; index < width; index++ {
		st := w.storage.get(index)
		cur, wrapped := st.nextTick(canSkip)
		next[index] = cur
		if !wrapped {
			break
		}
		canSkip = canSkip && st.isEmpty()
	}

	return tickFromBytes(next), true
}

// NextDelta returns the ticks elapsed from now to NextExpiration, and
// true, or (0, false) if the wheel is empty.
func (w *Wheel) NextDelta() (Tick, bool) {
	next, ok := w.NextExpiration()
	if !ok {
		return 0, false
	}
	return wrapSub(next, w.Ticks(), w.mask), true
}

// Skip advances the wheel to the next populated slot (cascading through
// wrapped stacks as needed) or to the next pending delivery. It returns
// the number of ticks advanced, and true; (0, true) if entries are
// already pending delivery (the wheel does not advance further while
// deliveries are outstanding); or (0, false) if the wheel (and pending
// queue) are empty.
func (w *Wheel) Skip() (Tick, bool) {
	if !w.pendingWake.isEmpty() {
		return 0, true
	}
	if w.storage.isEmpty() {
		return 0, false
	}

	start := w.Ticks()
	iterations := 0
	for {
		hasPending, ok := w.skipOnce()
		if !ok {
			return 0, false
		}
		if hasPending {
			break
		}
		iterations++
		debugAssert(iterations < skipIterationBound, "cascadewheel: skip loop exceeded liveness bound (%d iterations)", iterations)
	}

	return wrapSub(w.Ticks(), start, w.mask), true
}

// skipOnce ticks every stack that needs to cascade (stopping at the first
// one that doesn't wrap), re-inserting any entries drained along the way.
// It returns whether any drained entry landed directly in pendingWake, and
// whether the wheel holds any entries at all (false only once every stack
// has wrapped and yielded nothing).
func (w *Wheel) skipOnce() (hasPending bool, ok bool) {
	canSkip := true
	isEmptySoFar := true

	for index := 0; index < w.storage.width; index++ {
		st := w.storage.get(index)
		drained, wrapped := st.tick(canSkip)
		now := w.Ticks()

		for {
			e := drained.pop()
			if e == nil {
				break
			}
			isEmptySoFar = false
			if w.insertAt(e, now, e.StartTick()) {
				hasPending = true
			} else {
				// landed at or below the current position; skipping could
				// jump straight over it, so stop skipping for the rest of
				// this pass.
				canSkip = false
			}
		}

		if !wrapped {
			return hasPending, true
		}

		canSkip = canSkip && st.isEmpty()
		isEmptySoFar = isEmptySoFar && canSkip
	}

	if isEmptySoFar {
		return false, false
	}
	return hasPending, true
}

// Wake drains the pending-wake queue, invoking cb once per entry, and
// returns the number of entries delivered. The wheel retains no reference
// to delivered entries afterward.
func (w *Wheel) Wake(cb func(*Entry)) int {
	pending := w.pendingWake.take()
	count := 0
	for {
		e := pending.pop()
		if e == nil {
			break
		}
		count++
		cb(e)
	}
	return count
}

// SetCurrentTick advances the wheel until Ticks() reaches target, waking
// pending entries (via wake, which may be nil to discard them) after each
// internal Skip. It resolves spec.md §9's open question ("the source
// declares but does not implement set_current_tick") the way the teacher
// resolves the same problem for its own clock-driven advance
// (advanceTimeTo in wtimer.go): advance step by step, running everything
// that becomes due along the way. Where the teacher's primitive is
// "increment one tick," this wheel's only advance primitive is Skip, so
// SetCurrentTick calls Skip repeatedly instead. A single Skip can carry
// Ticks() past target, in which case entries due after target are woken
// too. If the wheel and its pending queue run empty first, SetCurrentTick
// stops there, with Ticks() still short of target.
//
// Moving the tick backward is rejected with ErrBackwardTick: as spec.md
// notes, it is undefined for this structure (stacks only cascade forward).
func (w *Wheel) SetCurrentTick(target Tick, wake func(*Entry)) (Tick, error) {
	now := w.Ticks()
	if target != now && tickLT(target, now, w.mask, w.signBit) {
		if WARNon() {
			WARN("cascadewheel: SetCurrentTick called with a tick behind now: target=%s now=%s\n", target, now)
		}
		return now, ErrBackwardTick
	}

	var advanced Tick
	for tickLT(w.Ticks(), target, w.mask, w.signBit) {
		n, ok := w.Skip()
		if !ok {
			// nothing left to cascade through; the wheel and its pending
			// queue are both empty, so there is nothing to advance toward.
			break
		}
		advanced = wrapAdd(advanced, n, w.mask)
		if wake != nil {
			w.Wake(wake)
		} else {
			w.Wake(func(*Entry) {})
		}
	}
	return advanced, nil
}
