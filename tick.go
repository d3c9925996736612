// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package cascadewheel

import (
	"math/bits"
	"strconv"
)

// Tick is the wheel's logical time unit. It forms an abelian group under
// wrapping addition, modulo the wheel's configured storage width (32 bits
// for a 4-stack wheel, 64 bits for an 8-stack wheel). Tick 0 is the
// wheel's construction origin.
//
// This generalizes the teacher's Ticks type (ticks.go in wtimer): rather
// than a single fixed bit-width masked inside a uint64, Tick is masked
// dynamically by whichever Storage it belongs to, since this package
// supports both of the spec's recognized widths from one representation.
type Tick uint64

// String converts a tick value to a string, mirroring the teacher's own
// Ticks.String (debug/log readability only).
func (t Tick) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

const fullMask = ^uint64(0)

// maskForWidth returns the wrapping modulus mask for a stack count of 4 or
// 8 (32-bit or 64-bit ticks).
func maskForWidth(width int) uint64 {
	if width >= 8 {
		return fullMask
	}
	return (uint64(1) << (uint(width) * 8)) - 1
}

// signBitForWidth returns the bit that distinguishes "ahead" from "behind"
// when comparing two ticks that may have wrapped, the same halving trick
// the teacher uses for Ticks.LT/GT (ticks.go: (t.v-u.v)&MaxTicksDiff),
// generalized from its fixed 48-bit width to either 32 or 64 bits.
func signBitForWidth(width int) uint64 {
	if width >= 8 {
		return uint64(1) << 63
	}
	return uint64(1) << (uint(width)*8 - 1)
}

func wrapAdd(a, b Tick, mask uint64) Tick {
	return Tick((uint64(a) + uint64(b)) & mask)
}

func wrapSub(a, b Tick, mask uint64) Tick {
	return Tick((uint64(a) - uint64(b)) & mask)
}

// tickLT reports whether a is "before" b, accounting for wraparound, using
// the teacher's own sign-bit-of-the-difference trick.
func tickLT(a, b Tick, mask, signBit uint64) bool {
	diff := (uint64(a) - uint64(b)) & mask
	return diff&signBit != 0
}

// checkedAdd adds a and b using native uint64 (not width-masked) overflow
// semantics, returning ok=false only when the raw sum wraps past the
// uint64 range. This is the operation queue.nextExpiring uses, matching
// original_source's Tick::checked_add exactly (width masking is not part
// of that computation in the source either).
func checkedAdd(a, b Tick) (Tick, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// tickBytes writes the little-endian byte representation of t into a
// width-byte slice.
func tickBytes(t Tick, width int) []byte {
	b := make([]byte, width)
	v := uint64(t)
	for i := 0; i < width; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func tickFromBytes(b []byte) Tick {
	var v uint64
	for i, x := range b {
		v |= uint64(x) << (8 * i)
	}
	return Tick(v)
}

// highestDifferingByte returns the byte index (0-based, little-endian) of
// the highest byte at which absolute and now disagree, within a width-byte
// tick, and whether they agree entirely (allMatch).
//
// This is the Go equivalent of the source's "byte-swap the XOR to
// big-endian, then count leading zero bits / 8": the no-byte-swap
// equivalent is the index of the XOR's highest set bit, divided by 8 --
// bits.Len64 gives one past that bit position directly, no byte swap
// needed.
func highestDifferingByte(absolute, now Tick, width int) (index int, allMatch bool) {
	x := (uint64(absolute) ^ uint64(now)) & maskForWidth(width)
	if x == 0 {
		return 0, true
	}
	return (bits.Len64(x) - 1) / 8, false
}
