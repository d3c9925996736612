// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

// Package cascadewheel provides a hierarchical, byte-radix cascading timer
// wheel: a data structure that schedules a large population of
// delay-bearing entries and efficiently identifies which have expired as
// a logical clock advances.
//
// The wheel decomposes an entry's absolute expiry into the highest byte
// that differs from "now" and buckets the entry in the corresponding
// cascading level (Stack). As the clock advances (via Skip), stacks wrap
// and cascade: entries drained from a higher level are re-bucketed, which
// pushes them into lower, finer-grained levels until they reach the
// pending-wake queue.
//
// cascadewheel mutates a Wheel from a single goroutine only; it does not
// lock internally. The per-Entry wake handshake (Register, ShouldRegister,
// TakeExpired, Wake, Cancel) is the only part of this package safe to call
// concurrently -- it is the narrow contract by which an external driver
// (not part of this package) coordinates with a polling consumer.
package cascadewheel

const NAME = "cascadewheel"

var BuildTags []string
