// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build debug

package cascadewheel

// debugAssert panics with a formatted message when cond is false. It is
// compiled in only under the "debug" build tag, matching the teacher's own
// BUG()/PANIC() gated invariant checks but elided entirely (no branch, no
// format cost) in release builds; see debug_release.go.
func debugAssert(cond bool, format string, args ...interface{}) {
	if !cond {
		PANIC(format, args...)
	}
}
