// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

//go:build !debug

package cascadewheel

// debugAssert is a no-op in release builds (the "debug" build tag is not
// set). See debug.go for the debug-build version.
func debugAssert(cond bool, format string, args ...interface{}) {}
