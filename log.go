// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package cascadewheel

import (
	"github.com/intuitivelabs/slog"
)

// Log is the package-wide logger. Change Log.Level to control verbosity,
// e.g. cascadewheel.Log.Level = slog.LDBG during development.
var Log = slog.Log{
	Level:  slog.LWARN,
	Prefix: NAME + ": ",
}

func DBGon() bool  { return Log.DBGon() }
func WARNon() bool { return Log.WARNon() }
func ERRon() bool  { return Log.ERRon() }

func DBG(f string, a ...interface{})   { Log.DBG(f, a...) }
func WARN(f string, a ...interface{})  { Log.WARN(f, a...) }
func ERR(f string, a ...interface{})   { Log.ERR(f, a...) }
func BUG(f string, a ...interface{})   { Log.BUG(f, a...) }
func PANIC(f string, a ...interface{}) { Log.PANIC(f, a...) }
