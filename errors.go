// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package cascadewheel

import (
	"errors"
)

var ErrStorageWidth = errors.New("cascadewheel: storage width must be 4 or 8")
var ErrInvalidEntry = errors.New("cascadewheel: entry already linked into a queue")
var ErrBackwardTick = errors.New("cascadewheel: SetCurrentTick called with a tick behind now")
