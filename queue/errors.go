// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrInvalidArgument is returned by constructors given a nonsensical
// parameter, such as a bounded capacity of zero.
var ErrInvalidArgument = errors.New("queue: invalid argument")

// ErrUnsupported is returned by operations a variant's contract
// explicitly declines to implement, such as Linked.TryPopInto.
var ErrUnsupported = errors.New("queue: unsupported operation")

// ErrWouldBlock is the sentinel package ring's non-blocking operations
// return when they cannot proceed immediately. This package's own
// TryPush/TryPop report that case with a false result instead.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err is or wraps ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
