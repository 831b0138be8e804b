// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parallel

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a parallel algorithm is given a
// nonsensical parameter, such as a nil reduction operator or a negative
// worker count.
var ErrInvalidArgument = errors.New("parallel: invalid argument")

// WorkerError wraps the first error reported by any worker goroutine of
// a parallel algorithm, naming which algorithm failed.
type WorkerError struct {
	Algorithm string
	Err       error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("parallel %s failed: %s", e.Algorithm, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
