// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package workerr provides a single-slot, first-error-wins cell shared
// by package parallel's fork/join algorithms: whichever worker
// goroutine fails first has its error recorded, and every later failure
// is discarded, so a caller that waits on the group's completion always
// sees the same, deterministic error regardless of scheduling.
package workerr

import "sync"

// Cell holds the first non-nil error reported to it.
type Cell struct {
	mu  sync.Mutex
	err error
}

// Set records err as the cell's error if and only if no error has been
// recorded yet. A nil err is a no-op.
func (c *Cell) Set(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// Err returns the first error recorded, or nil if none was.
func (c *Cell) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
