// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package ring

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent stress tests for generic [T] queue
// variants, which trigger false positives due to cross-variable memory
// ordering the race detector cannot observe.
const RaceEnabled = true
