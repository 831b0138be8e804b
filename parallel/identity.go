// Copyright (c) 2026 cq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package parallel

import "cmp"

// Number is any numeric type addition/multiplication identities apply
// to.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// AdditionIdentity returns 0 of type T, the identity element for "+".
func AdditionIdentity[T Number]() T {
	return T(0)
}

// MultiplicationIdentity returns 1 of type T, the identity element for
// "*".
func MultiplicationIdentity[T Number]() T {
	return T(1)
}

// ConcatIdentity returns "", the identity element for string
// concatenation.
func ConcatIdentity[T ~string]() T {
	return T("")
}

// Ordered is an alias for cmp.Ordered, the ordered types reduction
// helpers commonly combine over.
type Ordered = cmp.Ordered
