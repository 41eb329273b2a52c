// SPDX-License-Identifier: MIT
// Package: lemnos/shape
//
// shape.go — the Shape value type and its compatibility algebra.
//
// Invariants:
//   • dims are never mutated after construction; every operation returns a new value.
//   • A locked shape has at least one dimension.
//   • product caches the product of dims (the wildcard of an open shape excluded).
//   • The zero Shape is the fully unconstrained open shape (*).

package shape

import (
	"fmt"
	"strings"
)

// Shape is an immutable tensor shape, locked or open.
type Shape struct {
	dims    []int
	locked  bool
	product int
}

// NewLocked validates dims and returns a locked shape.
//
// Errors:
//   - ErrEmptyShape: no dims.
//   - ErrNonPositiveDim: any dim < 1.
func NewLocked(dims ...int) (Shape, error) {
	if len(dims) == 0 {
		return Shape{}, ErrEmptyShape
	}
	if err := checkDims(dims); err != nil {
		return Shape{}, err
	}

	return newShape(dims, true), nil
}

// NewOpen validates the trailing dims and returns an open shape.
// An empty dims list yields the unconstrained shape (*).
func NewOpen(dims ...int) (Shape, error) {
	if err := checkDims(dims); err != nil {
		return Shape{}, err
	}

	return newShape(dims, false), nil
}

// Locked is the panicking form of NewLocked, meant for literal declarations.
func Locked(dims ...int) Shape {
	s, err := NewLocked(dims...)
	if err != nil {
		panic(fmt.Sprintf("shape.Locked%v: %v", dims, err))
	}

	return s
}

// Open is the panicking form of NewOpen, meant for literal declarations.
func Open(dims ...int) Shape {
	s, err := NewOpen(dims...)
	if err != nil {
		panic(fmt.Sprintf("shape.Open%v: %v", dims, err))
	}

	return s
}

func checkDims(dims []int) error {
	for i, d := range dims {
		if d < 1 {
			return fmt.Errorf("%w: axis %d is %d", ErrNonPositiveDim, i, d)
		}
	}

	return nil
}

// newShape copies dims so callers can never alias the internal slice.
func newShape(dims []int, locked bool) Shape {
	cp := make([]int, len(dims))
	copy(cp, dims)
	p := 1
	for _, d := range cp {
		p *= d
	}

	return Shape{dims: cp, locked: locked, product: p}
}

// IsLocked reports whether every dimension is concrete.
func (s Shape) IsLocked() bool { return s.locked }

// Len returns the number of explicit dimensions (the wildcard of an open shape excluded).
func (s Shape) Len() int { return len(s.dims) }

// Dimensionality returns the rank the shape will have once locked.
func (s Shape) Dimensionality() int {
	if s.locked {
		return len(s.dims)
	}

	return len(s.dims) + 1
}

// Dim returns the i-th explicit dimension. It panics when i is out of range.
func (s Shape) Dim(i int) int { return s.dims[i] }

// Dims returns a copy of the explicit dimensions.
func (s Shape) Dims() []int {
	out := make([]int, len(s.dims))
	copy(out, s.dims)

	return out
}

// Product returns the cached product of the explicit dimensions.
func (s Shape) Product() int {
	if s.product == 0 {
		return 1 // zero Shape: empty product
	}

	return s.product
}

// upperLength is the number of trailing axes that must match exactly.
// For a locked shape the leading axis is excluded since it may absorb a product.
func (s Shape) upperLength() int {
	if s.locked {
		return len(s.dims) - 1
	}

	return len(s.dims)
}

// upperEqual reports whether the last n dims of s and o are equal.
func (s Shape) upperEqual(n int, o Shape) bool {
	for i := 1; i <= n; i++ {
		if s.dims[len(s.dims)-i] != o.dims[len(o.dims)-i] {
			return false
		}
	}

	return true
}

// lowerProduct is the product of every dim except the last n.
func (s Shape) lowerProduct(n int) int {
	p := 1
	for _, d := range s.dims[:len(s.dims)-n] {
		p *= d
	}

	return p
}

// ToLocked returns a locked shape. An open shape gets lead prepended as its
// leading dimension; a locked shape is returned unchanged.
func (s Shape) ToLocked(lead int) Shape {
	if s.locked {
		return s
	}
	dims := make([]int, 0, len(s.dims)+1)
	dims = append(dims, lead)
	dims = append(dims, s.dims...)

	return newShape(dims, true)
}

// ToOpen drops the leading dimension of a locked shape; open shapes are returned unchanged.
func (s Shape) ToOpen() Shape {
	if !s.locked {
		return s
	}

	return newShape(s.dims[1:], false)
}

// Squash collapses excess leading dimensions into one so the result has the
// requested rank. Shapes already at or below rank are returned unchanged.
//
// Examples:
//
//	Locked(2, 3, 4).Squash(2) -> (6, 4)
//	Locked(2, 3, 4).Squash(1) -> (24)
//	Open(3, 4).Squash(2)      -> (*, 4)
func (s Shape) Squash(rank int) Shape {
	if rank < 1 || rank >= s.Dimensionality() {
		return s
	}
	if !s.locked {
		return newShape(s.dims[len(s.dims)-(rank-1):], false)
	}
	cut := len(s.dims) - (rank - 1)
	dims := make([]int, 0, rank)
	dims = append(dims, s.lowerProduct(rank-1))
	dims = append(dims, s.dims[cut:]...)

	return newShape(dims, true)
}

// Common returns the shape satisfying both s and o, or false when they are
// incompatible. When exactly one operand is locked the result is locked.
//
// Complexity: O(rank).
func (s Shape) Common(o Shape) (Shape, bool) {
	n := min(s.upperLength(), o.upperLength())
	if n < 0 {
		n = 0
	}
	if !s.upperEqual(n, o) {
		return Shape{}, false
	}
	if s.locked {
		sp, op := s.lowerProduct(n), o.lowerProduct(n)
		if o.locked {
			if sp != op {
				return Shape{}, false
			}
		} else if sp%op != 0 {
			return Shape{}, false
		}

		return s, true
	}
	if o.locked {
		op, sp := o.lowerProduct(n), s.lowerProduct(n)
		if op%sp != 0 {
			return Shape{}, false
		}

		return s.ToLocked(op / sp), true
	}

	return s, true
}

// Compatible reports whether Common succeeds.
func (s Shape) Compatible(o Shape) bool {
	_, ok := s.Common(o)
	return ok
}

// CommonLossless is the directional Common: the operand of greater rank, or
// equal rank and greater dimensionality, is authoritative.
func (s Shape) CommonLossless(o Shape) (Shape, bool) {
	if len(s.dims) > len(o.dims) || (len(s.dims) == len(o.dims) && s.Dimensionality() > o.Dimensionality()) {
		return s.Common(o)
	}

	return o.Common(s)
}

// ReduceCommonLossless folds shapes with CommonLossless. An empty input
// yields the unconstrained open shape, which is the identity of the fold.
func ReduceCommonLossless(shapes ...Shape) (Shape, bool) {
	acc := Shape{}
	for _, s := range shapes {
		var ok bool
		if acc, ok = acc.CommonLossless(s); !ok {
			return Shape{}, false
		}
	}

	return acc, true
}

// Equal reports kind and dimension equality.
func (s Shape) Equal(o Shape) bool {
	if s.locked != o.locked || len(s.dims) != len(o.dims) {
		return false
	}
	for i := range s.dims {
		if s.dims[i] != o.dims[i] {
			return false
		}
	}

	return true
}

// String renders locked shapes as (a, b) and open shapes as (*, a, b).
func (s Shape) String() string {
	parts := make([]string, 0, len(s.dims)+1)
	if !s.locked {
		parts = append(parts, "*")
	}
	for _, d := range s.dims {
		parts = append(parts, fmt.Sprint(d))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
