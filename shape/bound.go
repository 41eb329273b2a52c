// SPDX-License-Identifier: MIT
// Package: lemnos/shape
//
// bound.go — per-axis shape bounds and growth ranges.
//
// Axis encoding:
//   • Lower == 0 means "no lower limit" (effective lower is 1), and is only
//     accepted on a fully open axis. An explicit upper needs Lower ≥ 1.
//   • Upper == 0 means "no upper limit".
//   • Bounds are right-aligned against shapes, like Common.

package shape

import (
	"fmt"
	"strings"
)

// Axis is an inclusive [Lower, Upper] limit on one dimension; zero sides are open.
type Axis struct {
	Lower int
	Upper int
}

// Any leaves an axis unbounded.
func Any() Axis { return Axis{} }

// Exact pins an axis to n.
func Exact(n int) Axis { return Axis{Lower: n, Upper: n} }

// Between limits an axis to [lo, hi].
func Between(lo, hi int) Axis { return Axis{Lower: lo, Upper: hi} }

// AtLeast limits an axis from below only.
func AtLeast(lo int) Axis { return Axis{Lower: lo} }

// Bounded reports whether any side of the axis is limited.
func (a Axis) Bounded() bool { return a.Lower > 0 || a.Upper > 0 }

// Clamp saturates v into the axis.
func (a Axis) Clamp(v int) int {
	if a.Lower > 0 && v < a.Lower {
		v = a.Lower
	}
	if a.Upper > 0 && v > a.Upper {
		v = a.Upper
	}

	return v
}

// Holds reports whether v lies inside the axis.
func (a Axis) Holds(v int) bool {
	return v >= max(a.Lower, 1) && (a.Upper == 0 || v <= a.Upper)
}

func (a Axis) validate() error {
	if a.Lower < 0 || a.Upper < 0 {
		return fmt.Errorf("%w: negative side %v", ErrBadBound, a)
	}
	if a.Upper > 0 && a.Lower == 0 {
		return fmt.Errorf("%w: upper %d without a lower limit", ErrBadBound, a.Upper)
	}
	if a.Upper > 0 && a.Lower > a.Upper {
		return fmt.Errorf("%w: lower %d > upper %d", ErrBadBound, a.Lower, a.Upper)
	}

	return nil
}

func (a Axis) String() string {
	switch {
	case !a.Bounded():
		return "_"
	case a.Lower == a.Upper:
		return fmt.Sprint(a.Lower)
	case a.Upper == 0:
		return fmt.Sprintf("%d..", a.Lower)
	default:
		return fmt.Sprintf("%d..%d", max(a.Lower, 1), a.Upper)
	}
}

// Bound is an ordered list of axis limits. Its length is the declared rank
// of the schema node owning it.
type Bound struct {
	axes []Axis
}

// NewBound validates every axis.
//
// Errors:
//   - ErrBadBound: negative side or lower > upper on any axis.
func NewBound(axes ...Axis) (Bound, error) {
	for i, a := range axes {
		if err := a.validate(); err != nil {
			return Bound{}, fmt.Errorf("axis %d: %w", i, err)
		}
	}
	cp := make([]Axis, len(axes))
	copy(cp, axes)

	return Bound{axes: cp}, nil
}

// MustBound is the panicking form of NewBound, meant for literal declarations.
func MustBound(axes ...Axis) Bound {
	b, err := NewBound(axes...)
	if err != nil {
		panic(fmt.Sprintf("shape.MustBound: %v", err))
	}

	return b
}

// Len returns the declared rank.
func (b Bound) Len() int { return len(b.axes) }

// Axis returns the limit of axis i (0 is the leading axis).
func (b Bound) Axis(i int) Axis { return b.axes[i] }

// ClampValue saturates v into axis i; an unbounded axis passes v through.
func (b Bound) ClampValue(v, i int) int {
	if i < 0 || i >= len(b.axes) {
		return v
	}

	return b.axes[i].Clamp(v)
}

// Clamp saturates every explicit dimension of s, right-aligned.
func (b Bound) Clamp(s Shape) Shape {
	dims := s.Dims()
	for i := 1; i <= min(len(dims), len(b.axes)); i++ {
		dims[len(dims)-i] = b.axes[len(b.axes)-i].Clamp(dims[len(dims)-i])
	}

	return newShape(dims, s.locked)
}

// Contains reports whether every explicit dimension of s, right-aligned,
// lies inside its axis. A locked shape of greater rank than the bound never fits.
func (b Bound) Contains(s Shape) bool {
	if s.locked && len(b.axes) > 0 && s.Len() > len(b.axes) {
		return false
	}
	for i := 1; i <= min(s.Len(), len(b.axes)); i++ {
		if !b.axes[len(b.axes)-i].Holds(s.dims[len(s.dims)-i]) {
			return false
		}
	}

	return true
}

func (b Bound) String() string {
	parts := make([]string, len(b.axes))
	for i, a := range b.axes {
		parts[i] = a.String()
	}

	return "Bound(" + strings.Join(parts, ", ") + ")"
}

// Range is a float growth ratio (Lower, Upper) applied to an input volume.
// The zero Range behaves as (1, 1): output volume equals input volume.
type Range struct {
	Lower float64
	Upper float64
}

// NewRange validates lo <= hi and both non-negative.
func NewRange(lo, hi float64) (Range, error) {
	if lo < 0 || hi < 0 || hi < lo {
		return Range{}, fmt.Errorf("%w: (%g, %g)", ErrBadRange, lo, hi)
	}

	return Range{Lower: lo, Upper: hi}, nil
}

// IsZero reports whether r is the zero value.
func (r Range) IsZero() bool { return r.Lower == 0 && r.Upper == 0 }

// Difference returns Upper - Lower.
func (r Range) Difference() float64 { return r.Upper - r.Lower }

// Scale returns the integer volume window [volume*Lower, volume*Upper].
func (r Range) Scale(volume int) (lo, hi int) {
	if r.IsZero() {
		return volume, volume
	}

	return int(float64(volume) * r.Lower), int(float64(volume) * r.Upper)
}
