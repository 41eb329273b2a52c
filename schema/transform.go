// SPDX-License-Identifier: MIT
// Package: lemnos/schema
//
// transform.go — the closed set of shape transforms.
//
// Purpose:
//   - Derive a node's locked output from its mould (merged input), the
//     conformance imposed by the consumer's siblings, and one index draw.
//   - Check that a given (mould, output) pair is realizable.
//
// Conv axis convention:
//
//	axis 0       channels (leading, sized by draw or conformance)
//	axes 1..r-1  spatial, out = ((in + 2p) - (k*d - (d-1))) / s + 1

package schema

import (
	"fmt"

	"github.com/katalvlaran/lemnos/index"
	"github.com/katalvlaran/lemnos/shape"
)

// Transform is a sealed variant: Identity, Conv or Full.
type Transform interface {
	fmt.Stringer
	isTransform()
}

// Identity passes the mould through unchanged.
type Identity struct{}

// Conv is an N-d convolution over the trailing rank-1 axes.
// Empty parameter slices default to kernel 1, stride 1, dilation 1,
// padding 0; a single value is broadcast to every spatial axis.
type Conv struct {
	Kernel    []int
	Stride    []int
	Dilation  []int
	Padding   []int
	Depthwise bool
	Growth    shape.Range
}

// Full is a fully connected layer. Trailing axes come from the conformance,
// then the bound; the leading axis is sized by Growth.
type Full struct {
	Growth shape.Range
}

func (Identity) isTransform() {}
func (Conv) isTransform()     {}
func (Full) isTransform()     {}

func (Identity) String() string { return "identity" }

func (c Conv) String() string {
	kind := "conv"
	if c.Depthwise {
		kind = "dwconv"
	}

	return fmt.Sprintf("%s(k=%v s=%v d=%v p=%v)", kind, c.Kernel, c.Stride, c.Dilation, c.Padding)
}

func (Full) String() string { return "full" }

// convParams is a Conv with every slice expanded to the spatial count.
type convParams struct {
	kernel, stride, dilation, padding []int
}

func expand(vals []int, n, def int) ([]int, bool) {
	out := make([]int, n)
	switch len(vals) {
	case 0:
		for i := range out {
			out[i] = def
		}
	case 1:
		for i := range out {
			out[i] = vals[0]
		}
	case n:
		copy(out, vals)
	default:
		return nil, false
	}

	return out, true
}

func (c Conv) params(spatial int) (convParams, error) {
	var p convParams
	var ok [4]bool
	p.kernel, ok[0] = expand(c.Kernel, spatial, 1)
	p.stride, ok[1] = expand(c.Stride, spatial, 1)
	p.dilation, ok[2] = expand(c.Dilation, spatial, 1)
	p.padding, ok[3] = expand(c.Padding, spatial, 0)
	for _, v := range ok {
		if !v {
			return p, fmt.Errorf("%w: conv parameters do not match %d spatial axes", ErrBadTransform, spatial)
		}
	}
	for i := 0; i < spatial; i++ {
		if p.kernel[i] < 1 || p.stride[i] < 1 || p.dilation[i] < 1 || p.padding[i] < 0 {
			return p, fmt.Errorf("%w: conv axis %d has non-positive kernel, stride or dilation", ErrBadTransform, i)
		}
	}

	return p, nil
}

// outDim maps one spatial input dim to its output dim; 0 means no valid output.
func (p convParams) outDim(in, i int) int {
	span := p.kernel[i]*p.dilation[i] - (p.dilation[i] - 1)
	padded := in + 2*p.padding[i]
	if padded < span {
		return 0
	}

	return (padded-span)/p.stride[i] + 1
}

// validateTransform checks transform parameters against the node rank.
func validateTransform(t Transform, rank int) error {
	switch t := t.(type) {
	case nil, Identity, Full:
		return nil
	case Conv:
		if rank < 2 {
			return fmt.Errorf("%w: conv needs rank >= 2, got %d", ErrBadTransform, rank)
		}
		_, err := t.params(rank - 1)
		return err
	default:
		return fmt.Errorf("%w: %T", ErrBadTransform, t)
	}
}

// transformOutput dispatches on the sealed variant.
func transformOutput(t Transform, b shape.Bound, mould, conf shape.Shape, p index.Picker) (shape.Shape, bool) {
	switch t := t.(type) {
	case nil, Identity:
		if !conf.Compatible(mould) {
			return shape.Shape{}, false
		}
		return mould, true
	case Conv:
		return convOutput(t, b, mould, conf, p)
	case Full:
		return fullOutput(t, b, mould, conf, p)
	default:
		return shape.Shape{}, false
	}
}

// leadingDim sizes the free leading axis given the fixed trailing volume.
func leadingDim(growth shape.Range, b shape.Bound, mould shape.Shape, trailing int, p index.Picker) int {
	lo, hi := growth.Scale(mould.Product())
	lo, hi = lo/trailing, hi/trailing
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}

	return max(b.ClampValue(p.Within(lo, hi), 0), 1)
}

// lockLeading resolves the leading axis of open against a locked conformance.
func lockLeading(open, conf shape.Shape) (int, bool) {
	if !conf.Compatible(open) {
		return 0, false
	}
	if conf.Product()%open.Product() != 0 {
		return 0, false
	}

	return conf.Product() / open.Product(), true
}

func convOutput(c Conv, b shape.Bound, mould, conf shape.Shape, p index.Picker) (shape.Shape, bool) {
	rank := b.Len()
	if !mould.IsLocked() || mould.Len() != rank {
		return shape.Shape{}, false
	}
	cp, err := c.params(rank - 1)
	if err != nil {
		return shape.Shape{}, false
	}
	spatial := make([]int, rank-1)
	for i := range spatial {
		if spatial[i] = cp.outDim(mould.Dim(i+1), i); spatial[i] < 1 {
			return shape.Shape{}, false
		}
	}
	open := shape.Open(spatial...)
	if !conf.Compatible(open) {
		return shape.Shape{}, false
	}

	var lead int
	switch {
	case conf.IsLocked():
		var ok bool
		if lead, ok = lockLeading(open, conf); !ok {
			return shape.Shape{}, false
		}
		if c.Depthwise && lead != mould.Dim(0) {
			return shape.Shape{}, false
		}
	case c.Depthwise:
		lead = mould.Dim(0)
	default:
		lead = leadingDim(c.Growth, b, mould, open.Product(), p)
	}

	return open.ToLocked(lead), true
}

func fullOutput(f Full, b shape.Bound, mould, conf shape.Shape, p index.Picker) (shape.Shape, bool) {
	rank := b.Len()
	// Explicit conformance dims usable for trailing axes.
	confTrailing := conf.Len()
	if conf.IsLocked() {
		confTrailing--
	}
	trailing := make([]int, rank-1)
	for r := 1; r < rank; r++ {
		axis := rank - r
		var v int
		switch {
		case r <= confTrailing:
			v = conf.Dim(conf.Len() - r)
		case r < mould.Len():
			v = b.ClampValue(mould.Dim(mould.Len()-r), axis)
		default:
			v = b.ClampValue(1, axis)
		}
		trailing[axis-1] = v
	}
	open := shape.Open(trailing...)

	var lead int
	if conf.IsLocked() {
		var ok bool
		if lead, ok = lockLeading(open, conf); !ok {
			return shape.Shape{}, false
		}
	} else {
		lead = leadingDim(f.Growth, b, mould, open.Product(), p)
	}
	out := open.ToLocked(lead)
	if !conf.Compatible(out) {
		return shape.Shape{}, false
	}

	return out, true
}

// transformValid reports whether out is realizable from mould.
func transformValid(t Transform, rank int, mould, out shape.Shape) bool {
	switch t := t.(type) {
	case nil, Identity:
		return mould.Equal(out)
	case Conv:
		if mould.Len() != rank || out.Len() != rank || !out.IsLocked() {
			return false
		}
		cp, err := t.params(rank - 1)
		if err != nil {
			return false
		}
		for i := 0; i < rank-1; i++ {
			if cp.outDim(mould.Dim(i+1), i) != out.Dim(i+1) {
				return false
			}
		}
		return !t.Depthwise || out.Dim(0) == mould.Dim(0)
	case Full:
		return out.IsLocked() && out.Len() == rank
	default:
		return false
	}
}
