package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/shape"
)

// Schema builds and validates the declared schema graph. Node names become
// schema keys.
//
// Nodes are created first and wired second, so transitions may point
// forward, backward or at their own node.
func (d *Document) Schema() (*schema.Schema, error) {
	nodes := make(map[string]*schema.Node, len(d.Nodes))
	for i, spec := range d.Nodes {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: node %d has no name", ErrBadDocument, i)
		}
		if _, dup := nodes[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate node %q", ErrBadDocument, spec.Name)
		}
		n, err := spec.node()
		if err != nil {
			return nil, err
		}
		nodes[spec.Name] = n
	}

	for _, spec := range d.Nodes {
		from := nodes[spec.Name]
		for gi, group := range spec.Groups {
			ts := make([]schema.Transition, len(group))
			for ti, t := range group {
				next, ok := nodes[t.To]
				if !ok {
					return nil, fmt.Errorf("%w: %q in group %d of %q", ErrUnknownNode, t.To, gi, spec.Name)
				}
				join, err := schema.ParseJoin(t.Join)
				if err != nil {
					return nil, fmt.Errorf("%w: node %q: %w", ErrUnknownKind, spec.Name, err)
				}
				ts[ti] = schema.Transition{Next: next, Priority: t.Priority, Join: join}
			}
			if err := from.AddGroup(ts...); err != nil {
				return nil, fmt.Errorf("config: node %q group %d: %w", spec.Name, gi, err)
			}
		}
	}

	starts, err := lookup(nodes, d.Starts, "start")
	if err != nil {
		return nil, err
	}
	ends, err := lookup(nodes, d.Ends, "end")
	if err != nil {
		return nil, err
	}

	return schema.NewSchema(starts, ends)
}

func lookup(nodes map[string]*schema.Node, names []string, role string) ([]*schema.Node, error) {
	out := make([]*schema.Node, len(names))
	for i, name := range names {
		n, ok := nodes[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrUnknownNode, role, name)
		}
		out[i] = n
	}

	return out, nil
}

func (spec NodeSpec) node() (*schema.Node, error) {
	axes := make([]shape.Axis, len(spec.Bound))
	for i, s := range spec.Bound {
		a, err := ParseAxis(s)
		if err != nil {
			return nil, fmt.Errorf("%w: node %q axis %d: %w", ErrBadDocument, spec.Name, i, err)
		}
		axes[i] = a
	}
	bound, err := shape.NewBound(axes...)
	if err != nil {
		return nil, fmt.Errorf("%w: node %q: %w", ErrBadDocument, spec.Name, err)
	}

	merge, err := parseMerge(spec.Merge)
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", spec.Name, err)
	}
	transform, err := spec.Transform.build()
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", spec.Name, err)
	}
	act, err := schema.ParseActivation(spec.Activation)
	if err != nil {
		return nil, fmt.Errorf("%w: node %q: %w", ErrUnknownKind, spec.Name, err)
	}
	kind, err := schema.ParseRegularization(spec.Regularization.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: node %q: %w", ErrUnknownKind, spec.Name, err)
	}

	n, err := schema.NewNode(bound, merge,
		schema.WithName(spec.Name),
		schema.WithTransform(transform),
		schema.WithActivation(act),
		schema.WithRegularization(schema.Regularization{Kind: kind, P: spec.Regularization.P}))
	if err != nil {
		return nil, fmt.Errorf("config: node %q: %w", spec.Name, err)
	}

	return n, nil
}

func parseMerge(name string) (schema.MergeMethod, error) {
	switch name {
	case "", "add":
		return schema.Add, nil
	case "concat":
		return schema.Concat, nil
	default:
		return 0, fmt.Errorf("%w: merge %q", ErrUnknownKind, name)
	}
}

func (t TransformSpec) build() (schema.Transform, error) {
	growth, err := t.growth()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case "", "identity":
		return schema.Identity{}, nil
	case "conv":
		return schema.Conv{
			Kernel:    t.Kernel,
			Stride:    t.Stride,
			Dilation:  t.Dilation,
			Padding:   t.Padding,
			Depthwise: t.Depthwise,
			Growth:    growth,
		}, nil
	case "full":
		return schema.Full{Growth: growth}, nil
	default:
		return nil, fmt.Errorf("%w: transform %q", ErrUnknownKind, t.Kind)
	}
}

// growth reads [lo, hi], or [r] for a fixed ratio. Empty means the zero Range.
func (t TransformSpec) growth() (shape.Range, error) {
	var (
		r   shape.Range
		err error
	)
	switch len(t.Growth) {
	case 0:
		return shape.Range{}, nil
	case 1:
		r, err = shape.NewRange(t.Growth[0], t.Growth[0])
	case 2:
		r, err = shape.NewRange(t.Growth[0], t.Growth[1])
	default:
		return shape.Range{}, fmt.Errorf("%w: growth needs 1 or 2 values, got %d", ErrBadDocument, len(t.Growth))
	}
	if err != nil {
		return shape.Range{}, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}

	return r, nil
}

// ParseAxis reads an axis literal:
//
//	"*" or ""   any size
//	"8"         exactly 8
//	"1..64"     between 1 and 64
//	"4.."       at least 4
//	"..64"      at most 64
func ParseAxis(s string) (shape.Axis, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return shape.Any(), nil
	}
	lo, hi, ranged := strings.Cut(s, "..")
	if !ranged {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return shape.Axis{}, fmt.Errorf("%w: axis %q", shape.ErrBadBound, s)
		}
		return shape.Exact(n), nil
	}

	var a shape.Axis
	var err error
	if lo != "" {
		if a.Lower, err = strconv.Atoi(lo); err != nil {
			return shape.Axis{}, fmt.Errorf("%w: axis %q", shape.ErrBadBound, s)
		}
	}
	if hi != "" {
		if a.Upper, err = strconv.Atoi(hi); err != nil {
			return shape.Axis{}, fmt.Errorf("%w: axis %q", shape.ErrBadBound, s)
		}
	}
	if lo == "" && a.Upper > 0 {
		a.Lower = 1
	}
	if a.Lower < 0 || a.Upper < 0 || (a.Upper > 0 && a.Lower < 1) || (a.Upper > 0 && a.Lower > a.Upper) {
		return shape.Axis{}, fmt.Errorf("%w: axis %q", shape.ErrBadBound, s)
	}

	return a, nil
}
