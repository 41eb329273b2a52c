// Package schema defines the static template graph compiled into an IR.
//
// What:
//
//   - Node: a template state. It carries a shape Bound (whose length is the
//     node's declared rank), a MergeMethod combining its inputs, an optional
//     Transform, opaque Activation and Regularization tags, and an ordered list
//     of transition Groups. Nodes are built once, then shared read-only by every
//     compilation.
//   - Transition: a directed edge to a target Node with a priority in
//     [MinPriority, MaxPriority] (lower is tried first) and a JoinType.
//   - Group: transitions fired atomically. Either every transition of the group
//     is recorded or none is.
//   - Schema: the start and end node lists plus the deterministic key of every
//     reachable node.
//
// Join types:
//
//	JoinNew       always opens a fresh build slot for the target.
//	JoinExisting  attaches to an in-flight slot of the target that has no parent
//	              of the source's node type; fails the group otherwise.
//	JoinAuto      JoinExisting when a slot is available, JoinNew otherwise.
//
// Merge methods:
//
//	Add     siblings must be shape-identical; conformance is the sibling shape,
//	        collapsed to the node's rank and locked.
//	Concat  siblings agree on every axis but the leading (concat) axis;
//	        conformance is open on that axis.
//
// Transforms form a closed set (Identity, Conv, Full) dispatched by type
// switch; they are not meant to be extended outside this package.
//
// Example:
//
//	stem := schema.MustNode(shape.MustBound(shape.Between(1, 64), shape.Any()), schema.Add,
//		schema.WithTransform(schema.Conv{Kernel: []int{3}, Padding: []int{1}}),
//		schema.WithActivation(schema.ReLU), schema.WithName("stem"))
//	head := schema.MustNode(shape.MustBound(shape.Exact(10), shape.Exact(1)), schema.Add,
//		schema.WithTransform(schema.Full{}), schema.WithName("head"))
//	_ = stem.AddGroup(schema.New(head, 0))
//	s, err := schema.NewSchema([]*schema.Node{stem}, []*schema.Node{head})
package schema
