// SPDX-License-Identifier: MIT
// Package: lemnos/schema
//
// errors.go — sentinel errors for schema definition.
//
// Every error in this package is a definition-time error: it is returned while
// a schema is being authored and never during compilation.

package schema

import "errors"

var (
	// ErrPriorityRange indicates a transition priority outside [MinPriority, MaxPriority].
	ErrPriorityRange = errors.New("schema: priority out of range")

	// ErrDuplicateTarget indicates two transitions of one group share a target.
	ErrDuplicateTarget = errors.New("schema: duplicate target in transition group")

	// ErrEmptyGroup indicates a group declared without transitions.
	ErrEmptyGroup = errors.New("schema: empty transition group")

	// ErrNilNode indicates a nil *Node where a node is required.
	ErrNilNode = errors.New("schema: node is nil")

	// ErrBadJoin indicates an unknown JoinType value.
	ErrBadJoin = errors.New("schema: unknown join type")

	// ErrNoStarts indicates a schema without start nodes.
	ErrNoStarts = errors.New("schema: no start nodes")

	// ErrNoEnds indicates a schema without end nodes.
	ErrNoEnds = errors.New("schema: no end nodes")

	// ErrEndHasTransitions indicates an end node declaring outgoing transitions.
	ErrEndHasTransitions = errors.New("schema: end node has outgoing transitions")

	// ErrEmptyBound indicates a node declared with a zero-rank bound.
	ErrEmptyBound = errors.New("schema: node bound has no axes")

	// ErrBadMerge indicates an unknown MergeMethod value.
	ErrBadMerge = errors.New("schema: unknown merge method")

	// ErrBadTransform indicates transform parameters inconsistent with the node rank.
	ErrBadTransform = errors.New("schema: invalid transform")

	// ErrBadComponent indicates an invalid activation or regularization tag.
	ErrBadComponent = errors.New("schema: invalid component")
)
