// SPDX-License-Identifier: MIT
// Package: lemnos/ir
//
// errors.go — sentinel errors for the IR arena.

package ir

import "errors"

var (
	// ErrNodeNotFound indicates an id outside the arena.
	ErrNodeNotFound = errors.New("ir: node not found")

	// ErrBrokenEdge indicates a parent id that is not smaller than its child id,
	// or parent and child lists that disagree.
	ErrBrokenEdge = errors.New("ir: broken edge")

	// ErrCycle indicates the parent relation is not acyclic.
	ErrCycle = errors.New("ir: cycle detected")

	// ErrInvalidShape indicates a mould or output the schema node cannot produce.
	ErrInvalidShape = errors.New("ir: invalid shape")

	// ErrNilSchemaNode indicates a node added without its schema node.
	ErrNilSchemaNode = errors.New("ir: schema node is nil")

	// ErrForeignNode indicates a schema node that the arena's schema does not contain.
	ErrForeignNode = errors.New("ir: schema node not in schema")
)
