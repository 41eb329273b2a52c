// SPDX-License-Identifier: MIT
// Package: lemnos/compiler
//
// errors.go — sentinel errors for Compile.
//
// Only ErrNoArchitecture is a search outcome; every other error is a caller
// mistake reported before the search starts.

package compiler

import "errors"

var (
	// ErrNilSchema is returned when Compile receives a nil schema.
	ErrNilSchema = errors.New("compiler: schema is nil")

	// ErrNilSource is returned when Compile receives a nil index source.
	ErrNilSource = errors.New("compiler: index source is nil")

	// ErrInputCount is returned when the number of inputs differs from the
	// number of start nodes.
	ErrInputCount = errors.New("compiler: input count does not match start nodes")

	// ErrInputNotLocked is returned for an open input shape.
	ErrInputNotLocked = errors.New("compiler: input shape is not locked")

	// ErrNoArchitecture reports that the search exhausted every alternative or
	// ran out of node budget. It is a normal outcome; retry with other indices.
	ErrNoArchitecture = errors.New("compiler: no valid architecture")
)
