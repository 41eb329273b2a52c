// SPDX-License-Identifier: MIT
// Package: lemnos/shape
//
// errors.go — sentinel errors for the shape package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached with %w at the failure site, never baked into the sentinel.
//   • Algebra operations never return errors: incompatibility is a normal
//     (Shape, false) outcome. Errors are reserved for malformed declarations.

package shape

import "errors"

// ErrEmptyShape indicates a locked shape was declared with no dimensions.
var ErrEmptyShape = errors.New("shape: locked shape cannot be empty")

// ErrNonPositiveDim indicates a dimension value < 1.
var ErrNonPositiveDim = errors.New("shape: dimension must be positive")

// ErrBadBound indicates a malformed axis bound (negative side or lower > upper).
var ErrBadBound = errors.New("shape: malformed bound")

// ErrBadRange indicates a malformed growth range (negative side or lower > upper).
var ErrBadRange = errors.New("shape: malformed range")
