// SPDX-License-Identifier: MIT
// Package: lemnos/search
//
// errors.go — sentinel errors for the population search.

package search

import "errors"

var (
	// ErrBadConfig indicates a Config that fails Validate.
	ErrBadConfig = errors.New("search: invalid config")

	// ErrNilEvaluator indicates Run was called without an Evaluator.
	ErrNilEvaluator = errors.New("search: evaluator is nil")

	// ErrTooManyFailures indicates more compile failures than Config.MaxFailures.
	ErrTooManyFailures = errors.New("search: too many failed compilations")

	// ErrNoSurvivors indicates the search finished with an empty pool.
	ErrNoSurvivors = errors.New("search: no candidate survived")
)
