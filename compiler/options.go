// SPDX-License-Identifier: MIT
// Package: lemnos/compiler
//
// options.go — functional options for Compile.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs;
//     Compile itself never panics.
//   • Nothing here changes which IR is produced except WithStepLimit,
//     which can only turn a success into ErrNoArchitecture.

package compiler

import "context"

// Option customizes one Compile call.
type Option func(*config)

type config struct {
	ctx       context.Context
	logEvery  int
	stepLimit int
}

func defaultConfig() config {
	return config{ctx: context.Background()}
}

// WithContext supplies the context carrying the clue logger. It is not a
// cancellation signal: compilation stops only on success, exhaustion or budget.
// Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("compiler: WithContext(nil)")
	}
	return func(c *config) { c.ctx = ctx }
}

// WithLogEvery logs a debug progress line every n backtracks. 0 disables it.
// Panics on negative n.
func WithLogEvery(n int) Option {
	if n < 0 {
		panic("compiler: WithLogEvery(negative)")
	}
	return func(c *config) { c.logEvery = n }
}

// WithStepLimit caps the number of group attempts across the whole search.
// Reaching it yields ErrNoArchitecture. 0 means unlimited. Panics on negative n.
func WithStepLimit(n int) Option {
	if n < 0 {
		panic("compiler: WithStepLimit(negative)")
	}
	return func(c *config) { c.stepLimit = n }
}
