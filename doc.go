// Package lemnos compiles neural-architecture search spaces into concrete,
// shape-resolved model graphs.
//
// A search space is a schema: a directed, possibly cyclic graph of layer
// templates. Each node declares a shape bound, a merge method, a transform
// and ordered groups of prioritized transitions. Compiling the schema
// against locked input shapes unrolls it into an acyclic IR in which every
// node has a concrete output shape, using a stochastic index source to pick
// between alternatives and backtracking whenever shapes cannot be made to
// agree.
//
// Subpackages:
//
//	shape/    — locked and open shapes, bounds, growth ranges and their algebra
//	index/    — deterministic index sources: sequences, seeded streams, breeding
//	schema/   — nodes, merge methods, transforms, transition groups, validation
//	compiler/ — the backtracking build tracker (Compile)
//	ir/       — the arena IR: ordering, validation, statistics, DOT export
//	config/   — YAML declarations of schemas and search tuning
//	search/   — population search: parallel compile, evaluate, cull, breed
//
// Quick ASCII example:
//
//	  [start] ──(repeat, p0)──┐
//	     │  ▲─────────────────┘
//	     └──(p1)──> [end]
//
//	compiles, for draws 0, 1, into start#0 -> start#1 -> end#0.
//
// See examples/ for complete programs and cmd/lemnos for the command line.
package lemnos
