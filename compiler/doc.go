// Package compiler turns a schema into a shape-resolved IR by depth-first,
// priority-greedy search with backtracking.
//
// Algorithm (Compile):
//
//  1. Seed one slot per start node holding its compile input.
//  2. Repeat while slots remain:
//     a. pop the top slot of the stack whose top has the lowest priority
//     (ties go to the stack discovered first);
//     b. merge the slot's parents into the mould shape;
//     c. draw an index and scan transition groups outward from
//     pivot = index mod #groups: p, p+1, p-1, p+2, ...;
//     d. fold the conformance of every slot the group joins
//     (JoinExisting, or JoinAuto with an available slot);
//     e. resolve the output, append the node to the arena and record every
//     transition of the group;
//     f. when a later step fails, roll the frontier and arena back and try
//     the next group. A node without groups is a leaf tried once against an
//     open conformance.
//  3. Succeed when the frontier is empty and every end node was built.
//
// The frontier keeps an undo log, and the IR arena is truncated on rollback,
// so a failed branch never leaks into its siblings. Search frames live on an
// explicit stack; call depth does not grow with the IR.
//
// Outcomes:
//
//	*ir.Graph, nil           success, nodes in topological (build) order
//	nil, ErrNoArchitecture   exhaustion, node budget or step limit
//	nil, other error         caller mistake detected before searching
//
// Concurrency: one Compile call owns all of its state. A Schema may be shared
// by any number of concurrent Compile calls.
package compiler
