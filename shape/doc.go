// Package shape implements the shape-constraint algebra used while compiling
// a schema graph into an IR.
//
// What:
//
//   - Shape: an immutable ordered sequence of positive dimensions. A shape is
//     either locked (every dimension concrete) or open (an implicit leading
//     wildcard dimension followed by concrete trailing dimensions). Open shapes
//     appear mid-inference, when a merge point only constrains the trailing axes
//     of its producers.
//   - Bound: per-axis inclusive [lower, upper] limits, any side may be open.
//   - Range: float growth ratio applied to an input volume.
//
// Compatibility rules (Common):
//
//   - Trailing dimensions, right-aligned, must agree over the overlapping suffix.
//   - Locked vs locked: the remaining leading products must be equal.
//   - Open vs locked: the locked leading product must be divisible by the open
//     one; the result is locked and product-preserving.
//   - The locked operand is preferred as the result.
//
// Printing:
//
//	Locked(3, 32, 32)  -> (3, 32, 32)
//	Open(32, 32)       -> (*, 32, 32)
//
// Complexity:
//
//   - Every operation is O(rank). Products are cached at construction.
package shape
