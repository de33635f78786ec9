// Package field implements arithmetic over prime fields of
// unbounded-precision integers.
//
// The package is organized in three layers. At the bottom, stateless
// modular primitives (Mod, Exp, Invert, Legendre, Sqrt) operate on bare
// big integers. Above them, the generic Field contract describes every
// operation a field element type must support; Fp instantiates it for
// *big.Int elements over a caller-supplied prime order, and helpers such
// as Pow, BatchInvert and Div are written against the contract so they
// serve any element representation, including extension fields. At the
// top, Sqrter resolves a square-root specialization from the residue
// class of the order, and Sampler derives reproducible element streams
// from an extendable-output function.
//
// Field values and Sqrter values are immutable after construction. All
// operations are pure: they return fresh elements and never mutate their
// arguments, so instances can be shared across goroutines without
// synchronization.
//
// The N-suffixed operations (AddN, SubN, MulN, SquareN) skip the final
// modular reduction. They exist for reduction-heavy inner loops such as a
// matrix-vector product, where one reduction per output element replaces
// one per multiplication. Their results live outside the canonical range
// and must be passed through Reduce before they meet normalized values.
//
// Square roots come in two deliberately distinct flavors. The Sqrt
// primitive (and Fp.Sqrt built on it) verifies its result and reports
// ErrNoSquareRoot for a non-residue, at the cost of input-dependent
// control flow. A Sqrter never verifies: it performs the same operation
// sequence for every input, returning a wrong value for non-residues, so
// that timing reveals nothing about the input. Pick the entry point by
// whether the input is secret, and never move a secret through the
// verifying path.
//
// A caveat applies to every constant-time claim in this package: only the
// control flow is secret-independent. The unbounded-precision integer
// arithmetic underneath does not promise branch-free limb operations, so
// full side-channel resistance additionally requires a constant-time
// big-integer backend.
package field
