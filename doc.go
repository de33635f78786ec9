// Package bigfield provides a finite-field arithmetic engine over
// unbounded-precision integers and a Poseidon permutation built on top of it.
//
// The two layers are:
//   - field: modular primitives, a generic Field contract, a prime-field
//     instantiation over math/big integers, batch inversion and
//     constant-time square roots
//   - poseidon: the Poseidon permutation, parameterized entirely by
//     externally supplied round constants and an MDS matrix
//
// bigfield is curve-agnostic: it ships no curve constants and generates
// none. Callers bring their own modulus and permutation parameters.
package bigfield

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.3.0")
