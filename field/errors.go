package field

import "errors"

var (
	// ErrInvalidParameter is returned when an argument is structurally
	// unusable: a non-positive modulus, a negative exponent, a zero
	// inversion operand or a malformed element.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoInverse is returned when the operand shares a factor with the
	// modulus, so no modular inverse exists.
	ErrNoInverse = errors.New("no modular inverse")

	// ErrNoSquareRoot is returned by the verifying square-root routines
	// when the input is not a quadratic residue.
	ErrNoSquareRoot = errors.New("no square root")

	// ErrInvalidField is returned when a Field implementation fails
	// structural validation or lacks a capability a helper needs.
	ErrInvalidField = errors.New("invalid field")

	// ErrUnsupportedSize is returned when a field order is too large to
	// serialize.
	ErrUnsupportedSize = errors.New("unsupported field size")

	// ErrLengthMismatch is returned when a byte sequence does not have the
	// expected length.
	ErrLengthMismatch = errors.New("length mismatch")
)
