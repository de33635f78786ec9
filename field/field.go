package field

import (
	"fmt"
	"math/big"
)

// Field is the capability set a finite-field implementation exposes over an
// opaque element type T. Implementations are immutable values: every method
// is pure, returns fresh elements and never mutates its arguments, so a
// Field can be shared across goroutines without synchronization.
//
// Every element returned by a non-N operation lies in the canonical range
// [0, Order). The N-suffixed variants skip the final reduction and may
// return representations outside that range; callers must Reduce before
// mixing their results with normalized values.
type Field[T any] interface {
	// Order returns the field order.
	Order() *big.Int
	// BitLen returns the serialized size of an element in bits.
	BitLen() int
	// ByteLen returns the serialized size of an element in bytes.
	ByteLen() int
	// Mask returns the all-ones mask covering BitLen bits.
	Mask() *big.Int

	Zero() T
	One() T

	// Create maps an arbitrary integer into a canonical element.
	Create(v *big.Int) T
	// Reduce maps a possibly non-normalized element back into the
	// canonical range.
	Reduce(a T) T
	// IsValid reports whether a is a canonical element.
	IsValid(a T) bool
	IsZero(a T) bool
	Equal(a, b T) bool

	Neg(a T) T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Square(a T) T

	AddN(a, b T) T
	SubN(a, b T) T
	MulN(a, b T) T
	SquareN(a T) T

	// Pow raises a to a non-negative power. Not constant time.
	Pow(a T, k *big.Int) (T, error)
	// Invert returns the multiplicative inverse of a non-zero element.
	Invert(a T) (T, error)
	// Div returns a divided by b.
	Div(a, b T) (T, error)
	// Sqrt returns a square root of a, verifying the result.
	Sqrt(a T) (T, error)
}

// OddField is an optional capability reporting element parity, the sign
// convention for little-endian encodings.
type OddField[T any] interface {
	IsOdd(a T) bool
}

// LegendreField is an optional capability computing the Legendre symbol of
// an element, as an element: one, order minus one, or zero.
type LegendreField[T any] interface {
	Legendre(a T) T
}

// Selector is an optional capability providing conditional selection:
// CMov returns a when c is false and b when c is true. Implementations
// should avoid data-dependent branching; see the package documentation for
// what that guarantee can and cannot cover.
type Selector[T any] interface {
	CMov(a, b T, c bool) T
}

// ByteCoder is an optional capability serializing elements to a fixed
// width.
type ByteCoder[T any] interface {
	ToBytes(a T) ([]byte, error)
	FromBytes(data []byte) (T, error)
}

// BatchInverter is an optional capability inverting many elements at once.
type BatchInverter[T any] interface {
	InvertBatch(xs []T) ([]T, error)
}

// ValidateField checks the structural invariants of a Field
// implementation and fails with ErrInvalidField naming the first
// non-conforming attribute: the order must be a positive integer, the bit
// and byte lengths consistent, the mask must cover exactly the bit length
// and the identity elements must behave as identities. It is a shape
// check, not a verification of field axioms.
func ValidateField[T any](f Field[T]) error {
	if f == nil {
		return fmt.Errorf("%w: field must not be nil", ErrInvalidField)
	}
	order := f.Order()
	if order == nil || order.Sign() <= 0 {
		return fmt.Errorf("%w: ORDER must be a positive integer", ErrInvalidField)
	}
	if f.BitLen() <= 0 {
		return fmt.Errorf("%w: BITS must be positive", ErrInvalidField)
	}
	if f.ByteLen() != (f.BitLen()+7)/8 {
		return fmt.Errorf("%w: BYTES must be the ceiling of BITS/8", ErrInvalidField)
	}
	if mask := f.Mask(); mask == nil || mask.BitLen() != f.BitLen() {
		return fmt.Errorf("%w: MASK must cover exactly BITS bits", ErrInvalidField)
	}
	if zero := f.Zero(); !f.IsValid(zero) || !f.IsZero(zero) {
		return fmt.Errorf("%w: ZERO must be a valid zero element", ErrInvalidField)
	}
	if one := f.One(); !f.IsValid(one) || f.IsZero(one) {
		return fmt.Errorf("%w: ONE must be a valid non-zero element", ErrInvalidField)
	}
	return nil
}
