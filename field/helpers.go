package field

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// Pow is double-and-add exponentiation expressed purely against the Field
// contract, so it works for any element type. It fails with
// ErrInvalidParameter for a negative power and short-circuits for powers
// zero and one. The ladder branches on exponent bits; not constant time.
func Pow[T any](f Field[T], x T, power *big.Int) (T, error) {
	var zero T
	if power == nil || power.Sign() < 0 {
		return zero, fmt.Errorf("%w: power must not be negative", ErrInvalidParameter)
	}
	if power.Sign() == 0 {
		return f.One(), nil
	}
	if power.Cmp(bigOne) == 0 {
		return f.Reduce(x), nil
	}

	p, d := f.One(), x
	for i, n := 0, power.BitLen(); i < n; i++ {
		if power.Bit(i) == 1 {
			p = f.Mul(p, d)
		}
		d = f.Square(d)
	}
	return p, nil
}

// BatchInvert inverts xs elementwise using Montgomery's trick: a forward
// pass accumulates a running product of the non-zero elements, one
// inversion of the final product, and a backward pass distributes the
// inverse back across each position. Zero elements map to zero and are
// never inverted. Costs one inversion plus 3(n-1) multiplications.
func BatchInvert[T any](f Field[T], xs []T) ([]T, error) {
	res := make([]T, len(xs))
	if len(xs) == 0 {
		return res, nil
	}

	zeroes := bitset.New(uint(len(xs)))
	acc := f.One()
	for i, x := range xs {
		if f.IsZero(x) {
			zeroes.Set(uint(i))
			res[i] = f.Zero()
			continue
		}
		res[i] = acc
		acc = f.Mul(acc, x)
	}

	inv, err := f.Invert(acc)
	if err != nil {
		return nil, err
	}

	for i := len(xs) - 1; i >= 0; i-- {
		if zeroes.Test(uint(i)) {
			continue
		}
		res[i] = f.Mul(inv, res[i])
		inv = f.Mul(inv, xs[i])
	}
	return res, nil
}

// Div returns a/b, inverting b through the field.
func Div[T any](f Field[T], a, b T) (T, error) {
	inv, err := f.Invert(b)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.Mul(a, inv), nil
}

// DivBig returns a/b where b is a bare integer, inverted against the field
// order with the extended-Euclid primitive rather than through the field.
func DivBig[T any](f Field[T], a T, b *big.Int) (T, error) {
	inv, err := Invert(b, f.Order())
	if err != nil {
		var zero T
		return zero, err
	}
	return f.Mul(a, f.Create(inv)), nil
}

// SqrtOdd returns the square root of x with its parity bit set. It fails
// with ErrInvalidField when the field does not report parity.
func SqrtOdd[T any](f Field[T], x T) (T, error) {
	var zero T
	odd, ok := f.(OddField[T])
	if !ok {
		return zero, fmt.Errorf("%w: IsOdd capability required", ErrInvalidField)
	}
	root, err := f.Sqrt(x)
	if err != nil {
		return zero, err
	}
	if odd.IsOdd(root) {
		return root, nil
	}
	return f.Neg(root), nil
}

// SqrtEven returns the square root of x with its parity bit clear. It
// fails with ErrInvalidField when the field does not report parity.
func SqrtEven[T any](f Field[T], x T) (T, error) {
	var zero T
	odd, ok := f.(OddField[T])
	if !ok {
		return zero, fmt.Errorf("%w: IsOdd capability required", ErrInvalidField)
	}
	root, err := f.Sqrt(x)
	if err != nil {
		return zero, err
	}
	if !odd.IsOdd(root) {
		return root, nil
	}
	return f.Neg(root), nil
}
