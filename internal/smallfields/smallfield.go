// Package smallfields provides a word-sized prime field for exercising the
// generic field contract on a second element representation. Orders are
// small enough for exhaustive checks, and the element type is a plain
// value, unlike the big integers of Fp.
package smallfields

import (
	"fmt"
	"math/big"

	"github.com/zkfield/bigfield/field"
	"github.com/zkfield/bigfield/internal/utils"
)

// Field implements field.Field[uint64] for an odd prime below 2^31. A
// product of two canonical elements fits in a word, so one level of
// deferred reduction is always safe; longer N-chains need headroom that
// callers must budget themselves.
type Field struct {
	q       uint64
	order   *big.Int
	bitLen  int
	byteLen int
	mask    *big.Int
}

var (
	_ field.Field[uint64]         = (*Field)(nil)
	_ field.OddField[uint64]      = (*Field)(nil)
	_ field.LegendreField[uint64] = (*Field)(nil)
	_ field.Selector[uint64]      = (*Field)(nil)
)

// New returns the field of order q. q must be an odd prime below 2^31;
// primality is not checked.
func New(q uint64) (*Field, error) {
	if q < 3 || q&1 == 0 {
		return nil, fmt.Errorf("%w: order must be an odd prime, got %d", field.ErrInvalidParameter, q)
	}
	if q >= 1<<31 {
		return nil, fmt.Errorf("%w: order %d does not fit 31 bits", field.ErrUnsupportedSize, q)
	}
	order := new(big.Int).SetUint64(q)
	bitLen, byteLen := utils.NLength(order, 0)
	return &Field{
		q:       q,
		order:   order,
		bitLen:  bitLen,
		byteLen: byteLen,
		mask:    utils.BitMask(bitLen),
	}, nil
}

func (f *Field) Order() *big.Int { return new(big.Int).Set(f.order) }
func (f *Field) BitLen() int     { return f.bitLen }
func (f *Field) ByteLen() int    { return f.byteLen }
func (f *Field) Mask() *big.Int  { return new(big.Int).Set(f.mask) }
func (f *Field) Zero() uint64    { return 0 }
func (f *Field) One() uint64     { return 1 }

func (f *Field) Create(v *big.Int) uint64 {
	return new(big.Int).Mod(v, f.order).Uint64()
}

func (f *Field) Reduce(a uint64) uint64 { return a % f.q }

func (f *Field) IsValid(a uint64) bool  { return a < f.q }
func (f *Field) IsZero(a uint64) bool   { return a == 0 }
func (f *Field) Equal(a, b uint64) bool { return a == b }
func (f *Field) IsOdd(a uint64) bool    { return a&1 == 1 }

func (f *Field) Neg(a uint64) uint64 { return (f.q - a%f.q) % f.q }

func (f *Field) Add(a, b uint64) uint64 { return (a + b) % f.q }
func (f *Field) Sub(a, b uint64) uint64 { return (a + f.q - b%f.q) % f.q }
func (f *Field) Mul(a, b uint64) uint64 { return (a * b) % f.q }
func (f *Field) Square(a uint64) uint64 { return (a * a) % f.q }

func (f *Field) AddN(a, b uint64) uint64 { return a + b }
func (f *Field) SubN(a, b uint64) uint64 { return a + f.q - b%f.q }
func (f *Field) MulN(a, b uint64) uint64 { return a * b }
func (f *Field) SquareN(a uint64) uint64 { return a * a }

func (f *Field) Pow(a uint64, k *big.Int) (uint64, error) {
	return field.Pow[uint64](f, a, k)
}

func (f *Field) Invert(a uint64) (uint64, error) {
	inv, err := field.Invert(new(big.Int).SetUint64(a), f.order)
	if err != nil {
		return 0, err
	}
	return inv.Uint64(), nil
}

func (f *Field) Div(a, b uint64) (uint64, error) {
	inv, err := f.Invert(b)
	if err != nil {
		return 0, err
	}
	return f.Mul(a, inv), nil
}

func (f *Field) Sqrt(a uint64) (uint64, error) {
	r, err := field.Sqrt(new(big.Int).SetUint64(a), f.order)
	if err != nil {
		return 0, err
	}
	return r.Uint64(), nil
}

func (f *Field) Legendre(a uint64) uint64 {
	ls, err := field.Legendre(new(big.Int).SetUint64(a), f.order)
	if err != nil {
		// the order is fixed and positive at construction
		// this would never happen
		panic(err)
	}
	return ls.Uint64()
}

// CMov returns b when c is true and a otherwise, selecting through a mask
// instead of a data-dependent branch.
func (f *Field) CMov(a, b uint64, c bool) uint64 {
	var ctrl uint64
	if c {
		ctrl = 1
	}
	mask := -ctrl
	return (a &^ mask) | (b & mask)
}
