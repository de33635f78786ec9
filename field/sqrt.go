package field

import (
	"fmt"
	"math/big"

	"github.com/zkfield/bigfield/logger"
)

// sqrtKind enumerates the specialization resolved at construction time.
type sqrtKind uint8

const (
	sqrt3Mod4Kind sqrtKind = iota
	sqrt5Mod8Kind
	sqrt9Mod16Kind
	sqrtGenericKind
)

func (k sqrtKind) String() string {
	switch k {
	case sqrt3Mod4Kind:
		return "3mod4"
	case sqrt5Mod8Kind:
		return "5mod8"
	case sqrt9Mod16Kind:
		return "9mod16"
	default:
		return "tonelli-shanks"
	}
}

// Sqrter computes square roots with secret-independent control flow. The
// specialization is picked once from the residue class of the field order;
// at runtime every variant performs the same operation sequence whatever
// the input value, so timing depends only on the order.
//
// Results are deliberately unverified: for a non-residue input the
// returned value is wrong rather than an error, because the verification
// branch would reintroduce input-dependent timing. Callers that need
// rejection square the result and compare, or use the verifying Sqrt
// primitive on public data.
type Sqrter[T any] struct {
	f           Field[T]
	kind        sqrtKind
	fn          func(x T) T
	legendreExp *big.Int
}

// NewSqrter derives the square-root routine for f. Orders congruent to
// 3 mod 4 need no conditional selection; every other residue class
// requires the Selector capability, and NewSqrter fails with
// ErrInvalidField without it.
func NewSqrter[T any](f Field[T]) (*Sqrter[T], error) {
	if err := ValidateField(f); err != nil {
		return nil, err
	}
	order := f.Order()
	if order.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: order must be odd", ErrInvalidParameter)
	}

	s := &Sqrter[T]{
		f:           f,
		legendreExp: new(big.Int).Rsh(new(big.Int).Sub(order, bigOne), 1),
	}

	var err error
	switch {
	case order.Bit(1) == 1: // order = 3 mod 4
		s.kind = sqrt3Mod4Kind
		s.fn = newSqrt3Mod4(f, order)
	case order.Bit(2) == 1: // order = 5 mod 8
		s.kind = sqrt5Mod8Kind
		s.fn, err = newSqrt5Mod8(f, order)
	case order.Bit(3) == 1: // order = 9 mod 16
		s.kind = sqrt9Mod16Kind
		s.fn, err = newSqrt9Mod16(f, order)
	default: // order = 1 mod 16
		s.kind = sqrtGenericKind
		s.fn, err = newSqrtTonelliShanks(f, order)
	}
	if err != nil {
		return nil, err
	}

	log := logger.Logger()
	log.Debug().Str("variant", s.kind.String()).Int("bits", f.BitLen()).Msg("selected sqrt specialization")
	return s, nil
}

// Sqrt returns a candidate square root of the canonical element x. The
// result is unverified; see the type documentation.
func (s *Sqrter[T]) Sqrt(x T) T { return s.fn(x) }

// IsSquare reports whether x is zero or a quadratic residue, as
// x^((order-1)/2) being zero or one. The underlying exponentiation ladder
// is not constant time.
func (s *Sqrter[T]) IsSquare(x T) bool {
	p, err := Pow(s.f, x, s.legendreExp)
	if err != nil {
		// the exponent is fixed and non-negative
		// this would never happen
		panic(err)
	}
	return s.f.IsZero(p) || s.f.Equal(p, s.f.One())
}

// Variant names the specialization in use, for logs and tests.
func (s *Sqrter[T]) Variant() string { return s.kind.String() }

// newSqrt3Mod4 returns the closed form x^((order+1)/4).
func newSqrt3Mod4[T any](f Field[T], order *big.Int) func(T) T {
	c1 := new(big.Int).Add(order, bigOne)
	c1.Rsh(c1, 2)
	return func(x T) T {
		r, err := Pow(f, x, c1)
		if err != nil {
			// the exponent is fixed and non-negative
			// this would never happen
			panic(err)
		}
		return r
	}
}

// newSqrt5Mod8 precomputes a square root of -1 and selects between the
// candidate root and its twist. 2 is a non-residue for such orders, so
// sqrt(-1) = 2^((order-1)/4).
func newSqrt5Mod8[T any](f Field[T], order *big.Int) (func(T) T, error) {
	sel, ok := f.(Selector[T])
	if !ok {
		return nil, fmt.Errorf("%w: order 5 mod 8 requires the CMov capability", ErrInvalidField)
	}
	e := new(big.Int).Rsh(new(big.Int).Sub(order, bigOne), 2)
	c1, err := Pow(f, f.Create(bigTwo), e)
	if err != nil {
		return nil, err
	}
	c2 := new(big.Int).Rsh(new(big.Int).Add(order, big.NewInt(3)), 3)

	return func(x T) T {
		tv1, err := Pow(f, x, c2)
		if err != nil {
			// the exponent is fixed and non-negative
			// this would never happen
			panic(err)
		}
		tv2 := f.Mul(tv1, c1)
		e1 := f.Equal(f.Square(tv1), x)
		return sel.CMov(tv2, tv1, e1)
	}, nil
}

// newSqrt9Mod16 precomputes nested roots of -1 over the integers, carries
// them into the field, and combines one exponentiation with three
// selections.
func newSqrt9Mod16[T any](f Field[T], order *big.Int) (func(T) T, error) {
	sel, ok := f.(Selector[T])
	if !ok {
		return nil, fmt.Errorf("%w: order 9 mod 16 requires the CMov capability", ErrInvalidField)
	}

	// -1 is a residue for order = 1 mod 4, and both roots of it are
	// residues again for order = 9 mod 16, so all three roots exist
	m1 := new(big.Int).Sub(order, bigOne)
	r1, err := Sqrt(m1, order)
	if err != nil {
		return nil, err
	}
	r2, err := Sqrt(r1, order)
	if err != nil {
		return nil, err
	}
	r3, err := Sqrt(new(big.Int).Sub(order, r1), order)
	if err != nil {
		return nil, err
	}
	c1, c2, c3 := f.Create(r1), f.Create(r2), f.Create(r3)
	c4 := new(big.Int).Rsh(new(big.Int).Add(order, big.NewInt(7)), 4)

	return func(x T) T {
		tv1, err := Pow(f, x, c4)
		if err != nil {
			// the exponent is fixed and non-negative
			// this would never happen
			panic(err)
		}
		tv2 := f.Mul(tv1, c1)
		tv3 := f.Mul(tv1, c2)
		tv4 := f.Mul(tv1, c3)
		e1 := f.Equal(f.Square(tv2), x)
		e2 := f.Equal(f.Square(tv3), x)
		tv1 = sel.CMov(tv1, tv2, e1)
		tv2 = sel.CMov(tv4, tv3, e2)
		e3 := f.Equal(f.Square(tv2), x)
		return sel.CMov(tv1, tv2, e3)
	}, nil
}

// newSqrtTonelliShanks builds the general constant-time Tonelli-Shanks
// routine: factor order-1 = c2 * 2^c1 with c2 odd, fix a non-residue c4
// and precompute c5 = c4^c2. The runtime loop runs exactly c1-1 outer
// iterations with an inner squaring loop bounded by the outer index, and
// every decision is a selection rather than a branch.
func newSqrtTonelliShanks[T any](f Field[T], order *big.Int) (func(T) T, error) {
	sel, ok := f.(Selector[T])
	if !ok {
		return nil, fmt.Errorf("%w: order 1 mod 16 requires the CMov capability", ErrInvalidField)
	}

	c2 := new(big.Int).Sub(order, bigOne)
	c1 := 0
	for c2.Bit(0) == 0 {
		c2.Rsh(c2, 1)
		c1++
	}
	c3 := new(big.Int).Rsh(new(big.Int).Sub(c2, bigOne), 1)
	c4, err := findNonResidue(order)
	if err != nil {
		return nil, err
	}
	c5, err := Pow(f, f.Create(c4), c2)
	if err != nil {
		return nil, err
	}

	return func(x T) T {
		z, err := Pow(f, x, c3)
		if err != nil {
			// the exponent is fixed and non-negative
			// this would never happen
			panic(err)
		}
		t := f.Mul(f.Square(z), x)
		z = f.Mul(z, x)
		b, c := t, c5
		for i := c1; i >= 2; i-- {
			for j := 1; j <= i-2; j++ {
				b = f.Square(b)
			}
			e := f.Equal(b, f.One())
			z = sel.CMov(f.Mul(z, c), z, e)
			c = f.Square(c)
			t = sel.CMov(f.Mul(t, c), t, e)
			b = t
		}
		return z
	}, nil
}
