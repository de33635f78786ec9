package field

import (
	"fmt"
	"math/big"
)

// nonResidueSearchBound caps the search for a quadratic non-residue. For a
// prime modulus a non-residue is found long before the bound; running into
// it means the modulus is almost certainly composite.
const nonResidueSearchBound = 1000

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Mod returns the Euclidean remainder of a modulo m, always in [0, m) even
// for negative a. m must be positive.
func Mod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}

// Exp computes base^exponent mod modulus with a binary square-and-multiply
// ladder. It fails with ErrInvalidParameter for a non-positive modulus or a
// negative exponent and returns 0 for modulus 1. The ladder branches on
// exponent bits, so it must not be used with secret exponents.
func Exp(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameter)
	}
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("%w: exponent must not be negative", ErrInvalidParameter)
	}
	if modulus.Cmp(bigOne) == 0 {
		return new(big.Int), nil
	}

	res := big.NewInt(1)
	b := Mod(base, modulus)
	for i, n := 0, exponent.BitLen(); i < n; i++ {
		if exponent.Bit(i) == 1 {
			res.Mul(res, b)
			res.Mod(res, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return res, nil
}

// Pow2k computes x^(2^k) mod modulus by k repeated squarings. modulus must
// be positive.
func Pow2k(x *big.Int, k uint, modulus *big.Int) *big.Int {
	r := Mod(x, modulus)
	for ; k > 0; k-- {
		r.Mul(r, r)
		r.Mod(r, modulus)
	}
	return r
}

// Invert computes the modular inverse of n with the extended Euclidean
// algorithm, tracking Bezout coefficients. It fails with
// ErrInvalidParameter when n is zero or the modulus is not positive, and
// with ErrNoInverse when gcd(n, modulus) != 1. The result is normalized
// into [0, modulus).
func Invert(n, modulus *big.Int) (*big.Int, error) {
	if n == nil || n.Sign() == 0 {
		return nil, fmt.Errorf("%w: cannot invert zero", ErrInvalidParameter)
	}
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameter)
	}

	a := Mod(n, modulus)
	b := new(big.Int).Set(modulus)
	x, y := new(big.Int), big.NewInt(1)
	u, v := big.NewInt(1), new(big.Int)
	for a.Sign() != 0 {
		q, r := new(big.Int).QuoRem(b, a, new(big.Int))
		m := new(big.Int).Sub(x, new(big.Int).Mul(u, q))
		w := new(big.Int).Sub(y, new(big.Int).Mul(v, q))
		b, a = a, r
		x, y = u, v
		u, v = m, w
	}
	if b.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNoInverse, n.String(), modulus.String(), b.String())
	}
	return Mod(x, modulus), nil
}

// Legendre computes the Legendre symbol a^((p-1)/2) mod p. For an odd
// prime p the result is 1 for a quadratic residue, p-1 for a non-residue
// and 0 when a is a multiple of p.
func Legendre(a, p *big.Int) (*big.Int, error) {
	if p == nil || p.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameter)
	}
	e := new(big.Int).Sub(p, bigOne)
	e.Rsh(e, 1)
	return Exp(a, e, p)
}

// Sqrt computes a square root of n modulo an odd prime, dispatching on the
// residue class of the modulus: the closed form for 3 mod 4, Atkin's
// method for 5 mod 8 and classical Tonelli-Shanks otherwise. The result is
// verified by squaring; if n is not a quadratic residue Sqrt fails with
// ErrNoSquareRoot. Control flow depends on the input, so this entry point
// is reserved for public data; secret-dependent callers use a Sqrter.
func Sqrt(n, modulus *big.Int) (*big.Int, error) {
	if modulus == nil || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", ErrInvalidParameter)
	}
	a := Mod(n, modulus)
	switch {
	case modulus.Bit(0) == 1 && modulus.Bit(1) == 1:
		return sqrt3Mod4(a, modulus)
	case modulus.Bit(0) == 1 && modulus.Bit(2) == 1:
		return sqrt5Mod8(a, modulus)
	default:
		return sqrtTonelliShanks(a, modulus)
	}
}

// sqrt3Mod4 uses the closed form n^((p+1)/4).
func sqrt3Mod4(a, p *big.Int) (*big.Int, error) {
	e := new(big.Int).Add(p, bigOne)
	e.Rsh(e, 2)
	root, err := Exp(a, e, p)
	if err != nil {
		return nil, err
	}
	if err := verifyRoot(root, a, p); err != nil {
		return nil, err
	}
	return root, nil
}

// sqrt5Mod8 uses Atkin's method: v = (2a)^((p-5)/8), i = 2av^2,
// root = av(i-1). One exponentiation instead of two.
func sqrt5Mod8(a, p *big.Int) (*big.Int, error) {
	e := new(big.Int).Sub(p, big.NewInt(5))
	e.Rsh(e, 3)
	a2 := new(big.Int).Lsh(a, 1)
	v, err := Exp(a2, e, p)
	if err != nil {
		return nil, err
	}
	i := new(big.Int).Mul(v, v)
	i.Mul(i, a2)
	i.Mod(i, p)
	root := i.Sub(i, bigOne)
	root.Mul(root, v)
	root.Mul(root, a)
	root.Mod(root, p)
	if err := verifyRoot(root, a, p); err != nil {
		return nil, err
	}
	return root, nil
}

// sqrtTonelliShanks is the classical, branching Tonelli-Shanks algorithm
// for p = 1 mod 8.
func sqrtTonelliShanks(a, p *big.Int) (*big.Int, error) {
	if a.Sign() == 0 {
		return new(big.Int), nil
	}
	pm1 := new(big.Int).Sub(p, bigOne)
	ls, err := Legendre(a, p)
	if err != nil {
		return nil, err
	}
	if ls.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: %s is not a quadratic residue", ErrNoSquareRoot, a.String())
	}

	// factor p-1 = q * 2^s with q odd
	q := new(big.Int).Set(pm1)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}
	z, err := findNonResidue(p)
	if err != nil {
		return nil, err
	}

	m := s
	c, err := Exp(z, q, p)
	if err != nil {
		return nil, err
	}
	t, err := Exp(a, q, p)
	if err != nil {
		return nil, err
	}
	e := new(big.Int).Add(q, bigOne)
	e.Rsh(e, 1)
	r, err := Exp(a, e, p)
	if err != nil {
		return nil, err
	}

	for t.Cmp(bigOne) != 0 {
		// least i with t^(2^i) = 1; it exists and is below m when the
		// Legendre check passed and p is prime
		i := 0
		tt := new(big.Int).Set(t)
		for tt.Cmp(bigOne) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
			if i == m {
				return nil, fmt.Errorf("%w: %s is not a quadratic residue", ErrNoSquareRoot, a.String())
			}
		}
		b := Pow2k(c, uint(m-i-1), p)
		m = i
		c = Mod(new(big.Int).Mul(b, b), p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
	return r, nil
}

// verifyRoot checks root^2 = a mod p.
func verifyRoot(root, a, p *big.Int) error {
	check := new(big.Int).Mul(root, root)
	if check.Mod(check, p).Cmp(a) != 0 {
		return fmt.Errorf("%w: %s is not a quadratic residue", ErrNoSquareRoot, a.String())
	}
	return nil
}

// findNonResidue returns the smallest quadratic non-residue of p.
func findNonResidue(p *big.Int) (*big.Int, error) {
	pm1 := new(big.Int).Sub(p, bigOne)
	z := new(big.Int).Set(bigTwo)
	for z.Int64() <= nonResidueSearchBound {
		ls, err := Legendre(z, p)
		if err != nil {
			return nil, err
		}
		if ls.Cmp(pm1) == 0 {
			return z, nil
		}
		z.Add(z, bigOne)
	}
	return nil, fmt.Errorf("%w: no quadratic non-residue below %d, modulus is probably not prime", ErrInvalidParameter, nonResidueSearchBound)
}

// IsNegativeLE reports the sign convention used for little-endian
// encodings: the parity bit of the reduced value. This is a convention,
// not an ordering.
func IsNegativeLE(n, modulus *big.Int) bool {
	return Mod(n, modulus).Bit(0) == 1
}
