package field

import (
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// small odd primes grouped by the residue class of the modulus, so every
// square-root specialization gets exercised.
var (
	primes3Mod4  = []int64{7, 11, 19, 23}
	primes5Mod8  = []int64{13, 29, 37, 53}
	primes9Mod16 = []int64{41, 73, 89, 137}
	primes1Mod16 = []int64{17, 97, 113, 193}
)

func allSmallPrimes() []int64 {
	var out []int64
	out = append(out, primes3Mod4...)
	out = append(out, primes5Mod8...)
	out = append(out, primes9Mod16...)
	out = append(out, primes1Mod16...)
	return out
}

func TestMod(t *testing.T) {
	assert := require.New(t)

	m := big.NewInt(7)
	assert.Equal(int64(2), Mod(big.NewInt(-5), m).Int64())
	assert.Equal(int64(0), Mod(big.NewInt(-7), m).Int64())
	assert.Equal(int64(6), Mod(big.NewInt(-1), m).Int64())
	assert.Equal(int64(3), Mod(big.NewInt(10), m).Int64())
	assert.Equal(int64(0), Mod(big.NewInt(0), m).Int64())

	// the argument must not be modified
	a := big.NewInt(-5)
	_ = Mod(a, m)
	assert.Equal(int64(-5), a.Int64())
}

func TestExp(t *testing.T) {
	assert := require.New(t)

	_, err := Exp(big.NewInt(2), big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(err, ErrInvalidParameter)
	_, err = Exp(big.NewInt(2), big.NewInt(3), big.NewInt(-5))
	assert.ErrorIs(err, ErrInvalidParameter)
	_, err = Exp(big.NewInt(2), big.NewInt(-1), big.NewInt(7))
	assert.ErrorIs(err, ErrInvalidParameter)

	// modulus one collapses everything to zero
	r, err := Exp(big.NewInt(5), big.NewInt(3), big.NewInt(1))
	assert.NoError(err)
	assert.Equal(int64(0), r.Int64())

	// zero exponent
	r, err = Exp(big.NewInt(5), big.NewInt(0), big.NewInt(7))
	assert.NoError(err)
	assert.Equal(int64(1), r.Int64())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Exp matches big.Int.Exp on odd moduli", prop.ForAll(
		func(base, exponent, m uint64) bool {
			modulus := new(big.Int).SetUint64(m | 1)
			b := new(big.Int).SetUint64(base)
			e := new(big.Int).SetUint64(exponent % 10000)
			got, err := Exp(b, e, modulus)
			if err != nil {
				return false
			}
			expected := new(big.Int).Exp(b, e, modulus)
			return got.Cmp(expected) == 0
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64Range(3, 1<<40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPow2k(t *testing.T) {
	assert := require.New(t)

	p := big.NewInt(97)
	for _, x := range []int64{0, 1, 2, 5, 40, 96} {
		for k := uint(0); k < 8; k++ {
			e := new(big.Int).Lsh(bigOne, k)
			expected, err := Exp(big.NewInt(x), e, p)
			assert.NoError(err)
			assert.Zero(expected.Cmp(Pow2k(big.NewInt(x), k, p)), "x=%d k=%d", x, k)
		}
	}
}

func TestInvert(t *testing.T) {
	assert := require.New(t)

	_, err := Invert(big.NewInt(0), big.NewInt(7))
	assert.ErrorIs(err, ErrInvalidParameter)
	_, err = Invert(nil, big.NewInt(7))
	assert.ErrorIs(err, ErrInvalidParameter)
	_, err = Invert(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(err, ErrInvalidParameter)

	// shared factor
	_, err = Invert(big.NewInt(6), big.NewInt(9))
	assert.ErrorIs(err, ErrNoInverse)

	// composite moduli are fine as long as the operand is coprime
	inv, err := Invert(big.NewInt(5), big.NewInt(9))
	assert.NoError(err)
	assert.Equal(int64(2), inv.Int64())

	// negative operands are normalized first
	inv, err = Invert(big.NewInt(-2), big.NewInt(7))
	assert.NoError(err)
	assert.Equal(int64(1), new(big.Int).Mod(new(big.Int).Mul(inv, big.NewInt(-2)), big.NewInt(7)).Int64())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	rMod := fr.Modulus()
	properties.Property("a * Invert(a) = 1 mod r", prop.ForAll(
		func(a fr.Element) bool {
			if a.IsZero() {
				return true
			}
			var v big.Int
			a.BigInt(&v)
			inv, err := Invert(&v, rMod)
			if err != nil {
				return false
			}
			check := new(big.Int).Mul(inv, &v)
			return check.Mod(check, rMod).Cmp(bigOne) == 0
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLegendre(t *testing.T) {
	assert := require.New(t)

	_, err := Legendre(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(err, ErrInvalidParameter)

	p := big.NewInt(11)
	residues := map[int64]bool{1: true, 3: true, 4: true, 5: true, 9: true}
	for a := int64(0); a < 11; a++ {
		ls, err := Legendre(big.NewInt(a), p)
		assert.NoError(err)
		switch {
		case a == 0:
			assert.Equal(int64(0), ls.Int64())
		case residues[a]:
			assert.Equal(int64(1), ls.Int64(), "a=%d", a)
		default:
			assert.Equal(int64(10), ls.Int64(), "a=%d", a)
		}
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	rMod := fr.Modulus()
	rModMinusOne := new(big.Int).Sub(rMod, bigOne)
	properties.Property("Legendre matches the reference implementation", prop.ForAll(
		func(a fr.Element) bool {
			var v big.Int
			a.BigInt(&v)
			ls, err := Legendre(&v, rMod)
			if err != nil {
				return false
			}
			switch a.Legendre() {
			case 1:
				return ls.Cmp(bigOne) == 0
			case -1:
				return ls.Cmp(rModMinusOne) == 0
			default:
				return ls.Sign() == 0
			}
		},
		genFr(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSqrtExhaustiveSmallPrimes(t *testing.T) {
	assert := require.New(t)

	for _, q := range allSmallPrimes() {
		p := big.NewInt(q)
		pm1 := new(big.Int).Sub(p, bigOne)
		for a := int64(0); a < q; a++ {
			v := big.NewInt(a)
			ls, err := Legendre(v, p)
			assert.NoError(err)
			root, err := Sqrt(v, p)
			if ls.Cmp(pm1) == 0 {
				assert.ErrorIs(err, ErrNoSquareRoot, "p=%d a=%d", q, a)
				continue
			}
			assert.NoError(err, "p=%d a=%d", q, a)
			check := new(big.Int).Mul(root, root)
			check.Mod(check, p)
			assert.Zero(check.Cmp(v), "p=%d a=%d", q, a)
		}
	}
}

func TestSqrtLargePrimes(t *testing.T) {
	// 2^255 - 19 is 5 mod 8, the fr modulus is 1 mod 16
	p25519 := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), big.NewInt(19))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	rMod := fr.Modulus()
	properties.Property("Sqrt inverts squaring mod r", prop.ForAll(
		func(a fr.Element) bool {
			var sq fr.Element
			sq.Square(&a)
			var v big.Int
			sq.BigInt(&v)
			root, err := Sqrt(&v, rMod)
			if err != nil {
				return false
			}
			check := new(big.Int).Mul(root, root)
			return check.Mod(check, rMod).Cmp(&v) == 0
		},
		genFr(),
	))

	properties.Property("Sqrt inverts squaring mod 2^255-19", prop.ForAll(
		func(x uint64) bool {
			v := new(big.Int).SetUint64(x)
			v.Mul(v, v)
			v.Mod(v, p25519)
			root, err := Sqrt(v, p25519)
			if err != nil {
				return false
			}
			check := new(big.Int).Mul(root, root)
			return check.Mod(check, p25519).Cmp(v) == 0
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSqrtRejectsNonResidue(t *testing.T) {
	assert := require.New(t)

	rMod := fr.Modulus()
	var a fr.Element
	for {
		a.SetRandom()
		if a.Legendre() == -1 {
			break
		}
	}
	var v big.Int
	a.BigInt(&v)
	_, err := Sqrt(&v, rMod)
	assert.ErrorIs(err, ErrNoSquareRoot)
}

func TestFindNonResidue(t *testing.T) {
	assert := require.New(t)

	for _, q := range allSmallPrimes() {
		p := big.NewInt(q)
		z, err := findNonResidue(p)
		assert.NoError(err)
		ls, err := Legendre(z, p)
		assert.NoError(err)
		assert.Zero(ls.Cmp(new(big.Int).Sub(p, bigOne)), "p=%d", q)
	}
}

func TestIsNegativeLE(t *testing.T) {
	assert := require.New(t)

	p := big.NewInt(19)
	assert.False(IsNegativeLE(big.NewInt(0), p))
	assert.True(IsNegativeLE(big.NewInt(1), p))
	assert.False(IsNegativeLE(big.NewInt(2), p))
	// -1 = 18 mod 19, even
	assert.False(IsNegativeLE(big.NewInt(-1), p))
	// 20 = 1 mod 19, odd
	assert.True(IsNegativeLE(big.NewInt(20), p))
}

func TestErrorsAreDistinct(t *testing.T) {
	assert := require.New(t)

	sentinels := []error{
		ErrInvalidParameter,
		ErrNoInverse,
		ErrNoSquareRoot,
		ErrInvalidField,
		ErrUnsupportedSize,
		ErrLengthMismatch,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(errors.Is(a, b))
		}
	}
}

// genFr generates uniformly random bn254 scalar field elements.
func genFr() gopter.Gen {
	return func(genParams *gopter.GenParameters) *gopter.GenResult {
		var a fr.Element
		a.SetRandom()
		return gopter.NewGenResult(a, gopter.NoShrinker)
	}
}
