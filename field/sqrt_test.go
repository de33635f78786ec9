package field

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestNewSqrterVariantSelection(t *testing.T) {
	assert := require.New(t)

	for _, tc := range []struct {
		order   int64
		variant string
	}{
		{7, "3mod4"},
		{11, "3mod4"},
		{13, "5mod8"},
		{29, "5mod8"},
		{41, "9mod16"},
		{73, "9mod16"},
		{17, "tonelli-shanks"},
		{97, "tonelli-shanks"},
	} {
		f, err := NewFp(big.NewInt(tc.order))
		assert.NoError(err)
		s, err := NewSqrter[*big.Int](f)
		assert.NoError(err, "order=%d", tc.order)
		assert.Equal(tc.variant, s.Variant(), "order=%d", tc.order)
	}

	// even orders have no odd-prime specialization
	f, err := NewFp(big.NewInt(8))
	assert.NoError(err)
	_, err = NewSqrter[*big.Int](f)
	assert.ErrorIs(err, ErrInvalidParameter)
}

func TestNewSqrterRequiresSelector(t *testing.T) {
	assert := require.New(t)

	// every class but 3 mod 4 selects at runtime and needs CMov
	for _, order := range []int64{13, 41, 17} {
		f, err := NewFp(big.NewInt(order))
		assert.NoError(err)
		_, err = NewSqrter[*big.Int](bareField{f})
		assert.ErrorIs(err, ErrInvalidField, "order=%d", order)
	}

	// 3 mod 4 works without it
	f, err := NewFp(big.NewInt(11))
	assert.NoError(err)
	s, err := NewSqrter[*big.Int](bareField{f})
	assert.NoError(err)
	root := s.Sqrt(big.NewInt(9))
	assert.Zero(f.Square(root).Cmp(big.NewInt(9)))
}

func TestSqrterExhaustiveSmallPrimes(t *testing.T) {
	assert := require.New(t)

	for _, q := range allSmallPrimes() {
		f, err := NewFp(big.NewInt(q))
		assert.NoError(err)
		s, err := NewSqrter[*big.Int](f)
		assert.NoError(err, "p=%d", q)

		for a := int64(0); a < q; a++ {
			x := big.NewInt(a)
			ls, err := Legendre(x, f.Order())
			assert.NoError(err)
			isSquare := ls.Sign() == 0 || ls.Cmp(bigOne) == 0
			assert.Equal(isSquare, s.IsSquare(x), "p=%d a=%d", q, a)

			root := s.Sqrt(x)
			if isSquare {
				assert.Zero(f.Square(root).Cmp(x), "p=%d a=%d variant=%s", q, a, s.Variant())
			} else {
				// unverified by contract: the result must simply be wrong
				assert.NotZero(f.Square(root).Cmp(x), "p=%d a=%d variant=%s", q, a, s.Variant())
			}
		}
	}
}

func TestSqrterLargeFields(t *testing.T) {
	assert := require.New(t)

	// the bn254 scalar field has 2-adicity 28, hitting the general routine
	frField := newFrField(t)
	frSqrter, err := NewSqrter[*big.Int](frField)
	assert.NoError(err)
	assert.Equal("tonelli-shanks", frSqrter.Variant())

	// 2^255 - 19 hits the 5 mod 8 shortcut
	p25519 := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), big.NewInt(19))
	curveField, err := NewFp(p25519)
	assert.NoError(err)
	curveSqrter, err := NewSqrter[*big.Int](curveField)
	assert.NoError(err)
	assert.Equal("5mod8", curveSqrter.Variant())

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("constant-time sqrt inverts squaring mod r", prop.ForAll(
		func(a fr.Element) bool {
			sq := frField.Square(frToBig(a))
			root := frSqrter.Sqrt(sq)
			return frField.Square(root).Cmp(sq) == 0
		},
		genFr(),
	))

	properties.Property("constant-time sqrt inverts squaring mod 2^255-19", prop.ForAll(
		func(x uint64) bool {
			sq := curveField.Square(new(big.Int).SetUint64(x))
			root := curveSqrter.Sqrt(sq)
			return curveField.Square(root).Cmp(sq) == 0
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSqrterAgreesWithVerifyingSqrt(t *testing.T) {
	assert := require.New(t)

	for _, q := range allSmallPrimes() {
		f, err := NewFp(big.NewInt(q))
		assert.NoError(err)
		s, err := NewSqrter[*big.Int](f)
		assert.NoError(err)

		for a := int64(1); a < q; a++ {
			x := big.NewInt(a)
			if !s.IsSquare(x) {
				continue
			}
			verified, err := Sqrt(x, f.Order())
			assert.NoError(err)
			unverified := s.Sqrt(x)
			sameRoot := unverified.Cmp(verified) == 0
			negRoot := unverified.Cmp(f.Neg(verified)) == 0
			assert.True(sameRoot || negRoot, "p=%d a=%d", q, a)
		}
	}
}
