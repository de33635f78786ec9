package field

import (
	"fmt"
	"math/big"

	"github.com/zkfield/bigfield/internal/utils"
)

// maxOrderBytes bounds the serialized size of a field order.
const maxOrderBytes = 2048

// SqrtFunc computes a modular square root of a canonical element.
type SqrtFunc func(a *big.Int) (*big.Int, error)

type fpConfig struct {
	bitLen int
	le     bool
	sqrt   SqrtFunc
}

// FpOption configures the field returned by NewFp.
type FpOption func(*fpConfig) error

// WithBitLen overrides the natural bit length of the order, widening the
// serialized representation of elements.
func WithBitLen(bits int) FpOption {
	return func(cfg *fpConfig) error {
		if bits <= 0 {
			return fmt.Errorf("%w: bit length must be positive, got %d", ErrInvalidParameter, bits)
		}
		cfg.bitLen = bits
		return nil
	}
}

// WithLittleEndian makes ToBytes and FromBytes use little-endian byte
// order instead of the default big-endian.
func WithLittleEndian() FpOption {
	return func(cfg *fpConfig) error {
		cfg.le = true
		return nil
	}
}

// WithSqrt replaces the default square-root dispatch with a caller-supplied
// routine, resolved once at construction. Some parameter sets require a
// non-default root convention.
func WithSqrt(sqrt SqrtFunc) FpOption {
	return func(cfg *fpConfig) error {
		if sqrt == nil {
			return fmt.Errorf("%w: sqrt override must not be nil", ErrInvalidParameter)
		}
		cfg.sqrt = sqrt
		return nil
	}
}

// Fp is an immutable prime field over unbounded-precision integers. The
// zero value is not usable; construct with NewFp. Elements are *big.Int
// values treated as immutable: methods never modify their arguments and
// always return fresh integers, so one Fp can serve any number of
// goroutines.
//
// Primality of the order is the caller's responsibility and is not
// checked.
type Fp struct {
	order       *big.Int
	bitLen      int
	byteLen     int
	mask        *big.Int
	le          bool
	sqrt        SqrtFunc
	legendreExp *big.Int // (order-1)/2
}

var (
	_ Field[*big.Int]         = (*Fp)(nil)
	_ OddField[*big.Int]      = (*Fp)(nil)
	_ LegendreField[*big.Int] = (*Fp)(nil)
	_ Selector[*big.Int]      = (*Fp)(nil)
	_ ByteCoder[*big.Int]     = (*Fp)(nil)
	_ BatchInverter[*big.Int] = (*Fp)(nil)
)

// NewFp builds the prime field of the given order. It fails with
// ErrInvalidParameter when the order is not positive and with
// ErrUnsupportedSize when the serialized order exceeds 2048 bytes.
func NewFp(order *big.Int, opts ...FpOption) (*Fp, error) {
	if order == nil || order.Sign() <= 0 {
		return nil, fmt.Errorf("%w: order must be a positive integer", ErrInvalidParameter)
	}
	var cfg fpConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.bitLen > 0 && cfg.bitLen < order.BitLen() {
		return nil, fmt.Errorf("%w: bit length %d cannot hold the order of %d bits", ErrInvalidParameter, cfg.bitLen, order.BitLen())
	}
	bitLen, byteLen := utils.NLength(order, cfg.bitLen)
	if byteLen > maxOrderBytes {
		return nil, fmt.Errorf("%w: order of %d bytes exceeds %d", ErrUnsupportedSize, byteLen, maxOrderBytes)
	}

	f := &Fp{
		order:   new(big.Int).Set(order),
		bitLen:  bitLen,
		byteLen: byteLen,
		mask:    utils.BitMask(bitLen),
		le:      cfg.le,
		sqrt:    cfg.sqrt,
	}
	f.legendreExp = new(big.Int).Rsh(new(big.Int).Sub(f.order, bigOne), 1)
	if f.sqrt == nil {
		o := f.order
		f.sqrt = func(a *big.Int) (*big.Int, error) { return Sqrt(a, o) }
	}
	return f, nil
}

// Order returns a copy of the field order.
func (f *Fp) Order() *big.Int { return new(big.Int).Set(f.order) }

// BitLen returns the serialized size of an element in bits.
func (f *Fp) BitLen() int { return f.bitLen }

// ByteLen returns the serialized size of an element in bytes.
func (f *Fp) ByteLen() int { return f.byteLen }

// Mask returns a copy of the all-ones mask covering BitLen bits.
func (f *Fp) Mask() *big.Int { return new(big.Int).Set(f.mask) }

// LittleEndian reports whether ToBytes and FromBytes use little-endian
// byte order.
func (f *Fp) LittleEndian() bool { return f.le }

func (f *Fp) Zero() *big.Int { return new(big.Int) }

func (f *Fp) One() *big.Int { return big.NewInt(1) }

// Create maps an arbitrary integer, including a negative one, into the
// canonical range.
func (f *Fp) Create(v *big.Int) *big.Int { return Mod(v, f.order) }

// Reduce is Create for values that are already elements; it exists so
// generic code can normalize the result of N operations.
func (f *Fp) Reduce(a *big.Int) *big.Int { return Mod(a, f.order) }

// IsValid reports whether a is in the canonical range [0, order).
func (f *Fp) IsValid(a *big.Int) bool {
	return a != nil && a.Sign() >= 0 && a.Cmp(f.order) < 0
}

func (f *Fp) IsZero(a *big.Int) bool { return a.Sign() == 0 }

func (f *Fp) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

// IsOdd reports the parity of a.
func (f *Fp) IsOdd(a *big.Int) bool { return a.Bit(0) == 1 }

func (f *Fp) Neg(a *big.Int) *big.Int { return Mod(new(big.Int).Neg(a), f.order) }

func (f *Fp) Add(a, b *big.Int) *big.Int { return Mod(new(big.Int).Add(a, b), f.order) }

func (f *Fp) Sub(a, b *big.Int) *big.Int { return Mod(new(big.Int).Sub(a, b), f.order) }

func (f *Fp) Mul(a, b *big.Int) *big.Int { return Mod(new(big.Int).Mul(a, b), f.order) }

func (f *Fp) Square(a *big.Int) *big.Int { return Mod(new(big.Int).Mul(a, a), f.order) }

// AddN and the other N variants skip the reduction step. Results grow
// without bound if chained; reduce with Reduce before treating them as
// elements again.
func (f *Fp) AddN(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

func (f *Fp) SubN(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

func (f *Fp) MulN(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

func (f *Fp) SquareN(a *big.Int) *big.Int { return new(big.Int).Mul(a, a) }

// Pow raises a to the power k. It fails with ErrInvalidParameter for a
// negative k. Not constant time.
func (f *Fp) Pow(a *big.Int, k *big.Int) (*big.Int, error) {
	return Pow[*big.Int](f, a, k)
}

// Invert returns the modular inverse of a. It fails with
// ErrInvalidParameter when a is zero and with ErrNoInverse when a shares a
// factor with the order.
func (f *Fp) Invert(a *big.Int) (*big.Int, error) { return Invert(a, f.order) }

// Div returns a/b, inverting b against the order.
func (f *Fp) Div(a, b *big.Int) (*big.Int, error) {
	inv, err := Invert(b, f.order)
	if err != nil {
		return nil, err
	}
	return f.Mul(a, inv), nil
}

// Sqrt returns a verified square root of a using the routine selected at
// construction: the dispatching primitive by default, or the WithSqrt
// override.
func (f *Fp) Sqrt(a *big.Int) (*big.Int, error) { return f.sqrt(a) }

// Legendre returns the Legendre symbol of a as an element: one for a
// quadratic residue, order minus one for a non-residue, zero for zero.
func (f *Fp) Legendre(a *big.Int) *big.Int {
	ls, err := Exp(a, f.legendreExp, f.order)
	if err != nil {
		// the exponent and order are fixed at construction
		// this would never happen
		panic(err)
	}
	return ls
}

// CMov returns b when c is true and a otherwise. Selection is by branch;
// the unbounded-precision representation cannot hide the operand sizes, so
// Fp makes no timing claim here. See the package documentation.
func (f *Fp) CMov(a, b *big.Int, c bool) *big.Int {
	if c {
		return new(big.Int).Set(b)
	}
	return new(big.Int).Set(a)
}

// ToBytes serializes a canonical element to exactly ByteLen bytes in the
// configured endianness.
func (f *Fp) ToBytes(a *big.Int) ([]byte, error) {
	if !f.IsValid(a) {
		return nil, fmt.Errorf("%w: element is not canonical", ErrInvalidParameter)
	}
	if f.le {
		return utils.NumberToBytesLE(a, f.byteLen), nil
	}
	return utils.NumberToBytesBE(a, f.byteLen), nil
}

// FromBytes parses exactly ByteLen bytes in the configured endianness. It
// fails with ErrLengthMismatch on any other length and with
// ErrInvalidParameter when the decoded value is not canonical.
func (f *Fp) FromBytes(data []byte) (*big.Int, error) {
	if len(data) != f.byteLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrLengthMismatch, f.byteLen, len(data))
	}
	var n *big.Int
	if f.le {
		n = utils.BytesToNumberLE(data)
	} else {
		n = utils.BytesToNumberBE(data)
	}
	if n.Cmp(f.order) >= 0 {
		return nil, fmt.Errorf("%w: value is not canonical", ErrInvalidParameter)
	}
	return n, nil
}

// InvertBatch inverts xs elementwise with Montgomery's trick; zeros map to
// zeros.
func (f *Fp) InvertBatch(xs []*big.Int) ([]*big.Int, error) {
	return BatchInvert[*big.Int](f, xs)
}
