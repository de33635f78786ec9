package field

import (
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Sampler draws field elements deterministically from an extendable-output
// function seeded with a domain-separation label. Two samplers over the
// same field and seed produce the same stream, which makes it suitable for
// deriving reproducible constant sets. A Sampler is stateful and not safe
// for concurrent use; the fields it draws from are.
type Sampler[T any] struct {
	f   Field[T]
	xof sha3.ShakeHash
	buf []byte
}

// NewSampler returns a sampler over f seeded with seed.
func NewSampler[T any](f Field[T], seed []byte) (*Sampler[T], error) {
	if err := ValidateField(f); err != nil {
		return nil, err
	}
	bufLen, err := MinHashLength(f.Order())
	if err != nil {
		return nil, err
	}
	if bufLen < minMapInput {
		bufLen = minMapInput
	}

	xof := sha3.NewShake128()
	if _, err := xof.Write(seed); err != nil {
		return nil, err
	}
	return &Sampler[T]{f: f, xof: xof, buf: make([]byte, bufLen)}, nil
}

// Next returns the next element of the stream. Elements are unbiased up to
// the guarantee of MapHashToField and never zero.
func (s *Sampler[T]) Next() (T, error) {
	var zero T
	if _, err := io.ReadFull(s.xof, s.buf); err != nil {
		return zero, err
	}
	enc, err := MapHashToField(s.buf, s.f.Order(), false)
	if err != nil {
		return zero, err
	}
	v := new(big.Int).SetBytes(enc)
	return s.f.Create(v), nil
}

// Draw returns the next n elements of the stream.
func (s *Sampler[T]) Draw(n int) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		v, err := s.Next()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
