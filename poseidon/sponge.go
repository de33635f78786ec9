package poseidon

import (
	"errors"
	"fmt"
)

// ErrSpongeFinalized is returned when absorbing into a sponge that has
// started squeezing; Reset it first.
var ErrSpongeFinalized = errors.New("sponge is squeezing, Reset before absorbing")

// Sponge builds a hash out of the permutation: index zero of the state is
// the capacity slot, the remaining width-1 slots are the rate. A Sponge is
// stateful and not safe for concurrent use; the permutation behind it is.
type Sponge[T any] struct {
	p         *Permutation[T]
	state     []T
	pos       int
	squeezing bool
}

// NewSponge returns an empty sponge over p. The permutation width must
// leave at least one rate slot next to the capacity slot.
func NewSponge[T any](p *Permutation[T]) (*Sponge[T], error) {
	if p.Width() < 2 {
		return nil, fmt.Errorf("%w: sponge needs width of at least 2, got %d", ErrInvalidConfig, p.Width())
	}
	s := &Sponge[T]{p: p}
	s.Reset()
	return s, nil
}

// Reset returns the sponge to its empty state.
func (s *Sponge[T]) Reset() {
	s.state = make([]T, s.p.Width())
	for i := range s.state {
		s.state[i] = s.p.f.Zero()
	}
	s.pos = 1
	s.squeezing = false
}

// Absorb adds xs into successive rate slots, permuting whenever the rate
// is full.
func (s *Sponge[T]) Absorb(xs ...T) error {
	if s.squeezing {
		return ErrSpongeFinalized
	}
	for _, x := range xs {
		if s.pos == s.p.Width() {
			if err := s.permute(); err != nil {
				return err
			}
		}
		s.state[s.pos] = s.p.f.Add(s.state[s.pos], x)
		s.pos++
	}
	return nil
}

// Squeeze returns the next digest element, permuting on the first call
// after absorbing and whenever the rate is exhausted.
func (s *Sponge[T]) Squeeze() (T, error) {
	var zero T
	if !s.squeezing || s.pos == s.p.Width() {
		if err := s.permute(); err != nil {
			return zero, err
		}
		s.squeezing = true
	}
	out := s.state[s.pos]
	s.pos++
	return out, nil
}

func (s *Sponge[T]) permute() error {
	next, err := s.p.Permute(s.state)
	if err != nil {
		return err
	}
	s.state = next
	s.pos = 1
	return nil
}

// Hash absorbs xs into a fresh sponge over p and squeezes a single
// digest element.
func Hash[T any](p *Permutation[T], xs ...T) (T, error) {
	var zero T
	s, err := NewSponge(p)
	if err != nil {
		return zero, err
	}
	if err := s.Absorb(xs...); err != nil {
		return zero, err
	}
	return s.Squeeze()
}

// Compress maps two elements to one for Merkle-style composition, feeding
// the right input forward over the permuted state. The permutation width
// must be 2 or 3.
func (p *Permutation[T]) Compress(l, r T) (T, error) {
	var zero T
	f := p.f
	var state []T
	switch p.width {
	case 2:
		state = []T{l, r}
	case 3:
		state = []T{f.Zero(), l, r}
	default:
		return zero, fmt.Errorf("%w: compression needs width 2 or 3, got %d", ErrInvalidConfig, p.width)
	}
	out, err := p.Permute(state)
	if err != nil {
		return zero, err
	}
	return f.Add(out[p.width-1], f.Reduce(r)), nil
}
