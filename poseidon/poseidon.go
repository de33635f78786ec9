// Package poseidon implements the Poseidon permutation over any type
// satisfying the generic field contract.
//
// The permutation is parameterized entirely by an externally supplied
// configuration: state width, full and partial round counts, S-box power,
// MDS matrix and round constants. The package validates and freezes the
// configuration, then applies the published round structure; it never
// generates or embeds a constant set of its own.
package poseidon

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/zkfield/bigfield/field"
	"github.com/zkfield/bigfield/logger"
)

var (
	// ErrInvalidConfig is returned when a configuration fails a structural
	// or arithmetic check; the message names the offending option.
	ErrInvalidConfig = errors.New("invalid poseidon configuration")

	// ErrInvalidSizebuffer is returned when an input state does not match
	// the configured width.
	ErrInvalidSizebuffer = errors.New("the size of the input should match the width of the permutation")
)

// Config collects the raw material of a permutation: the field, the state
// width, the round counts, the S-box power, a Width x Width MDS matrix and
// one row of round constants per round. Matrix and constant entries are
// bare integers; New normalizes them into the field. A Config is treated
// as read-only once handed to New.
type Config[T any] struct {
	Field          field.Field[T]
	Width          int
	FullRounds     int
	PartialRounds  int
	SboxPower      int
	Mds            [][]*big.Int
	RoundConstants [][]*big.Int

	// ReversePartialPowIdx applies the partial-round S-box to the last
	// state element instead of the first, matching certain external
	// constant sets.
	ReversePartialPowIdx bool
}

// Permutation applies the Poseidon round function over a validated,
// frozen configuration. It holds no mutable state across invocations and
// is safe for concurrent use.
type Permutation[T any] struct {
	f              field.Field[T]
	width          int
	fullRounds     int
	partialRounds  int
	reversePowIdx  bool
	sbox           func(T) T
	mds            [][]T
	roundConstants [][]T
}

// New validates cfg and builds the permutation. It fails with
// ErrInvalidConfig naming the offending option: the width must be
// positive, the full-round count positive and even, the partial-round
// count non-negative, the S-box power one of 3, 5 or 7, the MDS matrix
// square of size Width and the round constants exactly one full row per
// round.
func New[T any](cfg Config[T]) (*Permutation[T], error) {
	if cfg.Field == nil {
		return nil, fmt.Errorf("%w: Field must not be nil", ErrInvalidConfig)
	}
	if err := field.ValidateField(cfg.Field); err != nil {
		return nil, fmt.Errorf("%w: Field: %s", ErrInvalidConfig, err)
	}
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("%w: Width must be positive, got %d", ErrInvalidConfig, cfg.Width)
	}
	if cfg.FullRounds <= 0 || cfg.FullRounds%2 != 0 {
		return nil, fmt.Errorf("%w: FullRounds must be positive and even, got %d", ErrInvalidConfig, cfg.FullRounds)
	}
	if cfg.PartialRounds < 0 {
		return nil, fmt.Errorf("%w: PartialRounds must not be negative, got %d", ErrInvalidConfig, cfg.PartialRounds)
	}
	switch cfg.SboxPower {
	case 3, 5, 7:
	default:
		return nil, fmt.Errorf("%w: SboxPower must be 3, 5 or 7, got %d", ErrInvalidConfig, cfg.SboxPower)
	}

	f := cfg.Field
	mds, err := normalizeMatrix(f, cfg.Mds, cfg.Width, cfg.Width, "Mds")
	if err != nil {
		return nil, err
	}
	rounds := cfg.FullRounds + cfg.PartialRounds
	rc, err := normalizeMatrix(f, cfg.RoundConstants, rounds, cfg.Width, "RoundConstants")
	if err != nil {
		return nil, err
	}

	p := &Permutation[T]{
		f:              f,
		width:          cfg.Width,
		fullRounds:     cfg.FullRounds,
		partialRounds:  cfg.PartialRounds,
		reversePowIdx:  cfg.ReversePartialPowIdx,
		sbox:           selectSbox(f, cfg.SboxPower),
		mds:            mds,
		roundConstants: rc,
	}

	log := logger.Logger()
	log.Debug().Int("t", cfg.Width).Int("rF", cfg.FullRounds).Int("rP", cfg.PartialRounds).Int("sbox", cfg.SboxPower).Msg("poseidon permutation ready")
	return p, nil
}

// normalizeMatrix checks the shape of rows and maps every entry into the
// field.
func normalizeMatrix[T any](f field.Field[T], rows [][]*big.Int, nbRows, nbCols int, name string) ([][]T, error) {
	if len(rows) != nbRows {
		return nil, fmt.Errorf("%w: %s must have %d rows, got %d", ErrInvalidConfig, name, nbRows, len(rows))
	}
	out := make([][]T, nbRows)
	for i, row := range rows {
		if len(row) != nbCols {
			return nil, fmt.Errorf("%w: %s row %d must have %d entries, got %d", ErrInvalidConfig, name, i, nbCols, len(row))
		}
		out[i] = make([]T, nbCols)
		for j, e := range row {
			if e == nil {
				return nil, fmt.Errorf("%w: %s[%d][%d] must not be nil", ErrInvalidConfig, name, i, j)
			}
			out[i][j] = f.Create(e)
		}
	}
	return out, nil
}

// selectSbox unrolls the common powers 3 and 5 into multiplication chains
// and falls back to generic exponentiation otherwise.
func selectSbox[T any](f field.Field[T], power int) func(T) T {
	switch power {
	case 3:
		return func(x T) T { return f.Mul(f.Square(x), x) }
	case 5:
		return func(x T) T { return f.Mul(f.Square(f.Square(x)), x) }
	default:
		k := big.NewInt(int64(power))
		return func(x T) T {
			r, err := field.Pow(f, x, k)
			if err != nil {
				// the power is validated positive
				// this would never happen
				panic(err)
			}
			return r
		}
	}
}

// Width returns the state width t.
func (p *Permutation[T]) Width() int { return p.width }

// Rounds returns the total round count.
func (p *Permutation[T]) Rounds() int { return p.fullRounds + p.partialRounds }

// RoundConstants returns a copy of the normalized round-constant matrix,
// one row per round, for external verification. Entries are rebuilt
// through the field, so mutating them cannot reach the permutation.
func (p *Permutation[T]) RoundConstants() [][]T {
	out := make([][]T, len(p.roundConstants))
	for i, row := range p.roundConstants {
		out[i] = make([]T, len(row))
		for j := range row {
			out[i][j] = p.f.Reduce(row[j])
		}
	}
	return out
}

// Permute applies the permutation to a state of exactly Width elements:
// half the full rounds, the partial rounds, then the other half. Inputs
// are coerced into the canonical range before the first round. The input
// slice is not modified.
func (p *Permutation[T]) Permute(state []T) ([]T, error) {
	if len(state) != p.width {
		return nil, ErrInvalidSizebuffer
	}
	s := make([]T, p.width)
	for i := range state {
		s[i] = p.f.Reduce(state[i])
	}

	r := 0
	for i := 0; i < p.fullRounds/2; i++ {
		s = p.applyRound(s, r, true)
		r++
	}
	for i := 0; i < p.partialRounds; i++ {
		s = p.applyRound(s, r, false)
		r++
	}
	for i := 0; i < p.fullRounds/2; i++ {
		s = p.applyRound(s, r, true)
		r++
	}
	if r != p.fullRounds+p.partialRounds {
		// the three phases add up by construction
		// this would never happen
		panic("poseidon: round counter mismatch")
	}
	return s, nil
}

// applyRound adds the round constants, applies the S-box to the whole
// state (full round) or to one designated element (partial round), then
// mixes through the MDS matrix. The inner product accumulates with the
// non-normalizing operations and reduces once per output element.
func (p *Permutation[T]) applyRound(state []T, r int, full bool) []T {
	f := p.f
	rc := p.roundConstants[r]
	for i := range state {
		state[i] = f.Add(state[i], rc[i])
	}

	if full {
		for i := range state {
			state[i] = p.sbox(state[i])
		}
	} else {
		idx := 0
		if p.reversePowIdx {
			idx = p.width - 1
		}
		state[idx] = p.sbox(state[idx])
	}

	next := make([]T, p.width)
	for i := range next {
		acc := f.Zero()
		for j := range state {
			acc = f.AddN(acc, f.MulN(p.mds[i][j], state[j]))
		}
		next[i] = f.Reduce(acc)
	}
	return next
}

// SplitConstants reshapes a flat sequence of constants into rows of width
// t, sharing the backing array. It fails with ErrInvalidParameter when the
// length is not a multiple of t.
func SplitConstants(flat []*big.Int, t int) ([][]*big.Int, error) {
	if t <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", field.ErrInvalidParameter, t)
	}
	if len(flat)%t != 0 {
		return nil, fmt.Errorf("%w: %d constants do not split into rows of %d", field.ErrInvalidParameter, len(flat), t)
	}
	out := make([][]*big.Int, len(flat)/t)
	for i := range out {
		out[i] = flat[i*t : (i+1)*t]
	}
	return out, nil
}
