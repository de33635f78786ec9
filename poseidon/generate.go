package poseidon

import (
	"fmt"
	"math/big"

	"github.com/zkfield/bigfield/field"
	"github.com/zkfield/bigfield/logger"
)

// GenerateConfig derives a complete permutation configuration for the given
// field. Round constants are drawn from a SHAKE-128 stream seeded with seed,
// and the MDS matrix is a Cauchy matrix over the points x_i = i and
// y_j = width + j, so the field order must exceed 3*width-2 for the
// denominators to stay invertible.
//
// The returned configuration is validated by instantiating it once.
func GenerateConfig(f field.Field[*big.Int], width, fullRounds, partialRounds, sboxPower int, seed []byte) (*Config[*big.Int], error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: Width must be positive, got %d", ErrInvalidConfig, width)
	}
	if fullRounds <= 0 || partialRounds < 0 {
		return nil, fmt.Errorf("%w: need FullRounds > 0 and PartialRounds >= 0, got %d and %d", ErrInvalidConfig, fullRounds, partialRounds)
	}

	sampler, err := field.NewSampler(f, seed)
	if err != nil {
		return nil, err
	}
	rounds := fullRounds + partialRounds
	flat, err := sampler.Draw(rounds * width)
	if err != nil {
		return nil, err
	}
	roundConstants, err := SplitConstants(flat, width)
	if err != nil {
		return nil, err
	}

	mds, err := cauchyMatrix(f, width)
	if err != nil {
		return nil, err
	}

	cfg := &Config[*big.Int]{
		Field:          f,
		Width:          width,
		FullRounds:     fullRounds,
		PartialRounds:  partialRounds,
		SboxPower:      sboxPower,
		Mds:            mds,
		RoundConstants: roundConstants,
	}
	if _, err := New(*cfg); err != nil {
		return nil, err
	}

	log := logger.Logger()
	log.Debug().Int("t", width).Int("rF", fullRounds).Int("rP", partialRounds).Msg("generated poseidon configuration")
	return cfg, nil
}

// cauchyMatrix builds the width x width matrix m[i][j] = 1/(x_i + y_j) with
// all denominators pairwise distinct and nonzero. The inverses are computed
// in a single batch.
func cauchyMatrix(f field.Field[*big.Int], width int) ([][]*big.Int, error) {
	dens := make([]*big.Int, width*width)
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			d := f.Create(big.NewInt(int64(i + width + j)))
			if f.IsZero(d) {
				return nil, fmt.Errorf("%w: field too small for a width %d Cauchy matrix", ErrInvalidConfig, width)
			}
			dens[i*width+j] = d
		}
	}
	inv, err := field.BatchInvert(f, dens)
	if err != nil {
		return nil, fmt.Errorf("%w: width %d Cauchy matrix: %s", ErrInvalidConfig, width, err)
	}
	return SplitConstants(inv, width)
}
