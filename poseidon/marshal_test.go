package poseidon

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/zkfield/bigfield/field"
	"github.com/zkfield/bigfield/internal/utils/test_utils"
)

func TestConfigSerializationRoundTrip(t *testing.T) {
	assert := require.New(t)

	f, err := field.NewFp(fr.Modulus())
	assert.NoError(err)
	cfg, err := GenerateConfig(f, 3, 8, 57, 5, []byte("round trip"))
	assert.NoError(err)

	var recovered Config[*big.Int]
	test_utils.CopyThruSerialization(t, &recovered, cfg)

	// the field is rebuilt from the stored order, everything else must
	// survive unchanged
	diff := cmp.Diff(*cfg, recovered,
		cmpopts.IgnoreFields(Config[*big.Int]{}, "Field"),
		cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 }),
	)
	assert.Empty(diff)
	assert.Zero(f.Order().Cmp(recovered.Field.Order()))
	assert.Equal(f.BitLen(), recovered.Field.BitLen())

	// both configurations must drive the permutation to the same outputs
	p1, err := New(*cfg)
	assert.NoError(err)
	p2, err := New(recovered)
	assert.NoError(err)
	in := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	out1, err := p1.Permute(in)
	assert.NoError(err)
	out2, err := p2.Permute(in)
	assert.NoError(err)
	for i := range out1 {
		assert.Zero(out1[i].Cmp(out2[i]))
	}
}

func TestConfigSerializationNormalizes(t *testing.T) {
	assert := require.New(t)
	f := newField(t, m31)

	cfg, err := GenerateConfig(f, 2, 4, 3, 5, []byte("normalize"))
	assert.NoError(err)
	want := f.Reduce(cfg.RoundConstants[0][0])
	cfg.RoundConstants[0][0] = new(big.Int).Add(want, f.Order())

	var recovered Config[*big.Int]
	test_utils.CopyThruSerialization(t, &recovered, cfg)
	assert.Zero(want.Cmp(recovered.RoundConstants[0][0]))
}

func TestConfigSerializationLittleEndian(t *testing.T) {
	assert := require.New(t)

	f, err := field.NewFp(big.NewInt(m31), field.WithLittleEndian())
	assert.NoError(err)
	cfg, err := GenerateConfig(f, 2, 4, 3, 5, []byte("little endian"))
	assert.NoError(err)

	var recovered Config[*big.Int]
	test_utils.CopyThruSerialization(t, &recovered, cfg)

	le, ok := recovered.Field.(interface{ LittleEndian() bool })
	assert.True(ok)
	assert.True(le.LittleEndian())
}

func TestConfigWriteToNilField(t *testing.T) {
	var cfg Config[*big.Int]
	_, err := cfg.WriteTo(new(bytes.Buffer))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigReadFromWrongType(t *testing.T) {
	var cfg Config[uint64]
	_, err := cfg.ReadFrom(bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

// serializedFixture returns a decoded copy of a valid serialized
// configuration so tests can patch individual fields.
func serializedFixture(t *testing.T) configData {
	assert := require.New(t)
	f := newField(t, m31)
	cfg, err := GenerateConfig(f, 3, 4, 3, 5, []byte("fixture"))
	assert.NoError(err)

	var bb bytes.Buffer
	_, err = cfg.WriteTo(&bb)
	assert.NoError(err)

	var data configData
	assert.NoError(cbor.Unmarshal(bb.Bytes(), &data))
	return data
}

func readPatched(t *testing.T, data configData) error {
	raw, err := cbor.Marshal(&data)
	require.NoError(t, err)
	var cfg Config[*big.Int]
	_, err = cfg.ReadFrom(bytes.NewReader(raw))
	return err
}

func TestConfigReadFromVersionHeader(t *testing.T) {
	assert := require.New(t)

	var cfg Config[*big.Int]
	_, err := cfg.ReadFrom(bytes.NewReader([]byte("not cbor at all")))
	assert.Error(err)

	data := serializedFixture(t)
	data.Version = "not-a-version"
	assert.ErrorIs(readPatched(t, data), ErrInvalidConfig)

	// data from a newer release still loads, with a warning
	data = serializedFixture(t)
	data.Version = "99.9.9"
	assert.NoError(readPatched(t, data))
}

func TestConfigReadFromCorruptEntries(t *testing.T) {
	assert := require.New(t)

	// an entry shorter than the field encoding
	data := serializedFixture(t)
	data.Mds[0] = data.Mds[0][1:]
	assert.ErrorIs(readPatched(t, data), field.ErrLengthMismatch)

	// a width the flattened constants cannot be reshaped to
	data = serializedFixture(t)
	data.Width = 4
	assert.ErrorIs(readPatched(t, data), field.ErrInvalidParameter)

	// an order no field can be built over
	data = serializedFixture(t)
	data.Order = []byte{0}
	assert.ErrorIs(readPatched(t, data), field.ErrInvalidParameter)
}
