package poseidon

import (
	"fmt"
	"io"
	"math/big"

	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/fxamacker/cbor/v2"

	"github.com/zkfield/bigfield"
	"github.com/zkfield/bigfield/field"
	"github.com/zkfield/bigfield/internal/utils"
	"github.com/zkfield/bigfield/logger"
)

// configData is the serialized form of a Config. Matrix and constant
// entries are flattened row-major into fixed-width big-endian encodings.
type configData struct {
	Version              string
	Order                []byte
	BitLen               int
	LittleEndian         bool
	Width                int
	FullRounds           int
	PartialRounds        int
	SboxPower            int
	ReversePartialPowIdx bool
	Mds                  [][]byte
	RoundConstants       [][]byte
}

// WriteTo serializes the configuration as CBOR with a version header.
// Entries are normalized against the field order before encoding. A
// square-root override on the field is not serialized and will not
// survive a round trip.
func (cfg *Config[T]) WriteTo(w io.Writer) (int64, error) {
	if cfg.Field == nil {
		return 0, fmt.Errorf("%w: Field must not be nil", ErrInvalidConfig)
	}
	order := cfg.Field.Order()
	byteLen := cfg.Field.ByteLen()

	data := configData{
		Version:              bigfield.Version.String(),
		Order:                order.Bytes(),
		BitLen:               cfg.Field.BitLen(),
		Width:                cfg.Width,
		FullRounds:           cfg.FullRounds,
		PartialRounds:        cfg.PartialRounds,
		SboxPower:            cfg.SboxPower,
		ReversePartialPowIdx: cfg.ReversePartialPowIdx,
		Mds:                  flattenEntries(cfg.Mds, order, byteLen),
		RoundConstants:       flattenEntries(cfg.RoundConstants, order, byteLen),
	}
	if le, ok := cfg.Field.(interface{ LittleEndian() bool }); ok {
		data.LittleEndian = le.LittleEndian()
	}

	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	buf, err := em.Marshal(&data)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

func flattenEntries(rows [][]*big.Int, order *big.Int, byteLen int) [][]byte {
	var out [][]byte
	for _, row := range rows {
		for _, e := range row {
			out = append(out, utils.NumberToBytesBE(field.Mod(e, order), byteLen))
		}
	}
	return out
}

// ReadFrom deserializes a configuration written by WriteTo. The field is
// rebuilt as an Fp over the stored order, so only Config[*big.Int] can be
// a deserialization target; a square-root override is not restored.
func (cfg *Config[T]) ReadFrom(r io.Reader) (int64, error) {
	target, ok := any(cfg).(*Config[*big.Int])
	if !ok {
		return 0, fmt.Errorf("%w: deserialization targets Config[*big.Int]", ErrInvalidConfig)
	}

	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	decoder := dm.NewDecoder(r)

	var data configData
	if err := decoder.Decode(&data); err != nil {
		return int64(decoder.NumBytesRead()), err
	}
	n := int64(decoder.NumBytesRead())

	if err := checkSerializationHeader(&data); err != nil {
		return n, err
	}

	order := new(big.Int).SetBytes(data.Order)
	var opts []field.FpOption
	if data.BitLen > 0 {
		opts = append(opts, field.WithBitLen(data.BitLen))
	}
	if data.LittleEndian {
		opts = append(opts, field.WithLittleEndian())
	}
	f, err := field.NewFp(order, opts...)
	if err != nil {
		return n, err
	}
	if id := utils.FieldToCurve(order); id != ecc.UNKNOWN {
		log := logger.Logger()
		log.Debug().Str("curve", id.String()).Msg("configuration order matches a known scalar field")
	}

	mdsFlat, err := parseEntries(data.Mds, f.ByteLen())
	if err != nil {
		return n, err
	}
	rcFlat, err := parseEntries(data.RoundConstants, f.ByteLen())
	if err != nil {
		return n, err
	}
	mds, err := SplitConstants(mdsFlat, data.Width)
	if err != nil {
		return n, err
	}
	rc, err := SplitConstants(rcFlat, data.Width)
	if err != nil {
		return n, err
	}

	*target = Config[*big.Int]{
		Field:                f,
		Width:                data.Width,
		FullRounds:           data.FullRounds,
		PartialRounds:        data.PartialRounds,
		SboxPower:            data.SboxPower,
		Mds:                  mds,
		RoundConstants:       rc,
		ReversePartialPowIdx: data.ReversePartialPowIdx,
	}
	return n, nil
}

func parseEntries(entries [][]byte, byteLen int) ([]*big.Int, error) {
	out := make([]*big.Int, len(entries))
	for i, raw := range entries {
		if len(raw) != byteLen {
			return nil, fmt.Errorf("%w: entry %d has %d bytes, expected %d", field.ErrLengthMismatch, i, len(raw), byteLen)
		}
		out[i] = new(big.Int).SetBytes(raw)
	}
	return out, nil
}

// checkSerializationHeader parses the version header and warns when the
// data was produced by a newer release than the one reading it.
func checkSerializationHeader(data *configData) error {
	v, err := semver.Parse(data.Version)
	if err != nil {
		return fmt.Errorf("%w: invalid version header %q", ErrInvalidConfig, data.Version)
	}
	if v.Major > bigfield.Version.Major || (v.Major == bigfield.Version.Major && v.Minor > bigfield.Version.Minor) {
		log := logger.Logger()
		log.Warn().Str("version", data.Version).Str("current", bigfield.Version.String()).Msg("reading a configuration serialized with a newer release")
	}
	return nil
}
