package field

import (
	"fmt"
	"math/big"

	"github.com/zkfield/bigfield/internal/utils"
)

const (
	// minMapInput keeps very short keys out of MapHashToField regardless
	// of the field size.
	minMapInput = 16
	// maxMapInput bounds the accepted key material.
	maxMapInput = 1024
)

// FieldBytesLength returns the number of bytes needed to serialize a value
// of the field of the given order.
func FieldBytesLength(order *big.Int) (int, error) {
	if order == nil || order.Sign() <= 0 {
		return 0, fmt.Errorf("%w: order must be a positive integer", ErrInvalidParameter)
	}
	_, byteLen := utils.NLength(order, 0)
	return byteLen, nil
}

// MinHashLength returns the number of uniform bytes needed to map onto the
// field with negligible bias: half again the field byte length.
func MinHashLength(order *big.Int) (int, error) {
	l, err := FieldBytesLength(order)
	if err != nil {
		return 0, err
	}
	return l + (l+1)/2, nil
}

// MapHashToField maps uniform hash output onto the fixed-width encoding of
// a field element. It requires at least MinHashLength input bytes so that
// the reduction bias is negligible, reduces modulo order-1 and shifts by
// one, so the result is never zero. The key is interpreted, and the result
// encoded, in the chosen endianness.
func MapHashToField(key []byte, order *big.Int, le bool) ([]byte, error) {
	if order == nil || order.Cmp(bigOne) <= 0 {
		return nil, fmt.Errorf("%w: order must exceed one", ErrInvalidParameter)
	}
	fieldLen, err := FieldBytesLength(order)
	if err != nil {
		return nil, err
	}
	minLen, err := MinHashLength(order)
	if err != nil {
		return nil, err
	}
	if minLen < minMapInput {
		minLen = minMapInput
	}
	if len(key) < minLen || len(key) > maxMapInput {
		return nil, fmt.Errorf("%w: expected %d to %d bytes of key material, got %d", ErrLengthMismatch, minLen, maxMapInput, len(key))
	}

	var num *big.Int
	if le {
		num = utils.BytesToNumberLE(key)
	} else {
		num = utils.BytesToNumberBE(key)
	}
	reduced := Mod(num, new(big.Int).Sub(order, bigOne))
	reduced.Add(reduced, bigOne)

	if le {
		return utils.NumberToBytesLE(reduced, fieldLen), nil
	}
	return utils.NumberToBytesBE(reduced, fieldLen), nil
}
