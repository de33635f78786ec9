package utils

import "math/big"

// NLength returns the bit length and byte length used to serialize values
// modulo order. A positive explicitBitLen overrides the natural bit length
// of order; the byte length is always the ceiling of bitLen/8.
func NLength(order *big.Int, explicitBitLen int) (bitLen, byteLen int) {
	bitLen = order.BitLen()
	if explicitBitLen > 0 {
		bitLen = explicitBitLen
	}
	byteLen = (bitLen + 7) / 8
	return
}

// BitMask returns a fresh integer with the low bits bits set.
func BitMask(bits int) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return mask.Sub(mask, big.NewInt(1))
}

// NumberToBytesBE writes n as a big-endian byte slice of exactly byteLen
// bytes. Panics if n is negative or does not fit; callers are expected to
// reduce first.
func NumberToBytesBE(n *big.Int, byteLen int) []byte {
	res := make([]byte, byteLen)
	n.FillBytes(res)
	return res
}

// NumberToBytesLE writes n as a little-endian byte slice of exactly byteLen
// bytes.
func NumberToBytesLE(n *big.Int, byteLen int) []byte {
	res := NumberToBytesBE(n, byteLen)
	reverseInPlace(res)
	return res
}

// BytesToNumberBE interprets b as a big-endian unsigned integer.
func BytesToNumberBE(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// BytesToNumberLE interprets b as a little-endian unsigned integer.
func BytesToNumberLE(b []byte) *big.Int {
	tmp := make([]byte, len(b))
	copy(tmp, b)
	reverseInPlace(tmp)
	return new(big.Int).SetBytes(tmp)
}

func reverseInPlace(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
