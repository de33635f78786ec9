package utils

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

var curves map[string]ecc.ID

func init() {
	curves = make(map[string]ecc.ID)
	for _, c := range ecc.Implemented() {
		fHex := c.ScalarField().Text(16)
		curves[fHex] = c
	}
}

// FieldToCurve returns the ecc.ID whose scalar field matches q, or
// ecc.UNKNOWN if q is not the scalar field of an implemented curve.
func FieldToCurve(q *big.Int) ecc.ID {
	fHex := q.Text(16)
	curve, ok := curves[fHex]
	if !ok {
		return ecc.UNKNOWN
	}
	return curve
}
