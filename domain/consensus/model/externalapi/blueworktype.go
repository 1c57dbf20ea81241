package externalapi

import "math/big"

// BlueWorkType is the type used to count a block's cumulative blue work.
// It is stored as an arbitrary-precision integer (kept within 192 bits by
// convention) since Go has no native uint192.
type BlueWorkType struct {
	*big.Int
}

// NewBlueWorkType creates a new BlueWorkType from a uint64
func NewBlueWorkType(value uint64) BlueWorkType {
	return BlueWorkType{big.NewInt(0).SetUint64(value)}
}

// BlueWorkFromBigInt wraps an existing big.Int as a BlueWorkType
func BlueWorkFromBigInt(value *big.Int) BlueWorkType {
	return BlueWorkType{value}
}

// Clone returns a clone of this BlueWorkType
func (bw BlueWorkType) Clone() BlueWorkType {
	if bw.Int == nil {
		return NewBlueWorkType(0)
	}
	return BlueWorkType{new(big.Int).Set(bw.Int)}
}

// Add returns a new BlueWorkType that's the sum of bw and other
func (bw BlueWorkType) Add(other BlueWorkType) BlueWorkType {
	return BlueWorkType{new(big.Int).Add(bw.Int, other.Int)}
}
