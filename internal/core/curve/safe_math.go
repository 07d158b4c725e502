package curve

import (
	"math"
	"math/big"
)

var (
	maxU64  = new(big.Int).SetUint64(math.MaxUint64)
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

func u(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// Mul multiplies within the u128 range.
func Mul(a, b *big.Int) (*big.Int, error) {
	r := new(big.Int).Mul(a, b)
	if r.Cmp(maxU128) > 0 {
		return nil, ErrOverflow
	}
	return r, nil
}

// Add adds within the u128 range.
func Add(a, b *big.Int) (*big.Int, error) {
	r := new(big.Int).Add(a, b)
	if r.Cmp(maxU128) > 0 {
		return nil, ErrOverflow
	}
	return r, nil
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, ErrUnderflow
	}
	return new(big.Int).Sub(a, b), nil
}

// Div is floor division.
func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	return new(big.Int).Quo(a, b), nil
}

// MulDivFloor computes floor(a*b/c) with a u128 intermediate.
func MulDivFloor(a, b, c uint64) (uint64, error) {
	num, err := Mul(u(a), u(b))
	if err != nil {
		return 0, err
	}
	q, err := Div(num, u(c))
	if err != nil {
		return 0, err
	}
	return toU64(q)
}

func toU64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 {
		return 0, ErrUnderflow
	}
	if v.Cmp(maxU64) > 0 {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}
