package curve

import "errors"

var (
	ErrOverflow         = errors.New("curve: overflow")
	ErrUnderflow        = errors.New("curve: underflow")
	ErrDivideByZero     = errors.New("curve: division by zero")
	ErrInvalidFee       = errors.New("curve: fee exceeds 10000 basis points")
	ErrInvalidPrecision = errors.New("curve: precision must be non-zero")
	ErrNoLiquidity      = errors.New("curve: no liquidity in pool")
	ErrSlippageExceeded = errors.New("curve: output below minimum")
	ErrZeroAmount       = errors.New("curve: zero amount")
	ErrUnbalanced       = errors.New("curve: deposit does not cover either side of the pool ratio")
)
