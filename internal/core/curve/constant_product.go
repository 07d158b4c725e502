// Package curve implements constant-product pricing over unsigned
// fixed-point reserves. All functions are pure. Share math truncates toward
// the pool so remaining holders are never diluted.
package curve

import "math/big"

// BasisPointMax is the fee denominator.
const BasisPointMax = 10_000

// BootstrapLPAmount is minted to the first depositor of an empty pool.
const BootstrapLPAmount uint64 = 100_000_000_000

// DefaultPrecision is the decimal precision used for quotes when none is given.
const DefaultPrecision uint8 = 6

// Direction selects which reserve receives the input of a swap.
type Direction uint8

const (
	AtoB Direction = iota
	BtoA
)

func (d Direction) String() string {
	if d == AtoB {
		return "a_to_b"
	}
	return "b_to_a"
}

// DirectionFromBool maps the wire flag (true = A to B) to a Direction.
func DirectionFromBool(aToB bool) Direction {
	if aToB {
		return AtoB
	}
	return BtoA
}

// SwapResult describes an executed swap.
type SwapResult struct {
	// Deposit is the full input moved into the input vault, fee included.
	Deposit uint64
	// Withdraw is the amount released from the output vault.
	Withdraw uint64
	// Fee is the portion of Deposit retained by the pool.
	Fee uint64
}

// ConstantProduct is a snapshot of a pool's reserves.
type ConstantProduct struct {
	ReserveA  uint64
	ReserveB  uint64
	LPSupply  uint64
	FeeBps    uint16
	Precision uint8
}

// NewConstantProduct validates the parameters and returns a curve over the
// given reserves.
func NewConstantProduct(reserveA, reserveB, lpSupply uint64, feeBps uint16, precision uint8) (*ConstantProduct, error) {
	if feeBps > BasisPointMax {
		return nil, ErrInvalidFee
	}
	if precision == 0 {
		return nil, ErrInvalidPrecision
	}
	return &ConstantProduct{
		ReserveA:  reserveA,
		ReserveB:  reserveB,
		LPSupply:  lpSupply,
		FeeBps:    feeBps,
		Precision: precision,
	}, nil
}

func (c *ConstantProduct) reserves(d Direction) (in, out uint64) {
	if d == AtoB {
		return c.ReserveA, c.ReserveB
	}
	return c.ReserveB, c.ReserveA
}

func (c *ConstantProduct) setReserves(d Direction, in, out uint64) {
	if d == AtoB {
		c.ReserveA, c.ReserveB = in, out
		return
	}
	c.ReserveB, c.ReserveA = in, out
}

// Swap trades amountIn of the input side for the output side and updates
// the reserves held by c. With x the input net of fee, the post-trade output
// reserve is floor(reserveIn*reserveOut/(reserveIn+x)) and the trader
// receives everything above it. The fee stays in the input reserve.
func (c *ConstantProduct) Swap(d Direction, amountIn, minOut uint64) (SwapResult, error) {
	reserveIn, reserveOut := c.reserves(d)
	if amountIn == 0 {
		return SwapResult{}, ErrZeroAmount
	}
	if reserveIn == 0 || reserveOut == 0 {
		return SwapResult{}, ErrNoLiquidity
	}

	effective, err := MulDivFloor(amountIn, uint64(BasisPointMax-c.FeeBps), BasisPointMax)
	if err != nil {
		return SwapResult{}, err
	}

	k, err := Mul(u(reserveIn), u(reserveOut))
	if err != nil {
		return SwapResult{}, err
	}
	denominator, err := Add(u(reserveIn), u(effective))
	if err != nil {
		return SwapResult{}, err
	}
	q, err := Div(k, denominator)
	if err != nil {
		return SwapResult{}, err
	}
	newOut, err := toU64(q)
	if err != nil {
		return SwapResult{}, err
	}
	// newOut <= reserveOut because denominator >= reserveIn.
	amountOut := reserveOut - newOut
	if amountOut < minOut {
		return SwapResult{}, ErrSlippageExceeded
	}

	newIn, err := toU64(new(big.Int).Add(u(reserveIn), u(amountIn)))
	if err != nil {
		return SwapResult{}, err
	}
	c.setReserves(d, newIn, newOut)

	return SwapResult{
		Deposit:  amountIn,
		Withdraw: amountOut,
		Fee:      amountIn - effective,
	}, nil
}

// DepositAmounts returns the reserve amounts required to mint lpAmount
// shares, truncated down.
func DepositAmounts(reserveX, reserveY, lpSupply, lpAmount uint64) (x, y uint64, err error) {
	if lpSupply == 0 {
		return 0, 0, ErrNoLiquidity
	}
	if x, err = MulDivFloor(reserveX, lpAmount, lpSupply); err != nil {
		return 0, 0, err
	}
	if y, err = MulDivFloor(reserveY, lpAmount, lpSupply); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// WithdrawAmounts returns the proportional share of both reserves for
// burning lpBurn shares, truncated down.
func WithdrawAmounts(reserveX, reserveY, lpSupply, lpBurn uint64) (x, y uint64, err error) {
	if lpSupply == 0 {
		return 0, 0, ErrNoLiquidity
	}
	if lpBurn > lpSupply {
		return 0, 0, ErrUnderflow
	}
	return DepositAmounts(reserveX, reserveY, lpSupply, lpBurn)
}

// BalancedDeposit picks the binding pair for a deposit of up to
// (amountX, amountY) into a pool holding (reserveX, reserveY). Each side's
// partner amount is computed from the current ratio and the side that does
// not exceed its request wins.
func BalancedDeposit(reserveX, reserveY, amountX, amountY uint64) (x, y uint64, err error) {
	if reserveX == 0 || reserveY == 0 {
		return 0, 0, ErrNoLiquidity
	}
	xForY, err := MulDivFloor(reserveX, amountY, reserveY)
	if err != nil {
		return 0, 0, err
	}
	yForX, err := MulDivFloor(reserveY, amountX, reserveX)
	if err != nil {
		return 0, 0, err
	}
	if amountX < xForY && amountY < yForX {
		return 0, 0, ErrUnbalanced
	}
	if amountX < xForY {
		return amountX, yForX, nil
	}
	return xForY, amountY, nil
}

// LPForDeposit returns the shares minted for depositing x into reserveX.
func LPForDeposit(reserveX, lpSupply, x uint64) (uint64, error) {
	if reserveX == 0 {
		return 0, ErrNoLiquidity
	}
	return MulDivFloor(x, lpSupply, reserveX)
}

// Invariant returns reserveA*reserveB.
func (c *ConstantProduct) Invariant() *big.Int {
	return new(big.Int).Mul(u(c.ReserveA), u(c.ReserveB))
}
