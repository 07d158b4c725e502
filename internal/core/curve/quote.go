package curve

import "github.com/shopspring/decimal"

// Quote is a read-only preview of a swap.
type Quote struct {
	AmountOut   uint64
	Fee         uint64
	SpotPrice   decimal.Decimal
	ExecPrice   decimal.Decimal
	PriceImpact decimal.Decimal
}

// SpotPrice returns the marginal price of the input side in units of the
// output side, rounded to the curve precision.
func (c *ConstantProduct) SpotPrice(d Direction) (decimal.Decimal, error) {
	in, out := c.reserves(d)
	if in == 0 || out == 0 {
		return decimal.Zero, ErrNoLiquidity
	}
	price := decimal.NewFromBigInt(u(out), 0).Div(decimal.NewFromBigInt(u(in), 0))
	return price.Round(int32(c.Precision)), nil
}

// Quote computes the swap outcome without mutating c.
func (c *ConstantProduct) Quote(d Direction, amountIn uint64) (Quote, error) {
	spot, err := c.SpotPrice(d)
	if err != nil {
		return Quote{}, err
	}
	preview := *c
	res, err := preview.Swap(d, amountIn, 0)
	if err != nil {
		return Quote{}, err
	}

	exec := decimal.NewFromBigInt(u(res.Withdraw), 0).Div(decimal.NewFromBigInt(u(res.Deposit), 0))
	impact := decimal.Zero
	if !spot.IsZero() {
		impact = spot.Sub(exec).Div(spot).Mul(decimal.NewFromInt(100))
	}
	return Quote{
		AmountOut:   res.Withdraw,
		Fee:         res.Fee,
		SpotPrice:   spot,
		ExecPrice:   exec.Round(int32(c.Precision)),
		PriceImpact: impact.Round(4),
	}, nil
}
