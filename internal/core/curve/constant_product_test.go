package curve

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstantProduct(t *testing.T) {
	_, err := NewConstantProduct(1, 1, 1, 10_001, DefaultPrecision)
	require.ErrorIs(t, err, ErrInvalidFee)

	_, err = NewConstantProduct(1, 1, 1, 30, 0)
	require.ErrorIs(t, err, ErrInvalidPrecision)

	c, err := NewConstantProduct(1, 2, 3, 10_000, DefaultPrecision)
	require.NoError(t, err)
	assert.Equal(t, uint16(10_000), c.FeeBps)
}

func TestSwap(t *testing.T) {
	t.Run("AtoB with 30bps fee", func(t *testing.T) {
		c, err := NewConstantProduct(1_000_000, 1_000_000, BootstrapLPAmount, 30, DefaultPrecision)
		require.NoError(t, err)

		res, err := c.Swap(AtoB, 100_000, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(100_000), res.Deposit)
		assert.Equal(t, uint64(90_662), res.Withdraw)
		assert.Equal(t, uint64(300), res.Fee)
		assert.Equal(t, uint64(1_100_000), c.ReserveA)
		assert.Equal(t, uint64(909_338), c.ReserveB)
	})

	t.Run("BtoA updates the other side", func(t *testing.T) {
		c, err := NewConstantProduct(500, 2_000, 1, 0, DefaultPrecision)
		require.NoError(t, err)

		res, err := c.Swap(BtoA, 2_000, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(250), res.Withdraw)
		assert.Equal(t, uint64(250), c.ReserveA)
		assert.Equal(t, uint64(4_000), c.ReserveB)
	})

	t.Run("minimum output enforced", func(t *testing.T) {
		c, err := NewConstantProduct(1_000_000, 1_000_000, 1, 30, DefaultPrecision)
		require.NoError(t, err)

		_, err = c.Swap(AtoB, 100_000, 90_663)
		require.ErrorIs(t, err, ErrSlippageExceeded)
		assert.Equal(t, uint64(1_000_000), c.ReserveA, "reserves must not move on failure")
	})

	t.Run("output is the reserve above k over the new input", func(t *testing.T) {
		c, err := NewConstantProduct(1_000_000, 1_000_000, 1, 30, DefaultPrecision)
		require.NoError(t, err)

		// 1_000_000 - floor(1e12 / (1_000_000 + 99_700))
		res, err := c.Swap(AtoB, 100_000, 90_662)
		require.NoError(t, err)
		assert.Equal(t, uint64(90_662), res.Withdraw)
	})

	t.Run("fee-free rounding can shrink the product", func(t *testing.T) {
		c, err := NewConstantProduct(3, 3, 1, 0, DefaultPrecision)
		require.NoError(t, err)

		res, err := c.Swap(AtoB, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), res.Withdraw)
		assert.Equal(t, uint64(4), c.ReserveA)
		assert.Equal(t, uint64(2), c.ReserveB)
		assert.Equal(t, int64(8), c.Invariant().Int64())
	})

	t.Run("empty reserves", func(t *testing.T) {
		c, err := NewConstantProduct(0, 1_000, 0, 30, DefaultPrecision)
		require.NoError(t, err)

		_, err = c.Swap(AtoB, 10, 0)
		require.ErrorIs(t, err, ErrNoLiquidity)
	})

	t.Run("zero input", func(t *testing.T) {
		c, err := NewConstantProduct(10, 10, 10, 30, DefaultPrecision)
		require.NoError(t, err)

		_, err = c.Swap(AtoB, 0, 0)
		require.ErrorIs(t, err, ErrZeroAmount)
	})

	t.Run("reserve overflow", func(t *testing.T) {
		c, err := NewConstantProduct(math.MaxUint64, 10, 10, 0, DefaultPrecision)
		require.NoError(t, err)

		_, err = c.Swap(AtoB, 10, 0)
		require.ErrorIs(t, err, ErrOverflow)
	})
}

// The product can only lose what flooring the output reserve drops, which
// is less than one unit of output at the post-trade input price.
func TestSwapProductLossBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2_000; i++ {
		a := uint64(rng.Int63n(1_000_000_000)) + 1
		b := uint64(rng.Int63n(1_000_000_000)) + 1
		fee := uint16(rng.Intn(200))
		in := uint64(rng.Int63n(1_000_000_000)) + 1
		dir := Direction(rng.Intn(2))

		c, err := NewConstantProduct(a, b, 1, fee, DefaultPrecision)
		require.NoError(t, err)
		before := c.Invariant()
		reserveIn, _ := c.reserves(dir)
		effective, err := MulDivFloor(in, uint64(BasisPointMax-fee), BasisPointMax)
		require.NoError(t, err)

		_, err = c.Swap(dir, in, 0)
		require.NoError(t, err)
		bound := new(big.Int).Add(c.Invariant(), new(big.Int).SetUint64(reserveIn+effective))
		require.Positive(t, bound.Cmp(before), "a=%d b=%d fee=%d in=%d dir=%s", a, b, fee, in, dir)
	}
}

func TestSwapWithFeeGrowsProduct(t *testing.T) {
	tests := []struct {
		name     string
		a, b, in uint64
		dir      Direction
	}{
		{"balanced", 1_000_000, 1_000_000, 100_000, AtoB},
		{"skewed", 1_000_000, 3_000_000, 1_000, AtoB},
		{"skewed reverse", 1_000_000, 3_000_000, 3_000, BtoA},
		{"small pool", 5_000, 7_000, 500, AtoB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewConstantProduct(tt.a, tt.b, 1, 30, DefaultPrecision)
			require.NoError(t, err)
			before := c.Invariant()

			_, err = c.Swap(tt.dir, tt.in, 0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, c.Invariant().Cmp(before), 0)
		})
	}
}

func TestWithdrawAmounts(t *testing.T) {
	x, y, err := WithdrawAmounts(1_100_000, 909_338, BootstrapLPAmount, BootstrapLPAmount/2)
	require.NoError(t, err)
	assert.Equal(t, uint64(550_000), x)
	assert.Equal(t, uint64(454_669), y)

	_, _, err = WithdrawAmounts(10, 10, 0, 1)
	require.ErrorIs(t, err, ErrNoLiquidity)

	_, _, err = WithdrawAmounts(10, 10, 5, 6)
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestDepositAmounts(t *testing.T) {
	x, y, err := DepositAmounts(1_000, 3_000, 100, 33)
	require.NoError(t, err)
	assert.Equal(t, uint64(330), x)
	assert.Equal(t, uint64(990), y)
}

func TestBalancedDeposit(t *testing.T) {
	tests := []struct {
		name             string
		reserveX         uint64
		reserveY         uint64
		amountX, amountY uint64
		wantX, wantY     uint64
	}{
		{"y binds", 1_000, 2_000, 100, 100, 50, 100},
		{"x binds", 1_000, 2_000, 10, 100, 10, 20},
		{"exact ratio", 1_000, 2_000, 100, 200, 100, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := BalancedDeposit(tt.reserveX, tt.reserveY, tt.amountX, tt.amountY)
			require.NoError(t, err)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
			assert.LessOrEqual(t, x, tt.amountX)
			assert.LessOrEqual(t, y, tt.amountY)
		})
	}

	_, _, err := BalancedDeposit(0, 10, 1, 1)
	require.ErrorIs(t, err, ErrNoLiquidity)
}

func TestLPForDeposit(t *testing.T) {
	lp, err := LPForDeposit(1_000_000, BootstrapLPAmount, 1_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000_000), lp)

	_, err = LPForDeposit(1, math.MaxUint64, math.MaxUint64)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestQuote(t *testing.T) {
	c, err := NewConstantProduct(1_000_000, 1_000_000, BootstrapLPAmount, 30, DefaultPrecision)
	require.NoError(t, err)

	q, err := c.Quote(AtoB, 100_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(90_662), q.AmountOut)
	assert.Equal(t, uint64(300), q.Fee)
	assert.True(t, q.SpotPrice.Equal(decimal.NewFromInt(1)))
	assert.True(t, q.PriceImpact.Equal(decimal.RequireFromString("9.338")), q.PriceImpact.String())
	assert.Equal(t, uint64(1_000_000), c.ReserveA, "quote must not mutate the curve")

	empty, err := NewConstantProduct(0, 0, 0, 30, DefaultPrecision)
	require.NoError(t, err)
	_, err = empty.Quote(AtoB, 1)
	require.ErrorIs(t, err, ErrNoLiquidity)
}
