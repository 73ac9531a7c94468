package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestBuyThenAverageDown(t *testing.T) {
	a := NewAccount(d("100000"))

	bal, err := a.Buy("RELIANCE", 10, d("2500"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("75000")), "balance after first buy: %s", bal)

	pos := a.Positions["RELIANCE"]
	assert.Equal(t, int64(10), pos.Quantity)
	assert.True(t, pos.AvgPrice.Equal(d("2500")))

	bal, err = a.Buy("RELIANCE", 5, d("2600"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("62000")), "balance after second buy: %s", bal)

	pos = a.Positions["RELIANCE"]
	assert.Equal(t, int64(15), pos.Quantity)
	// (10*2500 + 5*2600) / 15 = 2533.33...
	want := d("38000").Div(d("15"))
	assert.True(t, pos.AvgPrice.Equal(want), "avg price %s", pos.AvgPrice)
	assert.InDelta(t, 2533.33, pos.AvgPrice.InexactFloat64(), 0.01)
}

func TestSellAllRemovesPositionAndRealizesPL(t *testing.T) {
	a := NewAccount(d("100000"))
	_, err := a.Buy("RELIANCE", 10, d("2500"))
	require.NoError(t, err)
	_, err = a.Buy("RELIANCE", 5, d("2600"))
	require.NoError(t, err)

	bal, realized, err := a.Sell("RELIANCE", 15, d("2700"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("102500")), "balance after sell: %s", bal)
	assert.InDelta(t, 2500, realized.InexactFloat64(), 0.01)

	_, ok := a.Positions["RELIANCE"]
	assert.False(t, ok, "position should be removed at zero quantity")
}

func TestRebuyAfterSellAllStartsFreshCostBasis(t *testing.T) {
	a := NewAccount(d("100000"))
	_, err := a.Buy("TCS", 2, d("3400"))
	require.NoError(t, err)
	_, _, err = a.Sell("TCS", 2, d("3500"))
	require.NoError(t, err)

	_, err = a.Buy("TCS", 1, d("3600"))
	require.NoError(t, err)
	assert.True(t, a.Positions["TCS"].AvgPrice.Equal(d("3600")))
}

func TestOversellFailsAndLeavesStateUnchanged(t *testing.T) {
	a := NewAccount(d("100000"))
	_, err := a.Buy("INFY", 3, d("1400"))
	require.NoError(t, err)
	balBefore := a.Balance

	_, _, err = a.Sell("INFY", 4, d("1400"))
	assert.ErrorIs(t, err, ErrInsufficientHoldings)
	assert.True(t, a.Balance.Equal(balBefore))
	assert.Equal(t, int64(3), a.Positions["INFY"].Quantity)

	_, _, err = a.Sell("HDFCBANK", 1, d("1600"))
	assert.ErrorIs(t, err, ErrHoldingNotFound)
}

func TestBuyWithInsufficientFundsFailsClosed(t *testing.T) {
	a := NewAccount(d("1000"))
	bal, err := a.Buy("RELIANCE", 1, d("2000"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, bal.Equal(d("1000")))
	assert.Empty(t, a.Positions)
}

func TestDeposit(t *testing.T) {
	a := NewAccount(d("1000"))

	_, err := a.Deposit(d("-50"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = a.Deposit(decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.True(t, a.Balance.Equal(d("1000")))

	bal, err := a.Deposit(d("5000"))
	require.NoError(t, err)
	assert.True(t, bal.Equal(d("6000")))
}

func TestInvalidQuantityAndPrice(t *testing.T) {
	a := NewAccount(d("1000"))
	_, err := a.Buy("TCS", 0, d("100"))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = a.Buy("TCS", -1, d("100"))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = a.Buy("TCS", 1, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, _, err = a.Sell("TCS", 0, d("100"))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// Balance must stay non-negative for any sequence of operations: failed
// operations must not move it, successful buys are capped by it.
func TestBalanceNeverNegativeAcrossSequences(t *testing.T) {
	a := NewAccount(d("10000"))
	steps := []struct {
		side  string
		sym   string
		qty   int64
		price string
	}{
		{"buy", "INFY", 5, "1400"},   // 7000, leaves 3000
		{"buy", "INFY", 3, "1400"},   // would need 4200, fails
		{"sell", "INFY", 2, "1500"},  // +3000
		{"buy", "TCS", 1, "3400"},    // 3400, leaves 2600
		{"sell", "INFY", 10, "1500"}, // oversell, fails
		{"sell", "INFY", 3, "1500"},  // +4500, position removed
		{"buy", "TCS", 3, "3400"},    // would need 10200, fails
	}
	for i, s := range steps {
		switch s.side {
		case "buy":
			a.Buy(s.sym, s.qty, d(s.price))
		case "sell":
			a.Sell(s.sym, s.qty, d(s.price))
		}
		assert.False(t, a.Balance.IsNegative(), "step %d drove balance negative: %s", i, a.Balance)
	}
	assert.True(t, a.Balance.Equal(d("7100")), "final balance %s", a.Balance)
	assert.Empty(t, a.Positions["INFY"].Quantity)
	assert.Equal(t, int64(1), a.Positions["TCS"].Quantity)
}

func TestAverageCostFirstLot(t *testing.T) {
	got := AverageCost(0, decimal.Zero, 7, d("123.45"))
	assert.True(t, got.Equal(d("123.45")))
}
