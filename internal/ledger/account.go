// Package ledger holds the settlement arithmetic: wallet debits/credits and
// weighted-average cost-basis accounting for positions. Everything here is
// pure in-memory state; the database repo applies the same rules inside a
// transaction.
package ledger

import "github.com/shopspring/decimal"

// Position is one symbol's lot in an account. Cost basis is a weighted
// average across buys; per-lot identity is intentionally not tracked.
type Position struct {
	Symbol   string
	Quantity int64
	AvgPrice decimal.Decimal
}

// AverageCost returns the cost basis after folding a buy of qty at price
// into an existing lot of oldQty at oldAvg.
func AverageCost(oldQty int64, oldAvg decimal.Decimal, qty int64, price decimal.Decimal) decimal.Decimal {
	if oldQty <= 0 {
		return price
	}
	oldCost := oldAvg.Mul(decimal.NewFromInt(oldQty))
	newCost := price.Mul(decimal.NewFromInt(qty))
	return oldCost.Add(newCost).Div(decimal.NewFromInt(oldQty + qty))
}

// RealizedPL is the profit realized by selling qty at price against a lot
// held at avg cost. It is computed on every sell and persisted on the sell
// transaction record.
func RealizedPL(avg, price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Sub(avg).Mul(decimal.NewFromInt(qty))
}

// Account is one user's wallet balance and the positions funded by it.
type Account struct {
	Balance   decimal.Decimal
	Positions map[string]Position
}

func NewAccount(balance decimal.Decimal) *Account {
	return &Account{Balance: balance, Positions: make(map[string]Position)}
}

// Deposit credits the wallet. Fails closed on non-positive amounts.
func (a *Account) Deposit(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return a.Balance, ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return a.Balance, nil
}

// Buy debits price*qty from the wallet and folds qty into the symbol's
// position at weighted-average cost. The wallet is never allowed to go
// negative: a buy that would overdraw fails with no state change.
func (a *Account) Buy(symbol string, qty int64, price decimal.Decimal) (decimal.Decimal, error) {
	if qty <= 0 {
		return a.Balance, ErrInvalidQuantity
	}
	if price.Sign() <= 0 {
		return a.Balance, ErrInvalidPrice
	}
	cost := price.Mul(decimal.NewFromInt(qty))
	if cost.GreaterThan(a.Balance) {
		return a.Balance, ErrInsufficientFunds
	}
	pos := a.Positions[symbol]
	pos.Symbol = symbol
	pos.AvgPrice = AverageCost(pos.Quantity, pos.AvgPrice, qty, price)
	pos.Quantity += qty
	a.Positions[symbol] = pos
	a.Balance = a.Balance.Sub(cost)
	return a.Balance, nil
}

// Sell credits price*qty to the wallet and decrements the position. Selling
// the full quantity removes the position; a later buy starts a fresh cost
// basis. The average price is unchanged by a sell. Returns the new balance
// and the realized P/L.
func (a *Account) Sell(symbol string, qty int64, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if qty <= 0 {
		return a.Balance, decimal.Zero, ErrInvalidQuantity
	}
	if price.Sign() <= 0 {
		return a.Balance, decimal.Zero, ErrInvalidPrice
	}
	pos, ok := a.Positions[symbol]
	if !ok {
		return a.Balance, decimal.Zero, ErrHoldingNotFound
	}
	if qty > pos.Quantity {
		return a.Balance, decimal.Zero, ErrInsufficientHoldings
	}
	realized := RealizedPL(pos.AvgPrice, price, qty)
	pos.Quantity -= qty
	if pos.Quantity == 0 {
		delete(a.Positions, symbol)
	} else {
		a.Positions[symbol] = pos
	}
	a.Balance = a.Balance.Add(price.Mul(decimal.NewFromInt(qty)))
	return a.Balance, realized, nil
}
