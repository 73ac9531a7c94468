package ledger

import "errors"

var (
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidPrice         = errors.New("price must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("not enough shares to sell")
	ErrHoldingNotFound      = errors.New("holding not found")
)
