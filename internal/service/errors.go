package service

import "errors"

var (
	ErrPriceUnavailable       = errors.New("price unavailable")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrBelowMinimumInvestment = errors.New("below minimum investment")
	ErrMissingTransactionID   = errors.New("transaction id is required")
)
