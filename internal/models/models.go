package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            string          `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	Email         string          `db:"email" json:"email"`
	PasswordHash  string          `db:"password_hash" json:"-"`
	WalletBalance decimal.Decimal `db:"wallet_balance" json:"wallet_balance"`
	IsNewUser     bool            `db:"is_new_user" json:"is_new_user"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Side is the direction of a settled transaction. Deposits share the
// transaction log with trades so the log stays the single source of truth
// for the wallet balance.
type Side string

const (
	SideBuy     Side = "buy"
	SideSell    Side = "sell"
	SideDeposit Side = "deposit"
)

type Stock struct {
	Symbol string `db:"symbol" json:"symbol"`
	Name   string `db:"name" json:"name"`
}

type Holding struct {
	UserID       string          `db:"user_id" json:"-"`
	Symbol       string          `db:"symbol" json:"symbol"`
	Name         string          `db:"name" json:"name"`
	Quantity     int64           `db:"quantity" json:"quantity"`
	AvgPrice     decimal.Decimal `db:"avg_price" json:"avg_price"`
	CurrentPrice decimal.Decimal `db:"current_price" json:"current_price"`
	LastUpdated  time.Time       `db:"last_updated" json:"last_updated"`
}

// HoldingView is a Holding priced at the latest observed quote.
type HoldingView struct {
	Holding
	TotalValue        decimal.Decimal `json:"total_value"`
	TotalInvestment   decimal.Decimal `json:"total_investment"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percentage"`
}

type Transaction struct {
	ID           string              `db:"id" json:"id"`
	UserID       string              `db:"user_id" json:"user_id"`
	Symbol       string              `db:"symbol" json:"symbol"`
	Side         Side                `db:"side" json:"side"`
	Quantity     int64               `db:"quantity" json:"quantity"`
	Price        decimal.Decimal     `db:"price" json:"price"`
	TotalValue   decimal.Decimal     `db:"total_value" json:"total_value"`
	RealizedPL   decimal.NullDecimal `db:"realized_pl" json:"realized_pl,omitempty"`
	BalanceAfter decimal.Decimal     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
}

type TransactionStats struct {
	TotalTransactions int64           `json:"total_transactions"`
	BuyCount          int64           `json:"buy_count"`
	SellCount         int64           `json:"sell_count"`
	TotalBuyAmount    decimal.Decimal `json:"total_buy_amount"`
	TotalSellAmount   decimal.Decimal `json:"total_sell_amount"`
	NetTrading        decimal.Decimal `json:"net_trading"`
	Recent            *Transaction    `json:"recent_transaction,omitempty"`
}

// Portfolio is a derived view: current holdings plus chronological
// transaction history. It must always be re-derivable from the transaction
// log; holdings and wallet are caches of it.
type Portfolio struct {
	Holdings               []HoldingView   `json:"holdings"`
	Transactions           []Transaction   `json:"transactions"`
	TotalInvestment        decimal.Decimal `json:"total_investment"`
	TotalValue             decimal.Decimal `json:"total_value"`
	TotalProfitLoss        decimal.Decimal `json:"total_profit_loss"`
	TotalProfitLossPercent decimal.Decimal `json:"total_profit_loss_percentage"`
}

// SettlementResult is what a settled trade or deposit returns to the caller.
type SettlementResult struct {
	Transaction Transaction     `json:"transaction"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	Holdings    []Holding       `json:"holdings"`
}

type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent decimal.Decimal `json:"change"`
	Volume        int64           `json:"volume"`
	DayHigh       decimal.Decimal `json:"day_high"`
	DayLow        decimal.Decimal `json:"day_low"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Timestamp     time.Time       `json:"timestamp"`
}

type Suggestion struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent decimal.Decimal `json:"change"`
	Volume        int64           `json:"volume"`
	Action        Side            `json:"suggestion"`
	Reason        string          `json:"reason"`
}

type Bond struct {
	ID                string          `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Issuer            string          `db:"issuer" json:"issuer"`
	InterestRate      decimal.Decimal `db:"interest_rate" json:"interest_rate"`
	MaturityDate      time.Time       `db:"maturity_date" json:"maturity_date"`
	FaceValue         decimal.Decimal `db:"face_value" json:"face_value"`
	Price             decimal.Decimal `db:"price" json:"price"`
	MinimumInvestment decimal.Decimal `db:"minimum_investment" json:"minimum_investment"`
	Rating            string          `db:"rating" json:"rating"`
}

type InsurancePolicy struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Provider       string          `db:"provider" json:"provider"`
	PremiumAmount  decimal.Decimal `db:"premium_amount" json:"premium_amount"`
	CoverageAmount decimal.Decimal `db:"coverage_amount" json:"coverage_amount"`
	DurationMonths int             `db:"duration_months" json:"duration_months"`
	Type           string          `db:"type" json:"type"`
	Description    string          `db:"description" json:"description"`
}
