package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"papertrade/internal/config"
	"papertrade/internal/ledger"
	"papertrade/internal/models"
)

// Store is the persistence contract the trading service settles against.
// Implemented by database.Repo; the tests use an in-memory fake.
type Store interface {
	SettleTrade(ctx context.Context, userID string, side models.Side, symbol, name string, qty int64, price decimal.Decimal, externalID string) (models.SettlementResult, error)
	RecordTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	AddFunds(ctx context.Context, userID string, amount decimal.Decimal) (models.SettlementResult, error)
	WalletBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	GetPortfolio(ctx context.Context, userID string) (models.Portfolio, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error)
	TransactionStats(ctx context.Context, userID string) (models.TransactionStats, error)
	ListStocks(ctx context.Context) ([]models.Stock, error)
	GetBond(ctx context.Context, id string) (models.Bond, error)
	ListBonds(ctx context.Context) ([]models.Bond, error)
	GetInsurancePolicy(ctx context.Context, id string) (models.InsurancePolicy, error)
	ListInsurancePolicies(ctx context.Context) ([]models.InsurancePolicy, error)
	DeleteUser(ctx context.Context, userID string) error
}

// TradeRequest is a validated order. Price, if the client sent one, is the
// displayed quote and is informational only; execution always settles at
// the price source's current quote.
type TradeRequest struct {
	Symbol        string
	Name          string
	Quantity      int64
	TransactionID string
}

type TradingService struct {
	cfg    *config.Config
	store  Store
	prices PriceSource
	log    *logrus.Logger
}

func NewTradingService(cfg *config.Config, store Store, prices PriceSource, log *logrus.Logger) *TradingService {
	return &TradingService{cfg: cfg, store: store, prices: prices, log: log}
}

// Buy walks the settlement states: validate quantity, resolve price, then
// commit wallet+holding+transaction as one unit in the store.
func (s *TradingService) Buy(ctx context.Context, userID string, req TradeRequest) (models.SettlementResult, error) {
	if req.Quantity <= 0 {
		return models.SettlementResult{}, ledger.ErrInvalidQuantity
	}
	q, err := s.prices.GetQuote(ctx, req.Symbol)
	if err != nil {
		return models.SettlementResult{}, fmt.Errorf("%w: %s", ErrPriceUnavailable, err)
	}
	return s.store.SettleTrade(ctx, userID, models.SideBuy, req.Symbol, req.Name, req.Quantity, q.Price, req.TransactionID)
}

func (s *TradingService) Sell(ctx context.Context, userID string, req TradeRequest) (models.SettlementResult, error) {
	if req.Quantity <= 0 {
		return models.SettlementResult{}, ledger.ErrInvalidQuantity
	}
	q, err := s.prices.GetQuote(ctx, req.Symbol)
	if err != nil {
		return models.SettlementResult{}, fmt.Errorf("%w: %s", ErrPriceUnavailable, err)
	}
	return s.store.SettleTrade(ctx, userID, models.SideSell, req.Symbol, req.Name, req.Quantity, q.Price, req.TransactionID)
}

// BuyBond settles a bond purchase at the listed price through the same
// path as equities. Bonds carry a minimum investment check.
func (s *TradingService) BuyBond(ctx context.Context, userID, bondID string, qty int64) (models.SettlementResult, error) {
	if qty <= 0 {
		return models.SettlementResult{}, ledger.ErrInvalidQuantity
	}
	bond, err := s.store.GetBond(ctx, bondID)
	if err != nil {
		return models.SettlementResult{}, err
	}
	total := bond.Price.Mul(decimal.NewFromInt(qty))
	if total.LessThan(bond.MinimumInvestment) {
		return models.SettlementResult{}, fmt.Errorf("%w: minimum is %s", ErrBelowMinimumInvestment, bond.MinimumInvestment)
	}
	return s.store.SettleTrade(ctx, userID, models.SideBuy, bond.Name, bond.Issuer, qty, bond.Price, "")
}

func (s *TradingService) AddFunds(ctx context.Context, userID string, amount decimal.Decimal) (models.SettlementResult, error) {
	return s.store.AddFunds(ctx, userID, amount)
}

func (s *TradingService) WalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.store.WalletBalance(ctx, userID)
}

func (s *TradingService) Portfolio(ctx context.Context, userID string) (models.Portfolio, error) {
	return s.store.GetPortfolio(ctx, userID)
}

func (s *TradingService) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

func (s *TradingService) Transaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, id)
}

func (s *TradingService) TransactionStats(ctx context.Context, userID string) (models.TransactionStats, error) {
	return s.store.TransactionStats(ctx, userID)
}

// Record appends an externally settled transaction, idempotent on its id.
func (s *TradingService) Record(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		return models.Transaction{}, ErrMissingTransactionID
	}
	if t.Side != models.SideDeposit {
		if t.Quantity <= 0 {
			return models.Transaction{}, ledger.ErrInvalidQuantity
		}
		if t.Price.Sign() <= 0 {
			return models.Transaction{}, ledger.ErrInvalidPrice
		}
	}
	if t.TotalValue.Sign() == 0 {
		t.TotalValue = t.Price.Mul(decimal.NewFromInt(t.Quantity))
	}
	return s.store.RecordTransaction(ctx, t)
}

func (s *TradingService) Watchlist(ctx context.Context) ([]models.Stock, error) {
	return s.store.ListStocks(ctx)
}

func (s *TradingService) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	q, err := s.prices.GetQuote(ctx, symbol)
	if err != nil {
		return models.Quote{}, fmt.Errorf("%w: %s", ErrPriceUnavailable, err)
	}
	return q, nil
}

func (s *TradingService) Bonds(ctx context.Context) ([]models.Bond, error) {
	return s.store.ListBonds(ctx)
}

func (s *TradingService) Bond(ctx context.Context, id string) (models.Bond, error) {
	return s.store.GetBond(ctx, id)
}

func (s *TradingService) InsurancePolicies(ctx context.Context) ([]models.InsurancePolicy, error) {
	return s.store.ListInsurancePolicies(ctx)
}

func (s *TradingService) InsurancePolicy(ctx context.Context, id string) (models.InsurancePolicy, error) {
	return s.store.GetInsurancePolicy(ctx, id)
}

func (s *TradingService) DeleteUser(ctx context.Context, userID string) error {
	return s.store.DeleteUser(ctx, userID)
}
