package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"papertrade/internal/database"
	"papertrade/internal/ledger"
	"papertrade/internal/middleware"
	"papertrade/internal/models"
	"papertrade/internal/service"
)

type Handler struct {
	trading *service.TradingService
	auth    *service.AuthService
	log     *logrus.Logger
}

func New(trading *service.TradingService, auth *service.AuthService, log *logrus.Logger) *Handler {
	return &Handler{trading: trading, auth: auth, log: log}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientHoldings),
		errors.Is(err, service.ErrBelowMinimumInvestment),
		errors.Is(err, service.ErrMissingTransactionID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrHoldingNotFound),
		errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrEmailTaken),
		errors.Is(err, database.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, service.ErrPriceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"success": false, "error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

// ---- watchlist and quotes ----

func (h *Handler) GetStocks(c *gin.Context) {
	stocks, err := h.trading.Watchlist(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(stocks), "data": stocks})
}

func (h *Handler) GetStockDetails(c *gin.Context) {
	q, err := h.trading.Quote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, q)
}

// ---- trading ----

type TradeRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
	// Quantity must be a positive whole number of shares.
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
	// Price is the quote the client saw; execution settles at the price
	// source's current quote.
	Price         decimal.Decimal `json:"price"`
	TransactionID string          `json:"transaction_id"`
}

func (h *Handler) BuyStock(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	res, err := h.trading.Buy(c.Request.Context(), userID(c), service.TradeRequest{
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      req.Quantity,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, settlementResponse(res))
}

func (h *Handler) SellStock(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	res, err := h.trading.Sell(c.Request.Context(), userID(c), service.TradeRequest{
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, settlementResponse(res))
}

func settlementResponse(res models.SettlementResult) gin.H {
	return gin.H{
		"transaction": res.Transaction,
		"newBalance":  res.NewBalance,
		"portfolio":   res.Holdings,
	}
}

// ---- wallet ----

func (h *Handler) GetWalletBalance(c *gin.Context) {
	bal, err := h.trading.WalletBalance(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "balance": bal})
}

type AddFundsRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

func (h *Handler) AddFunds(c *gin.Context) {
	var req AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	res, err := h.trading.AddFunds(c.Request.Context(), userID(c), req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "balance": res.NewBalance})
}

// ---- portfolio ----

func (h *Handler) GetPortfolio(c *gin.Context) {
	p, err := h.trading.Portfolio(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, p)
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	if err := h.trading.DeleteUser(c.Request.Context(), userID(c)); err != nil {
		h.fail(c, err)
		return
	}
	ok(c, gin.H{})
}

// ---- transactions ----

func (h *Handler) GetTransactions(c *gin.Context) {
	txs, err := h.trading.Transactions(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(txs), "data": txs})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	t, err := h.trading.Transaction(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, t)
}

func (h *Handler) GetTransactionStats(c *gin.Context) {
	stats, err := h.trading.TransactionStats(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, stats)
}

type RecordTransactionRequest struct {
	TransactionID string          `json:"transaction_id" binding:"required"`
	Symbol        string          `json:"symbol" binding:"required"`
	Side          models.Side     `json:"type" binding:"required,oneof=buy sell deposit"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	// pointer so a resulting balance of exactly zero still binds
	BalanceAfter *decimal.Decimal `json:"wallet_balance_after" binding:"required"`
}

func (h *Handler) RecordTransaction(c *gin.Context) {
	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	t, err := h.trading.Record(c.Request.Context(), models.Transaction{
		ID:           req.TransactionID,
		UserID:       userID(c),
		Symbol:       req.Symbol,
		Side:         req.Side,
		Quantity:     req.Quantity,
		Price:        req.Price,
		TotalValue:   req.TotalValue,
		BalanceAfter: *req.BalanceAfter,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": t})
}

// ---- suggestions ----

func (h *Handler) GetSuggestions(c *gin.Context) {
	res, err := h.trading.Suggestions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, res)
}

// ---- bonds and insurance ----

func (h *Handler) GetBonds(c *gin.Context) {
	bonds, err := h.trading.Bonds(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bonds), "data": bonds})
}

func (h *Handler) GetBond(c *gin.Context) {
	b, err := h.trading.Bond(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, b)
}

type BuyBondRequest struct {
	BondID   string `json:"bond_id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

func (h *Handler) BuyBond(c *gin.Context) {
	var req BuyBondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	res, err := h.trading.BuyBond(c.Request.Context(), userID(c), req.BondID, req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, settlementResponse(res))
}

func (h *Handler) GetInsurancePolicies(c *gin.Context) {
	policies, err := h.trading.InsurancePolicies(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(policies), "data": policies})
}

func (h *Handler) GetInsurancePolicy(c *gin.Context) {
	p, err := h.trading.InsurancePolicy(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, p)
}
