package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"papertrade/internal/ledger"
	"papertrade/internal/models"
)

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	var u models.User
	q := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)
	      RETURNING id, name, email, password_hash, wallet_balance, is_new_user, created_at`
	err := r.db.GetContext(ctx, &u, q, name, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	q := `SELECT id, name, email, password_hash, wallet_balance, is_new_user, created_at FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *Repo) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	q := `SELECT id, name, email, password_hash, wallet_balance, is_new_user, created_at FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &u, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// DeleteUser removes the user and everything hanging off the wallet in one
// transaction: transaction log first, then holdings, then the user row.
func (r *Repo) DeleteUser(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE user_id = $1`, userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// ---- wallet ----

func (r *Repo) WalletBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := r.db.GetContext(ctx, &bal, `SELECT wallet_balance FROM users WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, err
	}
	return bal, nil
}

// AddFunds credits the wallet and appends a deposit record, atomically.
func (r *Repo) AddFunds(ctx context.Context, userID string, amount decimal.Decimal) (models.SettlementResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.SettlementResult{}, err
	}
	defer tx.Rollback()

	bal, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return models.SettlementResult{}, err
	}

	acct := ledger.NewAccount(bal)
	newBal, err := acct.Deposit(amount)
	if err != nil {
		return models.SettlementResult{}, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET wallet_balance = $1::numeric WHERE id = $2`, newBal.String(), userID); err != nil {
		return models.SettlementResult{}, err
	}

	t := models.Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Side:         models.SideDeposit,
		Quantity:     0,
		Price:        amount,
		TotalValue:   amount,
		BalanceAfter: newBal,
	}
	if err := insertTransaction(ctx, tx, &t); err != nil {
		return models.SettlementResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.SettlementResult{}, err
	}
	return models.SettlementResult{Transaction: t, NewBalance: newBal}, nil
}

// ---- settlement ----

// SettleTrade applies one validated trade as a single serializable unit:
// the user row is locked FOR UPDATE, then wallet, holding and transaction
// log are mutated inside the same database transaction. Two concurrent
// sells against the same holding serialize on the row lock, so both are
// checked against committed state.
//
// externalID, when non-empty, is used as the transaction id and acts as an
// idempotency guard: a replayed id fails with ErrDuplicateTransaction and
// applies nothing.
func (r *Repo) SettleTrade(ctx context.Context, userID string, side models.Side, symbol, name string, qty int64, price decimal.Decimal, externalID string) (models.SettlementResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.SettlementResult{}, err
	}
	defer tx.Rollback()

	if externalID != "" {
		var one int
		err := tx.GetContext(ctx, &one, `SELECT 1 FROM transactions WHERE id = $1`, externalID)
		if err == nil {
			return models.SettlementResult{}, ErrDuplicateTransaction
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return models.SettlementResult{}, err
		}
	}

	bal, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return models.SettlementResult{}, err
	}

	acct := ledger.NewAccount(bal)
	var h models.Holding
	err = tx.GetContext(ctx, &h,
		`SELECT user_id, symbol, name, quantity, avg_price, current_price, last_updated
		 FROM holdings WHERE user_id = $1 AND symbol = $2 FOR UPDATE`, userID, symbol)
	switch {
	case err == nil:
		acct.Positions[symbol] = ledger.Position{Symbol: symbol, Quantity: h.Quantity, AvgPrice: h.AvgPrice}
	case errors.Is(err, sql.ErrNoRows):
		// first trade on this symbol
	default:
		return models.SettlementResult{}, err
	}

	t := models.Transaction{
		ID:         externalID,
		UserID:     userID,
		Symbol:     symbol,
		Side:       side,
		Quantity:   qty,
		Price:      price,
		TotalValue: price.Mul(decimal.NewFromInt(qty)),
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	var newBal decimal.Decimal
	switch side {
	case models.SideBuy:
		newBal, err = acct.Buy(symbol, qty, price)
	case models.SideSell:
		var realized decimal.Decimal
		newBal, realized, err = acct.Sell(symbol, qty, price)
		t.RealizedPL = decimal.NewNullDecimal(realized)
	default:
		return models.SettlementResult{}, fmt.Errorf("unsupported side %q", side)
	}
	if err != nil {
		return models.SettlementResult{}, err
	}
	t.BalanceAfter = newBal

	if _, err := tx.ExecContext(ctx, `UPDATE users SET wallet_balance = $1::numeric WHERE id = $2`, newBal.String(), userID); err != nil {
		return models.SettlementResult{}, err
	}

	if pos, ok := acct.Positions[symbol]; ok {
		if name == "" {
			name = symbol
		}
		upsert := `INSERT INTO holdings (user_id, symbol, name, quantity, avg_price, current_price, last_updated)
		           VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, now())
		           ON CONFLICT (user_id, symbol) DO UPDATE
		           SET quantity = $4, avg_price = $5::numeric, current_price = $6::numeric, last_updated = now()`
		if _, err := tx.ExecContext(ctx, upsert, userID, symbol, name, pos.Quantity, pos.AvgPrice.String(), price.String()); err != nil {
			return models.SettlementResult{}, err
		}
	} else {
		if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE user_id = $1 AND symbol = $2`, userID, symbol); err != nil {
			return models.SettlementResult{}, err
		}
	}

	if err := insertTransaction(ctx, tx, &t); err != nil {
		if isUniqueViolation(err) {
			return models.SettlementResult{}, ErrDuplicateTransaction
		}
		return models.SettlementResult{}, err
	}

	// snapshot inside the transaction so the result matches what commits
	holdings, err := r.holdingsWith(ctx, tx, userID)
	if err != nil {
		return models.SettlementResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.SettlementResult{}, err
	}
	return models.SettlementResult{Transaction: t, NewBalance: newBal, Holdings: holdings}, nil
}

// RecordTransaction appends an externally settled entry to the log,
// applies its holding delta and syncs the wallet to its resulting balance,
// all in one transaction. Idempotent on the entry id: a duplicate is
// rejected and nothing is applied.
func (r *Repo) RecordTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Transaction{}, err
	}
	defer tx.Rollback()

	if _, err := lockBalance(ctx, tx, t.UserID); err != nil {
		return models.Transaction{}, err
	}

	if t.Side == models.SideBuy || t.Side == models.SideSell {
		if err := applyRecordedTrade(ctx, tx, &t); err != nil {
			return models.Transaction{}, err
		}
	}

	if err := insertTransaction(ctx, tx, &t); err != nil {
		if isUniqueViolation(err) {
			return models.Transaction{}, ErrDuplicateTransaction
		}
		return models.Transaction{}, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET wallet_balance = $1::numeric WHERE id = $2`, t.BalanceAfter.String(), t.UserID); err != nil {
		return models.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

// applyRecordedTrade folds an externally settled buy or sell into the
// holdings cache so the cache stays a pure projection of the transaction
// log. The wallet is synced to the caller-supplied balance, not recomputed,
// but holding quantities are still checked: an external sell beyond the
// held quantity fails closed.
func applyRecordedTrade(ctx context.Context, tx *sqlx.Tx, t *models.Transaction) error {
	var h models.Holding
	err := tx.GetContext(ctx, &h,
		`SELECT user_id, symbol, name, quantity, avg_price, current_price, last_updated
		 FROM holdings WHERE user_id = $1 AND symbol = $2 FOR UPDATE`, t.UserID, t.Symbol)
	pos := ledger.Position{Symbol: t.Symbol}
	switch {
	case err == nil:
		pos.Quantity = h.Quantity
		pos.AvgPrice = h.AvgPrice
	case errors.Is(err, sql.ErrNoRows):
		// first recorded trade on this symbol
	default:
		return err
	}

	switch t.Side {
	case models.SideBuy:
		pos.AvgPrice = ledger.AverageCost(pos.Quantity, pos.AvgPrice, t.Quantity, t.Price)
		pos.Quantity += t.Quantity
	case models.SideSell:
		if pos.Quantity == 0 {
			return ledger.ErrHoldingNotFound
		}
		if t.Quantity > pos.Quantity {
			return ledger.ErrInsufficientHoldings
		}
		pos.Quantity -= t.Quantity
	}

	if pos.Quantity == 0 {
		_, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE user_id = $1 AND symbol = $2`, t.UserID, t.Symbol)
		return err
	}

	name := h.Name
	if name == "" {
		name = t.Symbol
	}
	upsert := `INSERT INTO holdings (user_id, symbol, name, quantity, avg_price, current_price, last_updated)
	           VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, now())
	           ON CONFLICT (user_id, symbol) DO UPDATE
	           SET quantity = $4, avg_price = $5::numeric, current_price = $6::numeric, last_updated = now()`
	_, err = tx.ExecContext(ctx, upsert, t.UserID, t.Symbol, name, pos.Quantity, pos.AvgPrice.String(), t.Price.String())
	return err
}

func lockBalance(ctx context.Context, tx *sqlx.Tx, userID string) (decimal.Decimal, error) {
	var bal decimal.Decimal
	err := tx.GetContext(ctx, &bal, `SELECT wallet_balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, err
	}
	return bal, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t *models.Transaction) error {
	t.CreatedAt = time.Now().UTC()
	var realized interface{}
	if t.RealizedPL.Valid {
		realized = t.RealizedPL.Decimal.String()
	}
	q := `INSERT INTO transactions (id, user_id, symbol, side, quantity, price, total_value, realized_pl, balance_after, created_at)
	      VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8::numeric, $9::numeric, $10)`
	_, err := tx.ExecContext(ctx, q,
		t.ID, t.UserID, t.Symbol, t.Side, t.Quantity,
		t.Price.String(), t.TotalValue.String(), realized, t.BalanceAfter.String(), t.CreatedAt)
	return err
}

// ---- holdings and portfolio ----

func (r *Repo) GetHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	return r.holdingsWith(ctx, r.db, userID)
}

func (r *Repo) holdingsWith(ctx context.Context, q sqlx.QueryerContext, userID string) ([]models.Holding, error) {
	rows, err := q.QueryxContext(ctx,
		`SELECT user_id, symbol, name, quantity, avg_price, current_price, last_updated
		 FROM holdings WHERE user_id = $1 ORDER BY symbol`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.StructScan(&h); err != nil {
			r.log.Warnf("scan holding failed: %v", err)
			continue
		}
		res = append(res, h)
	}
	return res, nil
}

// GetPortfolio prices every holding at the latest recorded quote and
// attaches the transaction history, newest first.
func (r *Repo) GetPortfolio(ctx context.Context, userID string) (models.Portfolio, error) {
	holdings, err := r.GetHoldings(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}

	p := models.Portfolio{Holdings: []models.HoldingView{}}
	for _, h := range holdings {
		price := h.CurrentPrice
		if q, err := r.LatestQuote(ctx, h.Symbol); err == nil {
			price = q.Price
		}
		v := models.HoldingView{Holding: h}
		v.CurrentPrice = price
		qty := decimal.NewFromInt(h.Quantity)
		v.TotalValue = price.Mul(qty)
		v.TotalInvestment = h.AvgPrice.Mul(qty)
		v.ProfitLoss = v.TotalValue.Sub(v.TotalInvestment)
		if h.AvgPrice.Sign() > 0 {
			v.ProfitLossPercent = price.Sub(h.AvgPrice).Div(h.AvgPrice).Mul(decimal.NewFromInt(100)).Round(2)
		}
		p.Holdings = append(p.Holdings, v)
		p.TotalValue = p.TotalValue.Add(v.TotalValue)
		p.TotalInvestment = p.TotalInvestment.Add(v.TotalInvestment)
	}
	p.TotalProfitLoss = p.TotalValue.Sub(p.TotalInvestment)
	if p.TotalInvestment.Sign() > 0 {
		p.TotalProfitLossPercent = p.TotalProfitLoss.Div(p.TotalInvestment).Mul(decimal.NewFromInt(100)).Round(2)
	}

	p.Transactions, err = r.ListTransactions(ctx, userID)
	if err != nil {
		return models.Portfolio{}, err
	}
	return p, nil
}

// RebuildHoldings re-derives the holdings rows from the transaction log,
// which is the source of truth, and replaces whatever the cache held.
func (r *Repo) RebuildHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	txs, err := r.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	// oldest first for replay
	sort.Slice(txs, func(i, j int) bool { return txs[i].CreatedAt.Before(txs[j].CreatedAt) })

	acct := ledger.NewAccount(decimal.Zero)
	for _, t := range txs {
		switch t.Side {
		case models.SideBuy:
			pos := acct.Positions[t.Symbol]
			pos.Symbol = t.Symbol
			pos.AvgPrice = ledger.AverageCost(pos.Quantity, pos.AvgPrice, t.Quantity, t.Price)
			pos.Quantity += t.Quantity
			acct.Positions[t.Symbol] = pos
		case models.SideSell:
			pos := acct.Positions[t.Symbol]
			pos.Quantity -= t.Quantity
			if pos.Quantity <= 0 {
				delete(acct.Positions, t.Symbol)
			} else {
				acct.Positions[t.Symbol] = pos
			}
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}
	for _, pos := range acct.Positions {
		q := `INSERT INTO holdings (user_id, symbol, name, quantity, avg_price, current_price, last_updated)
		      VALUES ($1, $2, $2, $3, $4::numeric, $4::numeric, now())`
		if _, err := tx.ExecContext(ctx, q, userID, pos.Symbol, pos.Quantity, pos.AvgPrice.String()); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetHoldings(ctx, userID)
}

// ---- transaction log queries ----

func (r *Repo) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, user_id, symbol, side, quantity, price, total_value, realized_pl, balance_after, created_at
		 FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.StructScan(&t); err != nil {
			r.log.Warnf("scan transaction failed: %v", err)
			continue
		}
		res = append(res, t)
	}
	return res, nil
}

func (r *Repo) GetTransaction(ctx context.Context, userID, id string) (models.Transaction, error) {
	var t models.Transaction
	q := `SELECT id, user_id, symbol, side, quantity, price, total_value, realized_pl, balance_after, created_at
	      FROM transactions WHERE id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &t, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}
	return t, nil
}

func (r *Repo) TransactionStats(ctx context.Context, userID string) (models.TransactionStats, error) {
	var row statsRow
	q := `SELECT COUNT(*) AS total,
	             COUNT(*) FILTER (WHERE side = 'buy') AS buy_count,
	             COUNT(*) FILTER (WHERE side = 'sell') AS sell_count,
	             COALESCE(SUM(total_value) FILTER (WHERE side = 'buy'), 0) AS total_buy,
	             COALESCE(SUM(total_value) FILTER (WHERE side = 'sell'), 0) AS total_sell
	      FROM transactions WHERE user_id = $1 AND side IN ('buy', 'sell')`
	if err := r.db.GetContext(ctx, &row, q, userID); err != nil {
		return models.TransactionStats{}, err
	}

	stats := models.TransactionStats{
		TotalTransactions: row.Total,
		BuyCount:          row.BuyCount,
		SellCount:         row.SellCount,
		TotalBuyAmount:    row.TotalBuy,
		TotalSellAmount:   row.TotalSell,
		NetTrading:        row.TotalSell.Sub(row.TotalBuy),
	}

	recent, err := r.recentTransaction(ctx, userID)
	if err == nil {
		stats.Recent = &recent
	} else if !errors.Is(err, ErrNotFound) {
		return models.TransactionStats{}, err
	}
	return stats, nil
}

func (r *Repo) recentTransaction(ctx context.Context, userID string) (models.Transaction, error) {
	var t models.Transaction
	q := `SELECT id, user_id, symbol, side, quantity, price, total_value, realized_pl, balance_after, created_at
	      FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &t, q, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, ErrNotFound
		}
		return models.Transaction{}, err
	}
	return t, nil
}

// ---- watchlist and prices ----

func (r *Repo) ListStocks(ctx context.Context) ([]models.Stock, error) {
	res := []models.Stock{}
	if err := r.db.SelectContext(ctx, &res, `SELECT symbol, name FROM stocks ORDER BY symbol`); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) EnsureStockExists(ctx context.Context, symbol, name string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO stocks (symbol, name) VALUES ($1, $2) ON CONFLICT (symbol) DO NOTHING`, symbol, name)
	return err
}

func (r *Repo) UpsertPrice(ctx context.Context, q models.Quote) error {
	query := `INSERT INTO price_history (symbol, price, change_percent, volume, timestamp)
	          VALUES ($1, $2::numeric, $3::numeric, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, q.Symbol, q.Price.StringFixed(4), q.ChangePercent.StringFixed(4), q.Volume, q.Timestamp)
	return err
}

func (r *Repo) LatestQuote(ctx context.Context, symbol string) (models.Quote, error) {
	var row priceRow
	q := `SELECT symbol, price, change_percent, volume, timestamp
	      FROM price_history WHERE symbol = $1 ORDER BY timestamp DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &row, q, symbol); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quote{}, ErrNotFound
		}
		return models.Quote{}, err
	}
	return models.Quote{
		Symbol:        row.Symbol,
		Price:         row.Price,
		ChangePercent: row.ChangePercent,
		Volume:        row.Volume,
		Timestamp:     row.Timestamp,
	}, nil
}

// ---- demo asset catalogs ----

func (r *Repo) ListBonds(ctx context.Context) ([]models.Bond, error) {
	res := []models.Bond{}
	q := `SELECT id, name, issuer, interest_rate, maturity_date, face_value, price, minimum_investment, rating FROM bonds ORDER BY name`
	if err := r.db.SelectContext(ctx, &res, q); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) GetBond(ctx context.Context, id string) (models.Bond, error) {
	var b models.Bond
	q := `SELECT id, name, issuer, interest_rate, maturity_date, face_value, price, minimum_investment, rating FROM bonds WHERE id = $1`
	if err := r.db.GetContext(ctx, &b, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bond{}, ErrNotFound
		}
		return models.Bond{}, err
	}
	return b, nil
}

func (r *Repo) ListInsurancePolicies(ctx context.Context) ([]models.InsurancePolicy, error) {
	res := []models.InsurancePolicy{}
	q := `SELECT id, name, provider, premium_amount, coverage_amount, duration_months, type, description FROM insurance_policies ORDER BY name`
	if err := r.db.SelectContext(ctx, &res, q); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Repo) GetInsurancePolicy(ctx context.Context, id string) (models.InsurancePolicy, error) {
	var p models.InsurancePolicy
	q := `SELECT id, name, provider, premium_amount, coverage_amount, duration_months, type, description FROM insurance_policies WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.InsurancePolicy{}, ErrNotFound
		}
		return models.InsurancePolicy{}, err
	}
	return p, nil
}
