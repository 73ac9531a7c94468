package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// scan targets for aggregate queries

type statsRow struct {
	Total     int64           `db:"total"`
	BuyCount  int64           `db:"buy_count"`
	SellCount int64           `db:"sell_count"`
	TotalBuy  decimal.Decimal `db:"total_buy"`
	TotalSell decimal.Decimal `db:"total_sell"`
}

type priceRow struct {
	Symbol        string          `db:"symbol"`
	Price         decimal.Decimal `db:"price"`
	ChangePercent decimal.Decimal `db:"change_percent"`
	Volume        int64           `db:"volume"`
	Timestamp     time.Time       `db:"timestamp"`
}
