package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"papertrade/internal/cache"
	"papertrade/internal/models"
)

// PriceSource supplies the current quote for a symbol. Settlement resolves
// its execution price here, never from client input.
type PriceSource interface {
	GetQuote(ctx context.Context, symbol string) (models.Quote, error)
}

// PriceStore is what the mock source needs to persist its ticks.
type PriceStore interface {
	UpsertPrice(ctx context.Context, q models.Quote) error
	LatestQuote(ctx context.Context, symbol string) (models.Quote, error)
	ListStocks(ctx context.Context) ([]models.Stock, error)
}

// Per-symbol ranges keep the generated ticks in a believable band.
var priceRanges = map[string][2]float64{
	"RELIANCE":  {2300, 2500},
	"TCS":       {3400, 3600},
	"HDFCBANK":  {1500, 1700},
	"INFY":      {1300, 1500},
	"ICICIBANK": {900, 1100},
}

// MockPriceSource stands in for a market feed: it serves the last persisted
// tick while fresh, otherwise generates a new one and records it to price
// history so watchlist and settlement see the same number.
type MockPriceSource struct {
	store     PriceStore
	freshness time.Duration
	log       *logrus.Logger
}

func NewMockPriceSource(store PriceStore, freshness time.Duration, log *logrus.Logger) *MockPriceSource {
	return &MockPriceSource{store: store, freshness: freshness, log: log}
}

func (p *MockPriceSource) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	q, err := p.store.LatestQuote(ctx, symbol)
	if err == nil && time.Since(q.Timestamp) < p.freshness {
		return q, nil
	}
	q = randomQuote(symbol)
	if err := p.store.UpsertPrice(ctx, q); err != nil {
		p.log.Warnf("persist generated tick for %s failed: %v", symbol, err)
	}
	return q, nil
}

// Start refreshes the whole watchlist on a ticker until ctx is cancelled.
func (p *MockPriceSource) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.log.Info("price updater stopping")
				return
			case <-ticker.C:
				stocks, err := p.store.ListStocks(ctx)
				if err != nil {
					p.log.Warnf("failed to fetch watchlist: %v", err)
					continue
				}
				for _, s := range stocks {
					q := randomQuote(s.Symbol)
					q.Name = s.Name
					if err := p.store.UpsertPrice(ctx, q); err != nil {
						p.log.Warnf("persist tick for %s failed: %v", s.Symbol, err)
					}
				}
			}
		}
	}()
}

func randomQuote(symbol string) models.Quote {
	rng, ok := priceRanges[symbol]
	if !ok {
		rng = [2]float64{500, 2000}
	}
	base := rng[0] + rand.Float64()*(rng[1]-rng[0])
	return models.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         decimal.NewFromFloat(base).Round(2),
		ChangePercent: decimal.NewFromFloat(rand.Float64()*5 - 2.5).Round(2),
		Volume:        int64(rand.Intn(900000) + 100000),
		DayHigh:       decimal.NewFromFloat(base * (1 + rand.Float64()*0.02)).Round(2),
		DayLow:        decimal.NewFromFloat(base * (1 - rand.Float64()*0.02)).Round(2),
		PreviousClose: decimal.NewFromFloat(base * (1 + rand.Float64()*0.04 - 0.02)).Round(2),
		Timestamp:     time.Now().UTC(),
	}
}

// CachedPriceSource checks the Redis cache before hitting the wrapped
// source, typically the live API.
type CachedPriceSource struct {
	src   PriceSource
	cache *cache.QuoteCache
}

func NewCachedPriceSource(src PriceSource, c *cache.QuoteCache) *CachedPriceSource {
	return &CachedPriceSource{src: src, cache: c}
}

func (s *CachedPriceSource) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	if q, ok := s.cache.GetQuote(ctx, symbol); ok {
		return q, nil
	}
	q, err := s.src.GetQuote(ctx, symbol)
	if err != nil {
		return models.Quote{}, err
	}
	s.cache.SetQuote(ctx, q)
	return q, nil
}
