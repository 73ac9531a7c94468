package service

import (
	"context"
	"fmt"
	"sort"

	"papertrade/internal/models"
)

// Suggestions fetches quotes for the configured watchlist and ranks them by
// momentum. Symbols whose quote fails are skipped, not fatal.
func (s *TradingService) Suggestions(ctx context.Context) ([]models.Suggestion, error) {
	quotes := make([]models.Quote, 0, len(s.cfg.Watchlist))
	for _, symbol := range s.cfg.Watchlist {
		q, err := s.prices.GetQuote(ctx, symbol)
		if err != nil {
			s.log.Warnf("quote for %s unavailable, skipping: %v", symbol, err)
			continue
		}
		quotes = append(quotes, q)
	}
	return RankSuggestions(quotes), nil
}

// RankSuggestions labels each quote buy or sell by the sign of its change
// and orders the result by absolute change magnitude, strongest move first.
func RankSuggestions(quotes []models.Quote) []models.Suggestion {
	res := make([]models.Suggestion, 0, len(quotes))
	for _, q := range quotes {
		s := models.Suggestion{
			Symbol:        q.Symbol,
			Price:         q.Price,
			ChangePercent: q.ChangePercent,
			Volume:        q.Volume,
		}
		if q.ChangePercent.Sign() > 0 {
			s.Action = models.SideBuy
			s.Reason = fmt.Sprintf("Positive momentum with %s%% gain", q.ChangePercent.StringFixed(2))
		} else {
			s.Action = models.SideSell
			s.Reason = fmt.Sprintf("Downward trend with %s%% loss", q.ChangePercent.Abs().StringFixed(2))
		}
		res = append(res, s)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].ChangePercent.Abs().GreaterThan(res[j].ChangePercent.Abs())
	})
	return res
}
