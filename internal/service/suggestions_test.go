package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertrade/internal/models"
)

func TestRankSuggestionsOrdersByMagnitude(t *testing.T) {
	quotes := []models.Quote{
		{Symbol: "RELIANCE", Price: decimal.NewFromInt(2400), ChangePercent: decimal.NewFromFloat(1.2)},
		{Symbol: "TCS", Price: decimal.NewFromInt(3500), ChangePercent: decimal.NewFromFloat(-3.4)},
		{Symbol: "INFY", Price: decimal.NewFromInt(1400), ChangePercent: decimal.NewFromFloat(0.5)},
	}

	ranked := RankSuggestions(quotes)
	require.Len(t, ranked, 3)

	assert.Equal(t, "TCS", ranked[0].Symbol)
	assert.Equal(t, models.SideSell, ranked[0].Action)
	assert.Equal(t, "Downward trend with 3.40% loss", ranked[0].Reason)

	assert.Equal(t, "RELIANCE", ranked[1].Symbol)
	assert.Equal(t, models.SideBuy, ranked[1].Action)
	assert.Equal(t, "Positive momentum with 1.20% gain", ranked[1].Reason)

	assert.Equal(t, "INFY", ranked[2].Symbol)
	assert.Equal(t, models.SideBuy, ranked[2].Action)
}

func TestRankSuggestionsZeroChangeIsSell(t *testing.T) {
	ranked := RankSuggestions([]models.Quote{
		{Symbol: "HDFCBANK", Price: decimal.NewFromInt(1600), ChangePercent: decimal.Zero},
	})
	require.Len(t, ranked, 1)
	assert.Equal(t, models.SideSell, ranked[0].Action)
}

func TestSuggestionsSkipsFailingSymbols(t *testing.T) {
	svc, _, prices := newTestService(t)
	// watchlist is RELIANCE, TCS, INFY; only two have quotes
	prices.set("RELIANCE", 2400, 1.2)
	prices.set("INFY", 1400, -0.8)

	out, err := svc.Suggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "RELIANCE", out[0].Symbol)
	assert.Equal(t, "INFY", out[1].Symbol)
}
