// Package market talks to the external market-data API.
package market

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"papertrade/internal/config"
	"papertrade/internal/models"
)

var ErrNoQuoteData = errors.New("no quote data available")

// AlphaVantage fetches GLOBAL_QUOTE snapshots. The API key is sent as a
// request-scoped query parameter on every call; the client carries no
// ambient auth state.
type AlphaVantage struct {
	client *resty.Client
	apiKey string
	log    *logrus.Logger
}

func NewAlphaVantage(cfg *config.Config, log *logrus.Logger) *AlphaVantage {
	client := resty.New().
		SetTimeout(cfg.Market.Timeout).
		SetBaseURL(cfg.Market.AlphaVantageURL)
	return &AlphaVantage{client: client, apiKey: cfg.Market.APIKey, log: log}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol        string `json:"01. symbol"`
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		PreviousClose string `json:"08. previous close"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

func (a *AlphaVantage) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   a.apiKey,
		}).
		Get("/query")
	if err != nil {
		a.log.Warnf("alpha vantage request failed for %s: %v", symbol, err)
		return models.Quote{}, err
	}

	var raw globalQuoteResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return models.Quote{}, err
	}
	if raw.GlobalQuote.Price == "" {
		return models.Quote{}, ErrNoQuoteData
	}

	price, err := decimal.NewFromString(raw.GlobalQuote.Price)
	if err != nil {
		return models.Quote{}, err
	}
	change, err := decimal.NewFromString(strings.TrimSuffix(raw.GlobalQuote.ChangePercent, "%"))
	if err != nil {
		return models.Quote{}, err
	}
	volume, _ := strconv.ParseInt(raw.GlobalQuote.Volume, 10, 64)
	dayHigh, _ := decimal.NewFromString(raw.GlobalQuote.High)
	dayLow, _ := decimal.NewFromString(raw.GlobalQuote.Low)
	prevClose, _ := decimal.NewFromString(raw.GlobalQuote.PreviousClose)

	return models.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         price,
		ChangePercent: change,
		Volume:        volume,
		DayHigh:       dayHigh,
		DayLow:        dayLow,
		PreviousClose: prevClose,
		Timestamp:     time.Now().UTC(),
	}, nil
}
