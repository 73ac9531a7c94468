package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"papertrade/internal/cache"
	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/handlers"
	"papertrade/internal/market"
	"papertrade/internal/middleware"
	"papertrade/internal/service"
)

func main() {
	cfg := config.MustLoad()

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	repo := database.New(db, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// migrations seed the default watchlist; this covers custom ones
	for _, symbol := range cfg.Watchlist {
		if err := repo.EnsureStockExists(ctx, symbol, symbol); err != nil {
			logger.Warnf("ensure stock %s failed: %v", symbol, err)
		}
	}

	prices := buildPriceSource(ctx, cfg, repo, logger)

	trading := service.NewTradingService(cfg, repo, prices, logger)
	auth := service.NewAuthService(cfg, repo, logger)
	h := handlers.New(trading, auth, logger)

	rg := gin.Default()
	rg.GET("/health", h.Health)

	api := rg.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/stocks", h.GetStocks)
	api.GET("/stocks/:symbol", h.GetStockDetails)
	api.GET("/suggestions", h.GetSuggestions)
	api.GET("/bonds", h.GetBonds)
	api.GET("/bonds/:id", h.GetBond)
	api.GET("/insurance", h.GetInsurancePolicies)
	api.GET("/insurance/:id", h.GetInsurancePolicy)

	authed := api.Group("/")
	authed.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	authed.GET("/auth/me", h.GetProfile)
	authed.DELETE("/auth/me", h.DeleteAccount)
	authed.POST("/stocks/buy", h.BuyStock)
	authed.POST("/stocks/sell", h.SellStock)
	authed.POST("/bonds/buy", h.BuyBond)
	authed.GET("/portfolio", h.GetPortfolio)
	authed.GET("/wallet", h.GetWalletBalance)
	authed.POST("/wallet/add", h.AddFunds)
	authed.GET("/transactions", h.GetTransactions)
	authed.GET("/transactions/stats", h.GetTransactionStats)
	authed.GET("/transactions/:id", h.GetTransaction)
	authed.POST("/transactions", h.RecordTransaction)

	logger.Infof("server starting on :%s", cfg.Port)
	if err := rg.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

// buildPriceSource wires the configured provider, with the redis quote
// cache layered on top when an addr is configured.
func buildPriceSource(ctx context.Context, cfg *config.Config, repo *database.Repo, logger *logrus.Logger) service.PriceSource {
	var src service.PriceSource
	switch cfg.Market.Provider {
	case "alphavantage":
		src = market.NewAlphaVantage(cfg, logger)
	default:
		mock := service.NewMockPriceSource(repo, cfg.Market.QuoteFreshness, logger)
		mock.Start(ctx, cfg.Market.RefreshInterval)
		src = mock
	}

	if cfg.Redis.Addr == "" {
		return src
	}
	rdb, err := cache.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warnf("redis unavailable, serving quotes uncached: %v", err)
		return src
	}
	return service.NewCachedPriceSource(src, cache.NewQuoteCache(rdb, cfg.Market.CacheTTL, logger))
}
