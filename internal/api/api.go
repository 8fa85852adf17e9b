// Package api exposes the dashboard backend over HTTP and websocket.
//
// Layout:
//   - api.go: Handler, its dependencies and routing
//   - handler.go: market data handlers
//   - watchlist.go: watchlist handlers and the websocket stream
//   - middleware.go: request id, access log, CORS
//   - validator.go: request validation
//   - errors.go: error to status mapping
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"StockDash/internal/calculator"
	"StockDash/internal/collector"
	"StockDash/internal/logger"
	"StockDash/internal/metrics"
	"StockDash/internal/model"
)

const (
	DefaultTimeout      = 30 * time.Second
	ServiceName         = "stockdash"
	ServiceVersion      = "1.0.0"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
	ViewIDHeaderKey     = "X-View-ID"
)

// MarketService fetches market data and computes charts.
type MarketService interface {
	Timeframe(rng, interval string) (collector.Timeframe, error)
	LoadChart(ctx context.Context, viewID, symbol string, tf collector.Timeframe, cfg *calculator.IndicatorConfig) (*model.ChartResponse, error)
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
	News(ctx context.Context, symbol string, count int) ([]model.NewsItem, error)
}

// WatchlistService is the observable watchlist.
type WatchlistService interface {
	List() []string
	Contains(symbol string) bool
	Add(ctx context.Context, symbol string) (bool, error)
	Remove(ctx context.Context, symbol string) error
	Subscribe() (<-chan model.WatchlistEvent, func())
	Snapshot() model.WatchlistEvent
}

// QuoteCache serves quotes kept fresh by the refresh job.
type QuoteCache interface {
	Get(symbol string) (model.Quote, bool)
	UpdatedAt() time.Time
}

// QuoteHistory serves persisted quote snapshots.
type QuoteHistory interface {
	RecentQuotes(ctx context.Context, symbol string, limit int) ([]model.QuoteSnapshot, error)
}

// Deps groups the collaborators of Handler.
type Deps struct {
	Market    MarketService
	Watchlist WatchlistService
	Quotes    QuoteCache
	History   QuoteHistory
	Overview  []string
	Metrics   *metrics.Metrics
}

// Handler handles HTTP requests using Gin framework.
type Handler struct {
	market    MarketService
	watchlist WatchlistService
	quotes    QuoteCache
	history   QuoteHistory
	overview  []string
	metrics   *metrics.Metrics
	validator *Validator
	log       zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	return &Handler{
		market:    d.Market,
		watchlist: d.Watchlist,
		quotes:    d.Quotes,
		history:   d.History,
		overview:  d.Overview,
		metrics:   d.Metrics,
		validator: GetValidator(),
		log:       logger.Component("api"),
	}
}

// SetupRoutes configures all API routes.
func (h *Handler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware(h.log))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	api := router.Group("/api")
	api.GET("/chart", h.GetChart)
	api.POST("/indicators", h.ComputeIndicators)
	api.GET("/quote", h.GetQuote)
	api.GET("/quote/history", h.GetQuoteHistory)
	api.GET("/search", h.Search)
	api.GET("/news", h.GetNews)
	api.GET("/overview", h.GetOverview)

	api.GET("/watchlist", h.ListWatchlist)
	api.POST("/watchlist", h.AddToWatchlist)
	api.DELETE("/watchlist/:symbol", h.RemoveFromWatchlist)
	api.GET("/watchlist/quotes", h.WatchlistQuotes)

	router.GET("/ws/watchlist", h.WatchlistStream)
	router.GET("/health", h.HealthCheck)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}
	return router
}
