package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"StockDash/internal/calculator"
	"StockDash/internal/model"
)

// GetChart handles GET /api/chart.
func (h *Handler) GetChart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Query("symbol"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	tf, err := h.market.Timeframe(sanitizeInput(c.Query("range")), sanitizeInput(c.Query("interval")))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	resp, err := h.market.LoadChart(ctx, c.GetHeader(ViewIDHeaderKey), symbol, tf, nil)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if h.watchlist != nil {
		resp.Watched = h.watchlist.Contains(symbol)
	}
	c.JSON(http.StatusOK, resp)
}

// IndicatorsRequest is the body of POST /api/indicators.
type IndicatorsRequest struct {
	Bars   model.BarSeries             `json:"bars" binding:"required"`
	Config *calculator.IndicatorConfig `json:"config"`
}

// ComputeIndicators handles POST /api/indicators: indicators over caller-supplied bars.
func (h *Handler) ComputeIndicators(c *gin.Context) {
	var req IndicatorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}

	start := time.Now()
	bundle, err := calculator.ComputeIndicators(req.Bars, req.Config)
	h.metrics.ObserveIndicatorCompute(time.Since(start))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// GetQuote handles GET /api/quote.
func (h *Handler) GetQuote(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Query("symbol"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	q, err := h.market.Quote(ctx, symbol)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetQuoteHistory handles GET /api/quote/history: snapshots recorded by the
// refresh job, newest first.
func (h *Handler) GetQuoteHistory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Query("symbol"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	limit, err := h.validator.ValidateHistoryLimit(c.Query("limit"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote history disabled", "request_id": requestID(c)})
		return
	}
	snaps, err := h.history.RecentQuotes(ctx, symbol, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "snapshots": snaps})
}

// Search handles GET /api/search.
func (h *Handler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	q, err := h.validator.ValidateQuery(c.Query("q"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	res, err := h.market.Search(ctx, q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": res})
}

// GetNews handles GET /api/news.
func (h *Handler) GetNews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	symbol, err := h.validator.ValidateSymbol(c.Query("symbol"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	count, err := h.validator.ValidateCount(c.Query("count"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	news, err := h.market.News(ctx, symbol, count)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": news})
}

// GetOverview handles GET /api/overview: quotes of the market index symbols.
func (h *Handler) GetOverview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()
	c.JSON(http.StatusOK, gin.H{"quotes": h.collectQuotes(ctx, h.overview)})
}

// collectQuotes returns quotes of symbols in order, preferring the refresh
// cache and fetching live on a miss. Symbols that fail are skipped.
func (h *Handler) collectQuotes(ctx context.Context, symbols []string) []model.Quote {
	out := make([]model.Quote, 0, len(symbols))
	for _, sym := range symbols {
		if h.quotes != nil {
			if q, ok := h.quotes.Get(sym); ok {
				out = append(out, q)
				continue
			}
		}
		q, err := h.market.Quote(ctx, sym)
		if err != nil {
			h.log.Warn().Err(err).Str("symbol", sym).Msg("quote unavailable")
			continue
		}
		out = append(out, *q)
	}
	return out
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	}
	if h.quotes != nil {
		if at := h.quotes.UpdatedAt(); !at.IsZero() {
			body["quotes_updated_at"] = at.UTC().Format(time.RFC3339)
		}
	}
	c.JSON(http.StatusOK, body)
}
