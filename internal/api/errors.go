package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"StockDash/internal/calculator"
	"StockDash/internal/collector"
	"StockDash/internal/watchlist"
)

// statusFor maps a service error to an HTTP status and a client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, calculator.ErrInvalidPeriod),
		errors.Is(err, calculator.ErrNonFinitePrice),
		errors.Is(err, calculator.ErrUnorderedBars):
		return http.StatusUnprocessableEntity, "invalid indicator input"
	case errors.Is(err, collector.ErrSuperseded):
		return http.StatusConflict, "superseded by a newer request"
	case errors.Is(err, watchlist.ErrNotFound):
		return http.StatusNotFound, "symbol not on watchlist"
	case errors.Is(err, collector.ErrNoData), upstreamNotFound(err):
		return http.StatusNotFound, "no data for symbol"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timeout"
	default:
		return http.StatusBadGateway, "upstream data provider error"
	}
}

// upstreamNotFound reports a provider 404, which Yahoo returns for unknown
// symbols.
func upstreamNotFound(err error) bool {
	var statusErr *collector.HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func requestID(c *gin.Context) string {
	if id := c.GetString(RequestIDContextKey); id != "" {
		return id
	}
	return "unknown"
}

// handleError logs err and sends the mapped status.
func (h *Handler) handleError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	evt := h.log.Error()
	if status < 500 {
		evt = h.log.Warn()
	}
	evt.Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg("request failed")

	c.JSON(status, gin.H{
		"error":      msg,
		"details":    err.Error(),
		"request_id": requestID(c),
	})
}

func (h *Handler) handleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "invalid request",
		"details":    err.Error(),
		"request_id": requestID(c),
	})
}
