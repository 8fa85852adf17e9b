package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"StockDash/internal/model"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ListWatchlist handles GET /api/watchlist.
func (h *Handler) ListWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symbols": h.watchlist.List()})
}

type addSymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// AddToWatchlist handles POST /api/watchlist.
func (h *Handler) AddToWatchlist(c *gin.Context) {
	var req addSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleValidationError(c, err)
		return
	}
	symbol, err := h.validator.ValidateSymbol(req.Symbol)
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	added, err := h.watchlist.Add(c.Request.Context(), symbol)
	if err != nil {
		h.handleError(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"added": added, "symbols": h.watchlist.List()})
}

// RemoveFromWatchlist handles DELETE /api/watchlist/:symbol.
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	symbol, err := h.validator.ValidateSymbol(c.Param("symbol"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}
	if err := h.watchlist.Remove(c.Request.Context(), symbol); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbols": h.watchlist.List()})
}

// WatchlistQuotes handles GET /api/watchlist/quotes.
func (h *Handler) WatchlistQuotes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()
	c.JSON(http.StatusOK, gin.H{"quotes": h.collectQuotes(ctx, h.watchlist.List())})
}

// WatchlistStream handles GET /ws/watchlist. The client receives the current
// list, then one message per change until it disconnects.
func (h *Handler) WatchlistStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("request_id", requestID(c)).Msg("websocket upgrade failed")
		return
	}

	events, cancel := h.watchlist.Subscribe()
	defer cancel()
	if h.metrics != nil {
		h.metrics.WSClients.Inc()
		defer h.metrics.WSClients.Dec()
	}
	h.log.Info().Str("request_id", requestID(c)).Msg("watchlist stream opened")

	done := make(chan struct{})
	go readPump(conn, done)
	writePump(conn, h.watchlist.Snapshot(), events, done)

	h.log.Info().Str("request_id", requestID(c)).Msg("watchlist stream closed")
}

// readPump discards client messages and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, initial any, events <-chan model.WatchlistEvent, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(initial); err != nil {
		return
	}
	for {
		select {
		case evt, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
