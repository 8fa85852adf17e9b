// Package watchlist holds the ordered set of symbols the user follows and
// notifies subscribers of every change.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockDash/internal/logger"
	"StockDash/internal/metrics"
	"StockDash/internal/model"
	"StockDash/internal/store"
)

// ErrNotFound is returned when removing a symbol that is not on the list.
var ErrNotFound = errors.New("symbol not on watchlist")

// subscriberBuffer is the per-subscriber event queue depth. Events beyond it
// are dropped for that subscriber.
const subscriberBuffer = 16

// Watchlist is an observable ordered list of unique upper-case symbols.
type Watchlist struct {
	mu      sync.RWMutex
	symbols []string
	store   store.Store
	metrics *metrics.Metrics

	subMu  sync.Mutex
	subs   map[int]chan model.WatchlistEvent
	nextID int

	log zerolog.Logger
}

// Load restores the watchlist from st, seeding it with defaults when nothing
// was ever saved.
func Load(ctx context.Context, st store.Store, defaults []string, m *metrics.Metrics) (*Watchlist, error) {
	w := &Watchlist{
		store:   st,
		metrics: m,
		subs:    make(map[int]chan model.WatchlistEvent),
		log:     logger.Component("watchlist"),
	}

	syms, saved, err := st.LoadWatchlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	if !saved {
		syms = dedupe(defaults)
		if err := st.SaveWatchlist(ctx, syms); err != nil {
			return nil, fmt.Errorf("seed watchlist: %w", err)
		}
		w.log.Info().Strs("symbols", syms).Msg("watchlist seeded with defaults")
	}
	w.symbols = syms
	w.observeSize(len(syms))
	return w, nil
}

// Normalize trims and upper-cases a symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// List returns a copy of the symbols in display order.
func (w *Watchlist) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]string{}, w.symbols...)
}

// Contains reports whether symbol is on the list.
func (w *Watchlist) Contains(symbol string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return indexOf(w.symbols, Normalize(symbol)) >= 0
}

// Add appends symbol. Adding a symbol already present is a no-op and reports
// added=false.
func (w *Watchlist) Add(ctx context.Context, symbol string) (added bool, err error) {
	sym := Normalize(symbol)
	if sym == "" {
		return false, errors.New("empty symbol")
	}

	w.mu.Lock()
	if indexOf(w.symbols, sym) >= 0 {
		w.mu.Unlock()
		return false, nil
	}
	next := append(append([]string{}, w.symbols...), sym)
	if err := w.store.SaveWatchlist(ctx, next); err != nil {
		w.mu.Unlock()
		return false, fmt.Errorf("save watchlist: %w", err)
	}
	w.symbols = next
	// Fan out before releasing mu so subscribers see changes in commit order.
	w.broadcast(model.WatchlistEvent{Type: model.WatchlistAdded, Symbol: sym, Symbols: next, At: time.Now()})
	w.observeSize(len(next))
	w.mu.Unlock()

	w.log.Info().Str("symbol", sym).Msg("symbol added")
	return true, nil
}

// Remove deletes symbol from the list.
func (w *Watchlist) Remove(ctx context.Context, symbol string) error {
	sym := Normalize(symbol)

	w.mu.Lock()
	i := indexOf(w.symbols, sym)
	if i < 0 {
		w.mu.Unlock()
		return fmt.Errorf("%s: %w", sym, ErrNotFound)
	}
	next := make([]string, 0, len(w.symbols)-1)
	next = append(next, w.symbols[:i]...)
	next = append(next, w.symbols[i+1:]...)
	if err := w.store.SaveWatchlist(ctx, next); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("save watchlist: %w", err)
	}
	w.symbols = next
	w.broadcast(model.WatchlistEvent{Type: model.WatchlistRemoved, Symbol: sym, Symbols: next, At: time.Now()})
	w.observeSize(len(next))
	w.mu.Unlock()

	w.log.Info().Str("symbol", sym).Msg("symbol removed")
	return nil
}

// Subscribe registers for change events. The returned cancel func
// unregisters and closes the channel; it is safe to call more than once.
func (w *Watchlist) Subscribe() (<-chan model.WatchlistEvent, func()) {
	ch := make(chan model.WatchlistEvent, subscriberBuffer)

	w.subMu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = ch
	w.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.subMu.Lock()
			delete(w.subs, id)
			w.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Snapshot returns an event describing the current list.
func (w *Watchlist) Snapshot() model.WatchlistEvent {
	return model.WatchlistEvent{Type: model.WatchlistSnapshot, Symbols: w.List(), At: time.Now()}
}

// broadcast must be called with mu held.
func (w *Watchlist) broadcast(evt model.WatchlistEvent) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	for id, ch := range w.subs {
		select {
		case ch <- evt:
		default:
			w.log.Warn().Int("subscriber", id).Str("event", string(evt.Type)).Msg("subscriber queue full, event dropped")
		}
	}
}

func (w *Watchlist) observeSize(n int) {
	if w.metrics == nil {
		return
	}
	w.metrics.WatchlistSize.Set(float64(n))
}

func indexOf(symbols []string, sym string) int {
	for i, s := range symbols {
		if s == sym {
			return i
		}
	}
	return -1
}

func dedupe(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = Normalize(s)
		if s != "" && indexOf(out, s) < 0 {
			out = append(out, s)
		}
	}
	return out
}
