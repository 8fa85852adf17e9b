package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockDash/internal/logger"
	"StockDash/internal/metrics"
	"StockDash/internal/model"
	"StockDash/internal/store"
)

// QuoteSource fetches the latest quote of a symbol.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
}

// SymbolLister supplies the symbols the user currently follows.
type SymbolLister interface {
	List() []string
}

// ViewPruner drops idle chart views.
type ViewPruner interface {
	Prune(maxIdle time.Duration) int
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Quotes    QuoteSource
	Watchlist SymbolLister
	Overview  []string
	Board     *QuoteBoard
	Store     store.Store
	Views     ViewPruner
	Metrics   *metrics.Metrics
	Ctx       context.Context

	running sync.Mutex
	log     zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, quotes QuoteSource, wl SymbolLister, overview []string, st store.Store, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Quotes:    quotes,
		Watchlist: wl,
		Overview:  overview,
		Board:     NewQuoteBoard(),
		Store:     st,
		Metrics:   m,
		Ctx:       ctx,
		log:       logger.Component("scheduler"),
	}
}

// RegisterAll registers the quote refresh and housekeeping tasks.
func (s *Scheduler) RegisterAll(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshQuotes); err != nil {
		return fmt.Errorf("register quote refresh: %w", err)
	}
	if s.Views != nil {
		if _, err := s.Cron.AddFunc("@every 10m", func() {
			if n := s.Views.Prune(30 * time.Minute); n > 0 {
				s.log.Debug().Int("views", n).Msg("pruned idle chart views")
			}
		}); err != nil {
			return fmt.Errorf("register view pruning: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunNow executes the quote refresh immediately (startup warm-up).
func (s *Scheduler) RunNow() {
	s.refreshQuotes()
}

// Symbols returns the watchlist followed by overview symbols not on it.
func (s *Scheduler) Symbols() []string {
	var syms []string
	seen := map[string]bool{}
	if s.Watchlist != nil {
		for _, sym := range s.Watchlist.List() {
			if !seen[sym] {
				seen[sym] = true
				syms = append(syms, sym)
			}
		}
	}
	for _, sym := range s.Overview {
		if !seen[sym] {
			seen[sym] = true
			syms = append(syms, sym)
		}
	}
	return syms
}

func (s *Scheduler) refreshQuotes() {
	// Skip if the previous pass is still running.
	if !s.running.TryLock() {
		s.log.Warn().Msg("quote refresh still running, skipping")
		return
	}
	defer s.running.Unlock()

	start := time.Now()
	syms := s.Symbols()
	snaps := make([]model.QuoteSnapshot, 0, len(syms))
	failed := 0

	for _, sym := range syms {
		if s.Ctx.Err() != nil {
			return
		}
		q, err := s.Quotes.Quote(s.Ctx, sym)
		if err != nil {
			failed++
			s.log.Error().Err(err).Str("symbol", sym).Msg("quote refresh failed")
			continue
		}
		s.Board.Set(sym, *q)
		snaps = append(snaps, model.QuoteSnapshot{
			Symbol:        sym,
			Price:         q.RegularMarketPrice,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
			ObservedAt:    start,
		})
	}

	if s.Store != nil {
		if err := s.Store.RecordQuotes(s.Ctx, snaps); err != nil {
			s.log.Error().Err(err).Msg("record quote snapshots")
		}
	}
	elapsed := time.Since(start)
	if s.Metrics != nil {
		s.Metrics.QuoteRefreshDur.Observe(elapsed.Seconds())
	}
	s.log.Info().
		Int("symbols", len(syms)).
		Int("failed", failed).
		Dur("took", elapsed).
		Msg("quotes refreshed")
}
