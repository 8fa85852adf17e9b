package collector

import (
	"fmt"
	"time"
)

// Timeframe is a resolved chart range: the bar interval and the lookback window.
type Timeframe struct {
	Range    string
	Interval string
	Period1  time.Time
	Period2  time.Time
}

type rangeSpec struct {
	interval string
	lookback time.Duration // zero means since epoch
}

var ranges = map[string]rangeSpec{
	"1d":  {"5m", 24 * time.Hour},
	"5d":  {"15m", 5 * 24 * time.Hour},
	"1mo": {"60m", 30 * 24 * time.Hour},
	"3mo": {"1d", 90 * 24 * time.Hour},
	"6mo": {"1d", 180 * 24 * time.Hour},
	"1y":  {"1d", 365 * 24 * time.Hour},
	"5y":  {"1d", 5 * 365 * 24 * time.Hour},
	"max": {"1wk", 0},
}

var intervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true, "60m": true, "90m": true,
	"1h": true, "1d": true, "5d": true, "1wk": true, "1mo": true, "3mo": true,
}

// DefaultRange is used when the caller does not pick one.
const DefaultRange = "1mo"

// SupportedInterval reports whether interval is a known bar interval.
func SupportedInterval(interval string) bool {
	return intervals[interval]
}

// ResolveTimeframe picks the bar interval and lookback for a range. An
// explicit interval overrides the range's default; unknown ranges get daily
// bars over the default one-month window.
func ResolveTimeframe(rng, interval string, now time.Time) (Timeframe, error) {
	if rng == "" {
		rng = DefaultRange
	}
	spec, ok := ranges[rng]
	if !ok {
		spec = rangeSpec{interval: "1d", lookback: ranges[DefaultRange].lookback}
	}
	if interval == "" {
		interval = spec.interval
	} else if !SupportedInterval(interval) {
		return Timeframe{}, fmt.Errorf("unsupported interval %q", interval)
	}

	tf := Timeframe{Range: rng, Interval: interval, Period2: now}
	if spec.lookback == 0 {
		tf.Period1 = time.Unix(0, 0)
	} else {
		tf.Period1 = now.Add(-spec.lookback)
	}
	return tf, nil
}
