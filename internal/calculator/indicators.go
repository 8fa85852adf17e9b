package calculator

import (
	"fmt"

	"StockDash/internal/model"
)

// MACDConfig holds the three MACD periods.
type MACDConfig struct {
	Fast   int `yaml:"fast" json:"fast"`
	Slow   int `yaml:"slow" json:"slow"`
	Signal int `yaml:"signal" json:"signal"`
}

// IndicatorConfig selects the periods used by ComputeIndicators. Zero-valued
// fields fall back to the defaults.
type IndicatorConfig struct {
	EMAPeriods []int      `yaml:"ema_periods" json:"emaPeriods"`
	RSIPeriod  int        `yaml:"rsi_period" json:"rsiPeriod"`
	MACD       MACDConfig `yaml:"macd" json:"macd"`
}

// DefaultIndicatorConfig returns EMA 9/20, RSI 14 and MACD 12/26/9.
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		EMAPeriods: []int{9, 20},
		RSIPeriod:  14,
		MACD:       MACDConfig{Fast: 12, Slow: 26, Signal: 9},
	}
}

// WithDefaults returns a copy with every unset field taken from the defaults.
func (c IndicatorConfig) WithDefaults() IndicatorConfig {
	def := DefaultIndicatorConfig()
	if c.EMAPeriods == nil {
		c.EMAPeriods = def.EMAPeriods
	} else {
		c.EMAPeriods = append([]int(nil), c.EMAPeriods...)
	}
	if c.RSIPeriod == 0 {
		c.RSIPeriod = def.RSIPeriod
	}
	if c.MACD.Fast == 0 {
		c.MACD.Fast = def.MACD.Fast
	}
	if c.MACD.Slow == 0 {
		c.MACD.Slow = def.MACD.Slow
	}
	if c.MACD.Signal == 0 {
		c.MACD.Signal = def.MACD.Signal
	}
	return c
}

// Validate checks that every period is usable.
func (c IndicatorConfig) Validate() error {
	for _, p := range c.EMAPeriods {
		if p <= 0 {
			return fmt.Errorf("ema period %d: %w", p, ErrInvalidPeriod)
		}
	}
	if c.RSIPeriod <= 0 {
		return fmt.Errorf("rsi period %d: %w", c.RSIPeriod, ErrInvalidPeriod)
	}
	m := c.MACD
	if m.Fast <= 0 || m.Slow <= 0 || m.Signal <= 0 {
		return fmt.Errorf("macd periods %d/%d/%d: %w", m.Fast, m.Slow, m.Signal, ErrInvalidPeriod)
	}
	if m.Fast >= m.Slow {
		return fmt.Errorf("macd fast period %d must be below slow period %d: %w", m.Fast, m.Slow, ErrInvalidPeriod)
	}
	return nil
}

// ComputeIndicators runs every configured indicator over the close prices of
// bars and pins the results back onto the bar timeline. A nil cfg means the
// defaults. Indicators whose warm-up exceeds the series come back empty; only
// malformed bars or periods produce an error. bars is never modified.
func ComputeIndicators(bars model.BarSeries, cfg *IndicatorConfig) (*model.IndicatorBundle, error) {
	c := DefaultIndicatorConfig()
	if cfg != nil {
		c = cfg.WithDefaults()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := checkBars(bars); err != nil {
		return nil, err
	}

	closes := bars.Closes()
	bundle := &model.IndicatorBundle{EMA: make(map[int][]model.IndicatorPoint, len(c.EMAPeriods))}

	for _, p := range c.EMAPeriods {
		if _, done := bundle.EMA[p]; done {
			continue
		}
		values, err := CalculateEMA(closes, p)
		if err != nil {
			return nil, err
		}
		bundle.EMA[p] = AlignSeries(bars, values, EMAOffset(p))
	}

	rsi, err := CalculateRSI(closes, c.RSIPeriod)
	if err != nil {
		return nil, err
	}
	bundle.RSI = AlignSeries(bars, rsi, RSIOffset(c.RSIPeriod))

	macd, err := CalculateMACD(closes, c.MACD.Fast, c.MACD.Slow, c.MACD.Signal)
	if err != nil {
		return nil, err
	}
	bundle.MACD = AlignMACD(bars, macd, MACDOffset(c.MACD.Slow, c.MACD.Signal))

	return bundle, nil
}

func checkBars(bars model.BarSeries) error {
	for i, b := range bars {
		fields := [...]struct {
			name  string
			value float64
		}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}}
		for _, f := range fields {
			if !validPrice(f.value) {
				return fmt.Errorf("bar %d (time %d) %s is %v: %w", i, b.Time, f.name, f.value, ErrNonFinitePrice)
			}
		}
		if i > 0 && b.Time <= bars[i-1].Time {
			return fmt.Errorf("bar %d time %d not after %d: %w", i, b.Time, bars[i-1].Time, ErrUnorderedBars)
		}
	}
	return nil
}
