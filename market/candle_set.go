package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CandleSeries is the gap-tolerant, open-time ordered sequence of candles
// for one granularity. Intervals without ticks have no candle.
type CandleSeries struct {
	Granularity Granularity
	Candles     []Candle
}

func (cs CandleSeries) Len() int {
	return len(cs.Candles)
}

func (cs CandleSeries) Empty() bool {
	return len(cs.Candles) == 0
}

// Last returns the most recent candle.
func (cs CandleSeries) Last() (Candle, bool) {
	if len(cs.Candles) == 0 {
		return Candle{}, false
	}
	return cs.Candles[len(cs.Candles)-1], true
}

// Closes returns the close prices in series order.
func (cs CandleSeries) Closes() []decimal.Decimal {
	out := make([]decimal.Decimal, len(cs.Candles))
	for i, c := range cs.Candles {
		out[i] = c.Close
	}
	return out
}

// Validate checks every candle's price bounds, that every candle carries the
// series granularity, and that intervals strictly increase without overlap.
func (cs CandleSeries) Validate() error {
	if !cs.Granularity.Valid() {
		return fmt.Errorf("%w: series has unknown granularity %d", ErrInvalidInput, int(cs.Granularity))
	}
	for i, c := range cs.Candles {
		if c.Granularity != cs.Granularity {
			return fmt.Errorf("%w: candle %d is %s in a %s series", ErrInvalidInput, i, c.Granularity, cs.Granularity)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("candle %d: %w", i, err)
		}
		if i > 0 && c.Time.Before(cs.Candles[i-1].End()) {
			return fmt.Errorf("%w: candle %d at %s overlaps previous interval", ErrInvalidInput, i, c.Time)
		}
	}
	return nil
}

// RequireGranularity fails with ErrInvalidInput unless the series is g.
func (cs CandleSeries) RequireGranularity(g Granularity) error {
	if cs.Granularity != g {
		return fmt.Errorf("%w: need %s series, got %s", ErrInvalidInput, g, cs.Granularity)
	}
	return nil
}
