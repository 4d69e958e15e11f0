package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Candle represents OHLC (Open, High, Low, Close) candlestick data for the
// half-open interval [Time, Time+Granularity.Duration()).
type Candle struct {
	Open  decimal.Decimal
	High  decimal.Decimal
	Low   decimal.Decimal
	Close decimal.Decimal

	Time        time.Time
	Granularity Granularity
}

// newCandle builds a candle from a closed, non-empty bucket of ticks in
// arrival order.
func newCandle(open time.Time, g Granularity, bucket []Tick, prec Precision) Candle {
	hi := bucket[0].Price
	lo := bucket[0].Price
	for _, t := range bucket[1:] {
		if t.Price.GreaterThan(hi) {
			hi = t.Price
		}
		if t.Price.LessThan(lo) {
			lo = t.Price
		}
	}

	return Candle{
		Open:        prec.Round(bucket[0].Price),
		High:        prec.Round(hi),
		Low:         prec.Round(lo),
		Close:       prec.Round(bucket[len(bucket)-1].Price),
		Time:        open,
		Granularity: g,
	}
}

// End is the exclusive end of the candle interval.
func (c Candle) End() time.Time {
	return c.Time.Add(c.Granularity.Duration())
}

// Contains reports whether t falls in [Time, End()).
func (c Candle) Contains(t time.Time) bool {
	return !t.Before(c.Time) && t.Before(c.End())
}

// Compare orders candles of the same granularity by open time. Candles of
// different granularities have no order.
func (c Candle) Compare(o Candle) (int, error) {
	if c.Granularity != o.Granularity {
		return 0, fmt.Errorf("%w: cannot compare %s candle with %s candle", ErrInvalidInput, c.Granularity, o.Granularity)
	}
	return c.Time.Compare(o.Time), nil
}

func (c Candle) Before(o Candle) (bool, error) {
	cmp, err := c.Compare(o)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// Validate checks low <= open, close <= high.
func (c Candle) Validate() error {
	if c.Low.GreaterThan(c.High) {
		return fmt.Errorf("%w: low %s above high %s at %s", ErrInvalidInput, c.Low, c.High, c.Time)
	}
	for _, p := range []decimal.Decimal{c.Open, c.Close} {
		if p.LessThan(c.Low) || p.GreaterThan(c.High) {
			return fmt.Errorf("%w: price %s outside [%s, %s] at %s", ErrInvalidInput, p, c.Low, c.High, c.Time)
		}
	}
	return nil
}
