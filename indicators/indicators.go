// Package indicators provides moving-average indicators over candle closes.
package indicators

import (
	"time"

	"github.com/rustyeddy/candles/market"
	"github.com/shopspring/decimal"
)

// Indicator computes a single streaming value from candles.
// It is deterministic: the same candles in the same order give the same values.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* candle and updates internal state.
	Update(c market.Candle)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current value, or zero before Ready().
	Value() decimal.Decimal
}

// Point is one indicator value anchored at a candle's open time.
type Point struct {
	Time  time.Time
	Value decimal.Decimal
}
