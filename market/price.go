package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places kept in candle prices and
// indicator values. It is passed explicitly to every computation.
type Precision int32

// DefaultPrecision keeps eight places, enough for FX pipettes and
// crypto quotes alike.
const DefaultPrecision Precision = 8

// MaxPrecision bounds Precision to what shopspring/decimal rounds cheaply.
const MaxPrecision Precision = 28

func (p Precision) Validate() error {
	if p < 0 || p > MaxPrecision {
		return fmt.Errorf("%w: precision must be within [0, %d], got %d", ErrInvalidInput, MaxPrecision, p)
	}
	return nil
}

// Round rounds d half away from zero to p places.
func (p Precision) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(int32(p))
}

// Div divides a by b and rounds the quotient to p places.
func (p Precision) Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, int32(p))
}

// Format renders d with exactly p places.
func (p Precision) Format(d decimal.Decimal) string {
	return d.StringFixed(int32(p))
}
