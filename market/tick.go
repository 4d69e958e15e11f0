package market

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Tick is a single timestamped trade price.
type Tick struct {
	Time  time.Time
	Price decimal.Decimal
}

func NewTick(t time.Time, price string) (Tick, error) {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return Tick{}, fmt.Errorf("%w: bad price %q: %v", ErrInvalidInput, price, err)
	}
	return Tick{Time: t, Price: p}, nil
}

// SortTicks returns a stably time-ordered copy of ticks. Ticks with a zero
// timestamp cannot be ordered and fail with ErrInvalidInput.
func SortTicks(ticks []Tick) ([]Tick, error) {
	for i, t := range ticks {
		if t.Time.IsZero() {
			return nil, fmt.Errorf("%w: tick %d has no timestamp", ErrInvalidInput, i)
		}
	}

	out := slices.Clone(ticks)
	if slices.IsSortedFunc(out, compareTickTime) {
		return out, nil
	}
	slices.SortStableFunc(out, compareTickTime)
	return out, nil
}

func compareTickTime(a, b Tick) int {
	return a.Time.Compare(b.Time)
}
