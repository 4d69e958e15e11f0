package market

import (
	"fmt"
	"strings"
	"time"
)

// TrailingPolicy decides what happens to the last, still open interval
// once the ticks run out.
type TrailingPolicy int

const (
	// FlushTrailing emits the last interval as a candle.
	FlushTrailing TrailingPolicy = iota
	// DropTrailing discards the last interval's ticks.
	DropTrailing
)

func (p TrailingPolicy) String() string {
	switch p {
	case FlushTrailing:
		return "flush"
	case DropTrailing:
		return "drop"
	default:
		return fmt.Sprintf("TrailingPolicy(%d)", int(p))
	}
}

func (p TrailingPolicy) Validate() error {
	if p != FlushTrailing && p != DropTrailing {
		return fmt.Errorf("%w: unknown trailing policy %d", ErrInvalidInput, int(p))
	}
	return nil
}

func ParseTrailingPolicy(s string) (TrailingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flush":
		return FlushTrailing, nil
	case "drop":
		return DropTrailing, nil
	default:
		return 0, fmt.Errorf("%w: unknown trailing policy %q (use flush or drop)", ErrInvalidInput, s)
	}
}

// Aggregator buckets ticks into candles. The zero value keeps zero decimal
// places and flushes the trailing interval; use NewAggregator for defaults.
type Aggregator struct {
	Precision Precision
	Trailing  TrailingPolicy
}

func NewAggregator() Aggregator {
	return Aggregator{Precision: DefaultPrecision, Trailing: FlushTrailing}
}

// Aggregate is Aggregator{Precision: prec}.Aggregate(ticks, g).
func Aggregate(ticks []Tick, g Granularity, prec Precision) (CandleSeries, error) {
	return Aggregator{Precision: prec}.Aggregate(ticks, g)
}

// Aggregate partitions ticks into epoch-aligned [open, open+d) intervals of
// granularity g and emits one candle per non-empty interval. Unsorted input
// is stably sorted by time first; the caller's slice is not modified.
func (a Aggregator) Aggregate(ticks []Tick, g Granularity) (CandleSeries, error) {
	if !g.Valid() {
		return CandleSeries{}, fmt.Errorf("%w: unknown granularity %d", ErrInvalidInput, int(g))
	}
	if err := a.Precision.Validate(); err != nil {
		return CandleSeries{}, err
	}
	if err := a.Trailing.Validate(); err != nil {
		return CandleSeries{}, err
	}

	series := CandleSeries{Granularity: g}
	if len(ticks) == 0 {
		return series, nil
	}

	sorted, err := SortTicks(ticks)
	if err != nil {
		return CandleSeries{}, err
	}

	d := g.Duration()
	var (
		open   time.Time
		bucket []Tick
	)

	for _, t := range sorted {
		if len(bucket) > 0 && t.Time.Before(open.Add(d)) {
			bucket = append(bucket, t)
			continue
		}

		if len(bucket) > 0 {
			series.Candles = append(series.Candles, newCandle(open, g, bucket, a.Precision))
		}
		open = g.Floor(t.Time)
		bucket = []Tick{t}
	}

	if a.Trailing == FlushTrailing && len(bucket) > 0 {
		series.Candles = append(series.Candles, newCandle(open, g, bucket, a.Precision))
	}

	return series, nil
}

// AggregateAll builds one series per granularity from the same ticks.
func (a Aggregator) AggregateAll(ticks []Tick) (map[Granularity]CandleSeries, error) {
	out := make(map[Granularity]CandleSeries, len(AllGranularities))
	for _, g := range AllGranularities {
		cs, err := a.Aggregate(ticks, g)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", g, err)
		}
		out[g] = cs
	}
	return out, nil
}
