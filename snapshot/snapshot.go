// Package snapshot holds the four standard candle series derived from one
// tick set, and computes daily indicators from them on demand.
package snapshot

import (
	"fmt"
	"time"

	"github.com/rustyeddy/candles/indicators"
	"github.com/rustyeddy/candles/market"
	"github.com/rustyeddy/candles/pkg/id"
)

// Options controls how a Snapshot is built.
type Options struct {
	Precision market.Precision
	Trailing  market.TrailingPolicy
}

func DefaultOptions() Options {
	return Options{Precision: market.DefaultPrecision, Trailing: market.FlushTrailing}
}

// Snapshot is immutable after New and safe to share between goroutines.
// Indicator methods return fresh slices and never touch the stored series.
type Snapshot struct {
	id        string
	built     time.Time
	ticks     int
	precision market.Precision
	trailing  market.TrailingPolicy
	series    map[market.Granularity]market.CandleSeries
}

// New aggregates ticks into every granularity with the same precision and
// trailing policy.
func New(ticks []market.Tick, opts Options) (*Snapshot, error) {
	agg := market.Aggregator{Precision: opts.Precision, Trailing: opts.Trailing}
	series, err := agg.AggregateAll(ticks)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	now := time.Now().UTC()
	return &Snapshot{
		id:        id.NewAt(now),
		built:     now,
		ticks:     len(ticks),
		precision: opts.Precision,
		trailing:  opts.Trailing,
		series:    series,
	}, nil
}

func (s *Snapshot) ID() string { return s.id }
func (s *Snapshot) Built() time.Time { return s.built }
func (s *Snapshot) TickCount() int { return s.ticks }
func (s *Snapshot) Precision() market.Precision { return s.precision }
func (s *Snapshot) Trailing() market.TrailingPolicy { return s.trailing }

// Series returns a copy of the series for g.
func (s *Snapshot) Series(g market.Granularity) (market.CandleSeries, error) {
	cs, ok := s.series[g]
	if !ok {
		return market.CandleSeries{}, fmt.Errorf("%w: no %s series", market.ErrInvalidInput, g)
	}
	out := market.CandleSeries{Granularity: cs.Granularity}
	out.Candles = append([]market.Candle(nil), cs.Candles...)
	return out, nil
}

// Daily returns the one-day series.
func (s *Snapshot) Daily() market.CandleSeries {
	cs, _ := s.Series(market.OneDay)
	return cs
}

// SMA computes SMA(window) over the daily series.
func (s *Snapshot) SMA(window int) ([]indicators.Point, error) {
	return indicators.SMA(s.series[market.OneDay], window, s.precision)
}

// EMA computes EMA(window) over the daily series.
func (s *Snapshot) EMA(window int) ([]indicators.Point, error) {
	return indicators.EMA(s.series[market.OneDay], window, s.precision)
}

// Summary counts candles per granularity.
func (s *Snapshot) Summary() map[market.Granularity]int {
	out := make(map[market.Granularity]int, len(s.series))
	for g, cs := range s.series {
		out[g] = cs.Len()
	}
	return out
}
