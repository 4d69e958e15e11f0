// Package report renders candle series and indicator points as CSV files
// and Org-mode tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/candles/indicators"
	"github.com/rustyeddy/candles/market"
)

var (
	candleHeader    = []string{"time", "granularity", "open", "high", "low", "close"}
	indicatorHeader = []string{"time", "indicator", "value"}
)

// WriteCandlesCSV writes one row per candle, oldest first.
func WriteCandlesCSV(w io.Writer, series market.CandleSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(candleHeader); err != nil {
		return err
	}

	g := series.Granularity.String()
	for _, c := range series.Candles {
		err := cw.Write([]string{
			stamp(c.Time),
			g,
			c.Open.String(),
			c.High.String(),
			c.Low.String(),
			c.Close.String(),
		})
		if err != nil {
			return fmt.Errorf("write candle %s: %w", stamp(c.Time), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteIndicatorCSV writes one row per point under the given indicator name.
func WriteIndicatorCSV(w io.Writer, name string, points []indicators.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(indicatorHeader); err != nil {
		return err
	}

	for _, p := range points {
		if err := cw.Write([]string{stamp(p.Time), name, p.Value.String()}); err != nil {
			return fmt.Errorf("write %s point: %w", name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Use RFC3339 in UTC for copy/paste friendliness.
func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
