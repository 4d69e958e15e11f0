package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/candles/indicators"
	"github.com/rustyeddy/candles/market"
)

// Column is a named indicator series shown next to the candles.
type Column struct {
	Name   string
	Points []indicators.Point
}

// FormatCandlesOrg renders a series as an Org-mode table. Each column adds
// a cell keyed by candle open time; candles before the indicator warms up
// get an empty cell.
func FormatCandlesOrg(series market.CandleSeries, cols ...Column) string {
	byTime := make([]map[time.Time]string, len(cols))
	for i, col := range cols {
		m := make(map[time.Time]string, len(col.Points))
		for _, p := range col.Points {
			m[p.Time.UTC()] = p.Value.String()
		}
		byTime[i] = m
	}

	header := []string{"time", "open", "high", "low", "close"}
	for _, col := range cols {
		header = append(header, col.Name)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("* Candles %s (%d)\n", series.Granularity, series.Len()))
	writeRow(&b, header)
	b.WriteString("|-\n")

	for _, c := range series.Candles {
		row := []string{
			stamp(c.Time),
			c.Open.String(),
			c.High.String(),
			c.Low.String(),
			c.Close.String(),
		}
		for _, m := range byTime {
			row = append(row, m[c.Time.UTC()])
		}
		writeRow(&b, row)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
