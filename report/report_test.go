package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/candles/indicators"
	"github.com/rustyeddy/candles/market"
	"github.com/rustyeddy/candles/snapshot"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func daily(closes ...string) market.CandleSeries {
	cs := market.CandleSeries{Granularity: market.OneDay}
	for i, c := range closes {
		cs.Candles = append(cs.Candles, market.Candle{
			Open: dec(c), High: dec(c), Low: dec(c), Close: dec(c),
			Time:        day0.AddDate(0, 0, i),
			Granularity: market.OneDay,
		})
	}
	return cs
}

func TestWriteCandlesCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCandlesCSV(&buf, daily("1.5", "2")))

	want := "time,granularity,open,high,low,close\n" +
		"2024-01-01T00:00:00Z,1day,1.5,1.5,1.5,1.5\n" +
		"2024-01-02T00:00:00Z,1day,2,2,2,2\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteIndicatorCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pts := []indicators.Point{{Time: day0, Value: dec("12.25")}}
	require.NoError(t, WriteIndicatorCSV(&buf, "SMA(3)", pts))

	assert.Equal(t, "time,indicator,value\n2024-01-01T00:00:00Z,SMA(3),12.25\n", buf.String())
}

func TestFormatCandlesOrg(t *testing.T) {
	t.Parallel()

	series := daily("10", "11", "12")
	sma, err := indicators.SMA(series, 2, market.DefaultPrecision)
	require.NoError(t, err)

	out := FormatCandlesOrg(series, Column{Name: "SMA(2)", Points: sma})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "* Candles 1day (3)", lines[0])
	assert.Equal(t, "| time | open | high | low | close | SMA(2) |", lines[1])
	assert.Equal(t, "|-", lines[2])
	assert.Equal(t, "| 2024-01-01T00:00:00Z | 10 | 10 | 10 | 10 |  |", lines[3])
	assert.Equal(t, "| 2024-01-02T00:00:00Z | 11 | 11 | 11 | 11 | 10.5 |", lines[4])
	assert.Equal(t, "| 2024-01-03T00:00:00Z | 12 | 12 | 12 | 12 | 11.5 |", lines[5])
}

func TestFormatCandlesOrg_Empty(t *testing.T) {
	t.Parallel()

	out := FormatCandlesOrg(market.CandleSeries{Granularity: market.OneHour})
	assert.Equal(t, "* Candles 1hour (0)\n| time | open | high | low | close |\n|-\n", out)
}

func ticksOverDays(days int) []market.Tick {
	var ticks []market.Tick
	for i := 0; i < days; i++ {
		base := day0.AddDate(0, 0, i)
		ticks = append(ticks,
			market.Tick{Time: base.Add(time.Hour), Price: decimal.NewFromInt(int64(100 + i))},
			market.Tick{Time: base.Add(2 * time.Hour), Price: decimal.NewFromInt(int64(101 + i))},
		)
	}
	return ticks
}

func TestDir_WriteSnapshot(t *testing.T) {
	t.Parallel()

	snap, err := snapshot.New(ticksOverDays(6), snapshot.DefaultOptions())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "export")
	res, err := Dir{Path: out, SMAWindow: 3, EMAWindow: 4}.WriteSnapshot(snap)
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, []string{
		"candles_1min.csv", "candles_5min.csv", "candles_1hour.csv", "candles_1day.csv",
		"sma_3.csv", "ema_4.csv",
	}, res.Files)

	data, err := os.ReadFile(filepath.Join(out, "candles_1day.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 7)

	data, err = os.ReadFile(filepath.Join(out, "sma_3.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2024-01-03T00:00:00Z,SMA(3),102", lines[1])
}

func TestDir_WriteSnapshot_SkipsShortHistory(t *testing.T) {
	t.Parallel()

	snap, err := snapshot.New(ticksOverDays(2), snapshot.DefaultOptions())
	require.NoError(t, err)

	out := t.TempDir()
	res, err := Dir{Path: out, SMAWindow: 5, EMAWindow: 2}.WriteSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"sma_5.csv"}, res.Skipped)
	assert.Contains(t, res.Files, "ema_2.csv")

	_, err = os.Stat(filepath.Join(out, "sma_5.csv"))
	assert.True(t, os.IsNotExist(err))
}
