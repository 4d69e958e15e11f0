package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candleAt(g Granularity, at time.Time, o, h, l, c string) Candle {
	return Candle{Open: d(o), High: d(h), Low: d(l), Close: d(c), Time: at, Granularity: g}
}

func TestCandle_Compare(t *testing.T) {
	t.Parallel()

	a := candleAt(OneMinute, t0, "1", "1", "1", "1")
	b := candleAt(OneMinute, t0.Add(time.Minute), "1", "1", "1", "1")

	cmp, err := a.Compare(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = b.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = a.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	before, err := a.Before(b)
	require.NoError(t, err)
	assert.True(t, before)
}

func TestCandle_CompareAcrossGranularities(t *testing.T) {
	t.Parallel()

	a := candleAt(OneMinute, t0, "1", "1", "1", "1")
	b := candleAt(OneDay, t0.Add(time.Hour), "1", "1", "1", "1")

	_, err := a.Compare(b)
	assert.ErrorIs(t, err, ErrInvalidInput)

	before, err := a.Before(b)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, before)
}

func TestCandle_EndAndContains(t *testing.T) {
	t.Parallel()

	c := candleAt(FiveMinutes, t0, "1", "1", "1", "1")
	assert.True(t, c.End().Equal(t0.Add(5*time.Minute)))
	assert.True(t, c.Contains(t0))
	assert.True(t, c.Contains(t0.Add(5*time.Minute-time.Nanosecond)))
	assert.False(t, c.Contains(t0.Add(5*time.Minute)))
	assert.False(t, c.Contains(t0.Add(-time.Nanosecond)))
}

func TestCandle_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		candle  Candle
		wantErr bool
	}{
		{"flat", candleAt(OneDay, t0, "5", "5", "5", "5"), false},
		{"normal", candleAt(OneDay, t0, "5", "7", "4", "6"), false},
		{"low above high", candleAt(OneDay, t0, "5", "4", "6", "5"), true},
		{"open above high", candleAt(OneDay, t0, "8", "7", "4", "6"), true},
		{"close below low", candleAt(OneDay, t0, "5", "7", "4", "3"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.candle.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCandleSeries_Accessors(t *testing.T) {
	t.Parallel()

	cs := CandleSeries{Granularity: OneDay}
	assert.True(t, cs.Empty())
	_, ok := cs.Last()
	assert.False(t, ok)
	assert.Empty(t, cs.Closes())

	day := 24 * time.Hour
	start := OneDay.Floor(t0)
	cs.Candles = []Candle{
		candleAt(OneDay, start, "1", "2", "1", "2"),
		candleAt(OneDay, start.Add(day), "2", "3", "2", "3"),
	}
	assert.Equal(t, 2, cs.Len())
	last, ok := cs.Last()
	require.True(t, ok)
	assert.True(t, last.Close.Equal(d("3")))

	closes := cs.Closes()
	require.Len(t, closes, 2)
	assert.True(t, closes[0].Equal(d("2")))
	assert.NoError(t, cs.Validate())
	assert.NoError(t, cs.RequireGranularity(OneDay))
	assert.ErrorIs(t, cs.RequireGranularity(OneHour), ErrInvalidInput)
}

func TestCandleSeries_ValidateRejectsOverlap(t *testing.T) {
	t.Parallel()

	cs := CandleSeries{
		Granularity: OneHour,
		Candles: []Candle{
			candleAt(OneHour, t0, "1", "1", "1", "1"),
			candleAt(OneHour, t0.Add(30*time.Minute), "1", "1", "1", "1"),
		},
	}
	assert.ErrorIs(t, cs.Validate(), ErrInvalidInput)

	cs.Candles[1] = candleAt(OneMinute, t0.Add(time.Hour), "1", "1", "1", "1")
	assert.ErrorIs(t, cs.Validate(), ErrInvalidInput)
}
