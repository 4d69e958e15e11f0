package snapshot

import (
	"sync"
	"testing"
	"time"

	"github.com/rustyeddy/candles/market"
	"github.com/rustyeddy/candles/pkg/id"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyTicks returns one tick at noon per close, starting 2024-02-01.
func dailyTicks(closes ...string) []market.Tick {
	start := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	out := make([]market.Tick, len(closes))
	for i, c := range closes {
		out[i] = market.Tick{Time: start.AddDate(0, 0, i), Price: decimal.RequireFromString(c)}
	}
	return out
}

func TestNew_BuildsAllSeries(t *testing.T) {
	t.Parallel()

	s, err := New(dailyTicks("10", "11", "12", "13", "14"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 5, s.TickCount())
	assert.Equal(t, market.DefaultPrecision, s.Precision())
	assert.Equal(t, market.FlushTrailing, s.Trailing())
	for _, g := range market.AllGranularities {
		cs, err := s.Series(g)
		require.NoError(t, err)
		assert.Equal(t, g, cs.Granularity)
		assert.Equal(t, 5, cs.Len(), g.String())
	}

	built, err := id.Time(s.ID())
	require.NoError(t, err)
	assert.WithinDuration(t, s.Built(), built, time.Millisecond)
	assert.Equal(t, map[market.Granularity]int{
		market.OneMinute: 5, market.FiveMinutes: 5, market.OneHour: 5, market.OneDay: 5,
	}, s.Summary())
}

func TestSnapshot_Indicators(t *testing.T) {
	t.Parallel()

	s, err := New(dailyTicks("10", "11", "12", "13", "14"), DefaultOptions())
	require.NoError(t, err)

	sma, err := s.SMA(3)
	require.NoError(t, err)
	require.Len(t, sma, 3)
	assert.True(t, sma[0].Value.Equal(decimal.NewFromInt(11)))

	ema, err := s.EMA(3)
	require.NoError(t, err)
	require.Len(t, ema, 2)
	assert.True(t, ema[1].Value.Equal(decimal.NewFromInt(13)))

	_, err = s.EMA(6)
	assert.ErrorIs(t, err, market.ErrInsufficientData)
}

func TestSnapshot_DropTrailingAppliesToEveryGranularity(t *testing.T) {
	t.Parallel()

	s, err := New(dailyTicks("1", "2", "3"), Options{Precision: 4, Trailing: market.DropTrailing})
	require.NoError(t, err)

	for g, n := range s.Summary() {
		assert.Equal(t, 2, n, g.String())
	}
}

func TestSnapshot_SeriesIsACopy(t *testing.T) {
	t.Parallel()

	s, err := New(dailyTicks("1", "2"), DefaultOptions())
	require.NoError(t, err)

	cs := s.Daily()
	cs.Candles[0].Close = decimal.NewFromInt(99)

	again := s.Daily()
	assert.True(t, again.Candles[0].Close.Equal(decimal.NewFromInt(1)))

	_, err = s.Series(market.Granularity(0))
	assert.ErrorIs(t, err, market.ErrInvalidInput)
}

func TestSnapshot_EmptyTicks(t *testing.T) {
	t.Parallel()

	s, err := New(nil, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Daily().Len())

	_, err = s.SMA(1)
	assert.ErrorIs(t, err, market.ErrInsufficientData)
}

func TestNew_InvalidTicks(t *testing.T) {
	t.Parallel()

	_, err := New([]market.Tick{{Price: decimal.NewFromInt(1)}}, DefaultOptions())
	assert.ErrorIs(t, err, market.ErrInvalidInput)

	_, err = New(dailyTicks("1"), Options{Precision: 2, Trailing: market.TrailingPolicy(7)})
	assert.ErrorIs(t, err, market.ErrInvalidInput)
}

func TestSnapshot_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	s, err := New(dailyTicks("10", "11", "12", "13", "14", "15", "16"), DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for n := 1; n <= 7; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sma, err := s.SMA(n)
			assert.NoError(t, err)
			assert.Len(t, sma, 7-n+1)
			ema, err := s.EMA(n)
			assert.NoError(t, err)
			assert.Len(t, ema, 7-n)
		}(n)
	}
	wg.Wait()
}
