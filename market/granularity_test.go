package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGranularity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"1min", OneMinute, false},
		{"M1", OneMinute, false},
		{" 5m ", FiveMinutes, false},
		{"1hour", OneHour, false},
		{"H1", OneHour, false},
		{"1day", OneDay, false},
		{"D", OneDay, false},
		{"15min", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGranularity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGranularity_DurationAndString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Minute, OneMinute.Duration())
	assert.Equal(t, 5*time.Minute, FiveMinutes.Duration())
	assert.Equal(t, time.Hour, OneHour.Duration())
	assert.Equal(t, 24*time.Hour, OneDay.Duration())
	assert.Equal(t, time.Duration(0), Granularity(0).Duration())

	assert.Equal(t, "5min", FiveMinutes.String())
	assert.Equal(t, "Granularity(9)", Granularity(9).String())
	assert.False(t, Granularity(9).Valid())
}

func TestGranularity_FloorKeepsLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2024, 3, 4, 2, 15, 0, 0, loc) // 2024-03-03 23:15 UTC

	got := OneDay.Floor(at)
	assert.Equal(t, loc, got.Location())
	assert.True(t, got.Equal(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)))
}

func TestGranularity_Text(t *testing.T) {
	t.Parallel()

	b, err := OneHour.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1hour", string(b))

	var g Granularity
	require.NoError(t, g.UnmarshalText([]byte("5min")))
	assert.Equal(t, FiveMinutes, g)

	assert.Error(t, g.UnmarshalText([]byte("week")))
	_, err = Granularity(0).MarshalText()
	assert.Error(t, err)
}
