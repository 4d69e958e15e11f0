package market

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the fixed width of a candle interval.
type Granularity int

const (
	OneMinute Granularity = iota + 1
	FiveMinutes
	OneHour
	OneDay
)

// AllGranularities lists the supported granularities, narrowest first.
var AllGranularities = []Granularity{OneMinute, FiveMinutes, OneHour, OneDay}

var granularityNames = map[Granularity]string{
	OneMinute:   "1min",
	FiveMinutes: "5min",
	OneHour:     "1hour",
	OneDay:      "1day",
}

var granularityAliases = map[string]Granularity{
	"1min":  OneMinute,
	"1m":    OneMinute,
	"m1":    OneMinute,
	"5min":  FiveMinutes,
	"5m":    FiveMinutes,
	"m5":    FiveMinutes,
	"1hour": OneHour,
	"1h":    OneHour,
	"h1":    OneHour,
	"60min": OneHour,
	"1day":  OneDay,
	"1d":    OneDay,
	"d1":    OneDay,
	"d":     OneDay,
}

// ParseGranularity maps a name like "5min", "1h" or "D1" to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g, ok := granularityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported granularity %q", ErrInvalidInput, s)
	}
	return g, nil
}

func (g Granularity) Valid() bool {
	_, ok := granularityNames[g]
	return ok
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// Duration returns the interval width, or 0 for an unknown granularity.
func (g Granularity) Duration() time.Duration {
	switch g {
	case OneMinute:
		return time.Minute
	case FiveMinutes:
		return 5 * time.Minute
	case OneHour:
		return time.Hour
	case OneDay:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Floor returns the start of the interval containing t. Boundaries are
// aligned to the Unix epoch in absolute time; t's location is kept.
//
// time.Truncate aligns to the zero Time, which sits a whole number of days
// before the epoch, so the two alignments agree for every granularity here.
func (g Granularity) Floor(t time.Time) time.Time {
	d := g.Duration()
	if d <= 0 {
		return t
	}
	return t.Truncate(d)
}

// MarshalText lets granularities appear as names in YAML, JSON and CSV.
func (g Granularity) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: unknown granularity %d", ErrInvalidInput, int(g))
	}
	return []byte(g.String()), nil
}

func (g *Granularity) UnmarshalText(b []byte) error {
	v, err := ParseGranularity(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}
