package indicators

import (
	"fmt"

	"github.com/rustyeddy/candles/market"
)

// SMA calculates the Simple Moving Average series over a daily candle series.
//
// One point is produced per candle from the window-th candle on, so the
// result has len(series)-window+1 points.
func SMA(series market.CandleSeries, window int, prec market.Precision) ([]Point, error) {
	if err := checkWindow(series, window, prec); err != nil {
		return nil, err
	}

	ma := NewMA(window, prec)
	out := make([]Point, 0, series.Len()-window+1)
	for _, c := range series.Candles {
		ma.Update(c)
		if ma.Ready() {
			out = append(out, Point{Time: c.Time, Value: ma.Value()})
		}
	}
	return out, nil
}

// EMA calculates the Exponential Moving Average series over a daily candle
// series.
//
// The seed is the first SMA(window) value. It is not emitted: the first point
// belongs to the candle after the seed, so the result has len(series)-window
// points.
func EMA(series market.CandleSeries, window int, prec market.Precision) ([]Point, error) {
	if err := checkWindow(series, window, prec); err != nil {
		return nil, err
	}

	ema := NewEMA(window, prec)
	out := make([]Point, 0, series.Len()-window)
	for _, c := range series.Candles {
		seeded := ema.Ready()
		ema.Update(c)
		if seeded {
			out = append(out, Point{Time: c.Time, Value: ema.Value()})
		}
	}
	return out, nil
}

func checkWindow(series market.CandleSeries, window int, prec market.Precision) error {
	if err := series.RequireGranularity(market.OneDay); err != nil {
		return err
	}
	if err := prec.Validate(); err != nil {
		return err
	}
	if window < 1 {
		return fmt.Errorf("%w: window must be at least 1, got %d", market.ErrInsufficientData, window)
	}
	if window > series.Len() {
		return fmt.Errorf("%w: window %d exceeds %d daily candles", market.ErrInsufficientData, window, series.Len())
	}
	return nil
}
