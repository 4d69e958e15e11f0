package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/candles/indicators"
	"github.com/rustyeddy/candles/market"
	"github.com/rustyeddy/candles/snapshot"
)

// Dir writes a snapshot as a directory of CSV files.
type Dir struct {
	Path      string
	SMAWindow int
	EMAWindow int
}

// Result lists what WriteSnapshot wrote, and which indicators it skipped
// for lack of daily candles.
type Result struct {
	Files   []string
	Skipped []string
}

// WriteSnapshot writes candles_<granularity>.csv for every granularity,
// then sma_<n>.csv and ema_<n>.csv over the daily series. An indicator
// without enough daily candles is skipped, any other error aborts.
func (d Dir) WriteSnapshot(s *snapshot.Snapshot) (Result, error) {
	var res Result

	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	for _, g := range market.AllGranularities {
		series, err := s.Series(g)
		if err != nil {
			return res, err
		}
		name := fmt.Sprintf("candles_%s.csv", g)
		if err := d.write(name, func(f *os.File) error { return WriteCandlesCSV(f, series) }); err != nil {
			return res, err
		}
		res.Files = append(res.Files, name)
	}

	mas := []struct {
		kind   string
		window int
		calc   func(int) ([]indicators.Point, error)
	}{
		{"sma", d.SMAWindow, s.SMA},
		{"ema", d.EMAWindow, s.EMA},
	}
	for _, ma := range mas {
		if ma.window == 0 {
			continue
		}
		name := fmt.Sprintf("%s_%d.csv", ma.kind, ma.window)
		points, err := ma.calc(ma.window)
		if errors.Is(err, market.ErrInsufficientData) {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("%s(%d): %w", ma.kind, ma.window, err)
		}

		label := fmt.Sprintf("%s(%d)", strings.ToUpper(ma.kind), ma.window)
		if err := d.write(name, func(f *os.File) error { return WriteIndicatorCSV(f, label, points) }); err != nil {
			return res, err
		}
		res.Files = append(res.Files, name)
	}

	return res, nil
}

func (d Dir) write(name string, fn func(*os.File) error) error {
	path := filepath.Join(d.Path, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}
