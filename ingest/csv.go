// Package ingest turns price dumps into ordered market ticks.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rustyeddy/candles/market"
	"github.com/shopspring/decimal"
)

// Accepted timestamp layouts, tried in order. Layouts without a zone are
// read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCSV reads rows of:
//
//	TS,PRICE[,...]
//
// A single header row (first cell not a timestamp) is allowed. Empty rows
// are skipped. Extra columns are ignored. The returned ticks keep file
// order; sorting is the aggregator's job.
func ParseCSV(r io.Reader) ([]market.Tick, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		ticks    []market.Tick
		sawFirst bool
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", market.ErrInvalidInput, err)
		}
		line, _ := cr.FieldPos(0)

		if isBlank(row) {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if isHeader(row) {
				continue
			}
		}

		t, err := parseTickRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ticks = append(ticks, t)
	}
	return ticks, nil
}

func parseTickRow(row []string) (market.Tick, error) {
	if len(row) < 2 {
		return market.Tick{}, fmt.Errorf("%w: need time and price, got %d columns", market.ErrInvalidInput, len(row))
	}

	ts, err := ParseTime(row[0])
	if err != nil {
		return market.Tick{}, err
	}

	raw := strings.TrimSpace(row[1])
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return market.Tick{}, fmt.Errorf("%w: bad price %q", market.ErrInvalidInput, raw)
	}

	return market.Tick{Time: ts, Price: price}, nil
}

// ParseTime parses a tick timestamp in any accepted layout.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", market.ErrInvalidInput)
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", market.ErrInvalidInput, s)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// isHeader treats a first row as a header when neither its time nor its
// price cell parses, so a malformed first data row still fails loudly.
func isHeader(row []string) bool {
	if _, err := ParseTime(row[0]); err == nil {
		return false
	}
	if len(row) < 2 {
		return true
	}
	_, err := decimal.NewFromString(strings.TrimSpace(row[1]))
	return err != nil
}
