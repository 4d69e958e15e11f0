// Package id mints the ULIDs that tag each market snapshot. A snapshot ID
// sorts by build time and carries that time, so log lines from one run can
// be matched to the snapshot that produced them.
package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID stamped with the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns an ID stamped with t, truncated to the millisecond. IDs
// minted for the same millisecond still sort in call order.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	v, err := ulid.New(ulid.Timestamp(t.UTC()), entropy)
	if err != nil {
		panic(fmt.Sprintf("snapshot id at %s: %v", t, err))
	}
	return v.String()
}

// Time recovers the build time stamped into a snapshot ID.
func Time(s string) (time.Time, error) {
	v, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot id %q: %w", s, err)
	}
	return ulid.Time(v.Time()).UTC(), nil
}
