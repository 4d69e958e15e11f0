package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rustyeddy/candles/market"
	"go.uber.org/zap"
)

// Loader fetches ticks from a local path or an http(s) URL.
type Loader struct {
	Client *http.Client
	Log    *zap.Logger
}

// NewLoader returns a Loader whose HTTP client gives up after timeout
// (no limit when timeout is 0).
func NewLoader(timeout time.Duration, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		Client: &http.Client{Timeout: timeout},
		Log:    log,
	}
}

// Load reads ticks from location, downloading it first when it is a URL.
func (l *Loader) Load(ctx context.Context, location string) ([]market.Tick, error) {
	if location == "" {
		return nil, fmt.Errorf("no price source configured")
	}

	start := time.Now()
	var (
		ticks []market.Tick
		err   error
	)
	if isURL(location) {
		ticks, err = l.fetch(ctx, location)
	} else {
		ticks, err = LoadFile(location)
	}
	if err != nil {
		return nil, err
	}

	l.logger().Info("ticks loaded",
		zap.String("source", location),
		zap.Int("ticks", len(ticks)),
		zap.Duration("took", time.Since(start)),
	)
	return ticks, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]market.Tick, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("bad source url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	l.logger().Debug("fetching prices", zap.String("url", u.Redacted()))
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", u.Redacted(), resp.Status)
	}

	dir, err := os.MkdirTemp("", "candles-fetch-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	// Keep the remote extension so LoadFile picks the right decoder.
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		name = "prices.csv"
	}
	local := filepath.Join(dir, name)

	n, err := copyTo(local, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", u.Redacted(), err)
	}
	l.logger().Debug("downloaded prices", zap.String("file", name), zap.Int64("bytes", n))

	return LoadFile(local)
}

func (l *Loader) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
