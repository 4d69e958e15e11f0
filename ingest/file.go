package ingest

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/candles/market"
	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// LoadFile reads ticks from a local file. The extension picks the decoder:
// .zip archives are unpacked and their first CSV read, .xz files are
// decompressed, anything else is read as plain CSV.
func LoadFile(path string) ([]market.Tick, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return loadZip(path)
	case ".xz":
		return loadXZ(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) ([]market.Tick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ticks, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ticks, nil
}

func loadXZ(path string) ([]market.Tick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz %s: %w", path, err)
	}

	ticks, err := ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ticks, nil
}

func loadZip(path string) ([]market.Tick, error) {
	dir, err := os.MkdirTemp("", "candles-unzip-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("unzip %s: %w", path, err)
	}

	csvPath, err := findCSV(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loadCSV(csvPath)
}

// findCSV returns the first .csv file under dir in lexical order, skipping
// macOS resource fork folders.
func findCSV(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "__MACOSX" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".csv") && !strings.HasPrefix(d.Name(), "._") {
			found = p
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("no .csv file in archive")
	}
	return found, nil
}

// copyTo drains r into a new file at path.
func copyTo(path string, r io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
