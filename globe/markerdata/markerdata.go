// Package markerdata reads marker records from JSON, GeoJSON and SQLite sources.
//
// Every loader validates the whole set before returning it; out-of-range coordinates
// are errors, never clamped.
package markerdata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"geoglobe/globe/markers"
)

// Format names a record source encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatGeoJSON Format = "geojson"
	FormatSQLite  Format = "sqlite"
)

var ErrUnknownFormat = errors.New("markerdata: unknown format")

// ParseFormat accepts a format name; the empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatGeoJSON, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detect picks a format from the file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".geojson":
		return FormatGeoJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: cannot detect from %q", ErrUnknownFormat, path)
	}
}

// Load reads every record from path.
func Load(ctx context.Context, path string, format Format) ([]markers.Record, error) {
	if format == "" || format == FormatAuto {
		f, err := Detect(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	switch format {
	case FormatSQLite:
		st, err := OpenStore(path)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Load(ctx)
	case FormatJSON, FormatGeoJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if format == FormatJSON {
			return DecodeJSON(data)
		}
		return DecodeGeoJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
