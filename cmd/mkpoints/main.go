// Command mkpoints converts marker data between JSON, GeoJSON and SQLite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"geoglobe/globe/markerdata"
	"geoglobe/globe/markers"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input file (.json, .geojson, .db).")
		outPath = flag.String("out", "", "Output file (.json, .geojson, .db).")
		inFmt   = flag.String("in-format", "auto", "auto|json|geojson|sqlite.")
		outFmt  = flag.String("out-format", "auto", "auto|json|geojson|sqlite.")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fatalf("usage: mkpoints -in points.json -out points.db [-in-format auto] [-out-format auto]")
	}

	n, err := convert(context.Background(), *inPath, *outPath, *inFmt, *outFmt)
	if err != nil {
		fatalf("mkpoints: %v", err)
	}
	fmt.Printf("wrote %d markers to %s\n", n, *outPath)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func convert(ctx context.Context, inPath, outPath, inFmt, outFmt string) (int, error) {
	in, err := markerdata.ParseFormat(inFmt)
	if err != nil {
		return 0, err
	}
	out, err := resolveFormat(outPath, outFmt)
	if err != nil {
		return 0, err
	}

	recs, err := markerdata.Load(ctx, inPath, in)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", inPath, err)
	}
	if err := write(ctx, outPath, out, recs); err != nil {
		return 0, fmt.Errorf("write %s: %w", outPath, err)
	}
	return len(recs), nil
}

func resolveFormat(path, name string) (markerdata.Format, error) {
	f, err := markerdata.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if f == markerdata.FormatAuto {
		return markerdata.Detect(path)
	}
	return f, nil
}

func write(ctx context.Context, path string, f markerdata.Format, recs []markers.Record) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case markerdata.FormatSQLite:
		st, err := markerdata.OpenStore(path)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.Replace(ctx, recs)
	case markerdata.FormatJSON:
		data, err = markerdata.EncodeJSON(recs)
	case markerdata.FormatGeoJSON:
		data, err = markerdata.EncodeGeoJSON(recs)
	default:
		return fmt.Errorf("%w: %q", markerdata.ErrUnknownFormat, string(f))
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
