package main

import (
	"context"
	"path/filepath"
	"testing"

	"geoglobe/globe/markerdata"
)

func TestConvertJSONToSQLiteAndBack(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "points.db")
	geo := filepath.Join(dir, "out", "points.geojson")
	ctx := context.Background()

	n, err := convert(ctx, filepath.Join("..", "..", "data", "points.json"), db, "auto", "auto")
	if err != nil {
		t.Fatalf("convert to sqlite: %v", err)
	}
	if n == 0 {
		t.Fatalf("no markers converted")
	}

	m, err := convert(ctx, db, geo, "sqlite", "auto")
	if err != nil {
		t.Fatalf("convert to geojson: %v", err)
	}
	if m != n {
		t.Fatalf("round trip count=%d, want %d", m, n)
	}

	recs, err := markerdata.Load(ctx, geo, markerdata.FormatAuto)
	if err != nil {
		t.Fatalf("load geojson: %v", err)
	}
	if recs[1].Name != "London" {
		t.Fatalf("order lost: second record %q", recs[1].Name)
	}
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	if _, err := convert(context.Background(), "a.json", "b.txt", "auto", "auto"); err == nil {
		t.Fatalf("expected error for .txt output")
	}
	if _, err := convert(context.Background(), "a.json", "b.json", "xml", "auto"); err == nil {
		t.Fatalf("expected error for unknown input format")
	}
}
