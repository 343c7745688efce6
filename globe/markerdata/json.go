package markerdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"geoglobe/globe/geo"
	"geoglobe/globe/markers"
)

// jsonRecord keeps the numeric fields optional so a missing one is detected.
type jsonRecord struct {
	Name  string   `json:"name"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Value *float64 `json:"value"`
}

// DecodeJSON parses an array of {name, lat, lon, value} objects.
func DecodeJSON(data []byte) ([]markers.Record, error) {
	var raw []jsonRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode marker json: %w", err)
	}
	recs := make([]markers.Record, 0, len(raw))
	for i, r := range raw {
		if r.Lat == nil {
			return nil, fmt.Errorf("record %d: %w", i, geo.Invalid("latitude", 0, "missing"))
		}
		if r.Lon == nil {
			return nil, fmt.Errorf("record %d: %w", i, geo.Invalid("longitude", 0, "missing"))
		}
		if r.Value == nil {
			return nil, fmt.Errorf("record %d: %w", i, geo.Invalid("value", 0, "missing"))
		}
		recs = append(recs, markers.Record{Name: r.Name, Lat: *r.Lat, Lon: *r.Lon, Value: *r.Value})
	}
	if err := markers.ValidateRecords(recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// EncodeJSON writes records in the format DecodeJSON reads.
func EncodeJSON(recs []markers.Record) ([]byte, error) {
	return json.MarshalIndent(recs, "", "  ")
}
