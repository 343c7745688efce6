package markers

import (
	"fmt"

	"geoglobe/globe/geo"
)

// Record is one input row describing a marker.
type Record struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

func (r Record) Coordinate() geo.Coordinate { return geo.Coordinate{Lat: r.Lat, Lon: r.Lon} }

func (r Record) Payload() Payload { return Payload{Name: r.Name, Value: r.Value} }

// Validate rejects out-of-range coordinates and incomplete payloads. Nothing is clamped.
func (r Record) Validate() error {
	if err := r.Payload().Validate(); err != nil {
		return err
	}
	return r.Coordinate().Validate()
}

// ValidateRecords checks every record and that names are unique.
func ValidateRecords(recs []Record) error {
	seen := make(map[string]int, len(recs))
	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if j, ok := seen[rec.Name]; ok {
			return fmt.Errorf("record %d: %w: %q also at record %d", i, ErrDuplicateID, rec.Name, j)
		}
		seen[rec.Name] = i
	}
	return nil
}

// AddRecords validates every record and then adds them, using each name as the id.
// On error nothing is added.
func (r *Registry) AddRecords(recs []Record, radius float64) error {
	if err := geo.ValidateRadius(radius); err != nil {
		return err
	}
	if err := ValidateRecords(recs); err != nil {
		return err
	}
	for _, rec := range recs {
		if r.Has(rec.Name) {
			return fmt.Errorf("%w: %q", ErrDuplicateID, rec.Name)
		}
	}
	for i, rec := range recs {
		if _, err := r.Add(rec.Name, rec.Coordinate(), rec.Payload(), radius); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
