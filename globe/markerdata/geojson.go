package markerdata

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geoglobe/globe/geo"
	"geoglobe/globe/markers"
)

// DecodeGeoJSON reads Point features. The name comes from the "name" property and
// the value from the required numeric "value" property.
func DecodeGeoJSON(data []byte) ([]markers.Record, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode geojson: %w", err)
	}
	recs := make([]markers.Record, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w", i, geo.Invalid("geometry", 0, "must be a Point"))
		}
		name, _ := f.Properties["name"].(string)
		v, ok := f.Properties["value"]
		if !ok {
			return nil, fmt.Errorf("feature %d: %w", i, geo.Invalid("value", 0, "missing"))
		}
		value, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w", i, geo.Invalid("value", 0, "must be a number"))
		}
		recs = append(recs, markers.Record{Name: name, Lat: pt.Lat(), Lon: pt.Lon(), Value: value})
	}
	if err := markers.ValidateRecords(recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// EncodeGeoJSON writes records as a FeatureCollection of points.
func EncodeGeoJSON(recs []markers.Record) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, r := range recs {
		f := geojson.NewFeature(orb.Point{r.Lon, r.Lat})
		f.Properties["name"] = r.Name
		f.Properties["value"] = r.Value
		fc.Append(f)
	}
	return fc.MarshalJSON()
}
