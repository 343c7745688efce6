package markerdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoglobe/globe/geo"
	"geoglobe/globe/markers"
)

var sample = []markers.Record{
	{Name: "A", Lat: 0, Lon: 0, Value: 1},
	{Name: "B", Lat: 0, Lon: 90, Value: 1},
	{Name: "Reykjavik", Lat: 64.1466, Lon: -21.9426, Value: 12.5},
}

func TestDecodeJSON(t *testing.T) {
	recs, err := DecodeJSON([]byte(`[
		{"name": "A", "lat": 0, "lon": 0, "value": 1},
		{"name": "B", "lat": 0, "lon": 90, "value": 1}
	]`))
	require.NoError(t, err)
	assert.Equal(t, sample[:2], recs)
}

func TestDecodeJSONFailsFast(t *testing.T) {
	cases := map[string]string{
		"lat range":     `[{"name": "A", "lat": 95, "lon": 0, "value": 1}]`,
		"lon range":     `[{"name": "A", "lat": 0, "lon": -181, "value": 1}]`,
		"missing lat":   `[{"name": "A", "lon": 0, "value": 1}]`,
		"missing value": `[{"name": "A", "lat": 0, "lon": 0}]`,
		"no name":       `[{"lat": 1, "lon": 2, "value": 1}]`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(in))
			assert.ErrorIs(t, err, geo.ErrInvalid)
		})
	}

	_, err := DecodeJSON([]byte(`[{"name": "A", "lat": 0, "lon": 0, "value": 1}, {"name": "A", "lat": 1, "lon": 1, "value": 2}]`))
	assert.ErrorIs(t, err, markers.ErrDuplicateID)

	_, err = DecodeJSON([]byte(`{"name": "A"}`))
	assert.Error(t, err)
}

func TestDecodeJSONKeepsExplicitZeroValue(t *testing.T) {
	recs, err := DecodeJSON([]byte(`[{"name": "Z", "lat": 1, "lon": 2, "value": 0}]`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 0.0, recs[0].Value)
}

func TestGeoJSONRoundTrip(t *testing.T) {
	data, err := EncodeGeoJSON(sample)
	require.NoError(t, err)
	recs, err := DecodeGeoJSON(data)
	require.NoError(t, err)
	assert.Equal(t, sample, recs)
}

func TestDecodeGeoJSONRejectsNonPoint(t *testing.T) {
	_, err := DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"L"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}
	]}`))
	assert.ErrorIs(t, err, geo.ErrInvalid)

	_, err = DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"P","value":1},"geometry":{"type":"Point","coordinates":[0,91]}}
	]}`))
	assert.ErrorIs(t, err, geo.ErrInvalid)

	_, err = DecodeGeoJSON([]byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"P"},"geometry":{"type":"Point","coordinates":[0,1]}}
	]}`))
	assert.ErrorIs(t, err, geo.ErrInvalid)
}

func TestStoreReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "points.db")
	st, err := OpenStore(path)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Replace(ctx, sample))
	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(sample), n)

	recs, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample, recs)

	bad := append([]markers.Record{}, sample...)
	bad[1].Lat = -100
	assert.ErrorIs(t, st.Replace(ctx, bad), geo.ErrInvalid)
	recs, err = st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, len(sample))
}

func TestLoadDetectsFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	js, err := EncodeJSON(sample)
	require.NoError(t, err)
	jsPath := filepath.Join(dir, "points.json")
	require.NoError(t, os.WriteFile(jsPath, js, 0o644))

	gj, err := EncodeGeoJSON(sample)
	require.NoError(t, err)
	gjPath := filepath.Join(dir, "points.geojson")
	require.NoError(t, os.WriteFile(gjPath, gj, 0o644))

	dbPath := filepath.Join(dir, "points.sqlite")
	st, err := OpenStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Replace(ctx, sample))
	require.NoError(t, st.Close())

	for _, p := range []string{jsPath, gjPath, dbPath} {
		recs, err := Load(ctx, p, FormatAuto)
		require.NoError(t, err, p)
		assert.Equal(t, sample, recs, p)
	}

	_, err = Load(ctx, filepath.Join(dir, "points.csv"), FormatAuto)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" GeoJSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatGeoJSON, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)
	_, err = ParseFormat("kml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
