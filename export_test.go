package dateline

import (
	"bytes"
	"testing"

	"github.com/cheekybits/is"
	gj "github.com/paulmach/go.geojson"

	"github.com/rubenv/dateline/shape"
)

func TestExportLayer(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)
	ctx := env.Context

	line, err := env.Codec.ReadShape("LINESTRING(170 0, -170 0)")
	is.NoErr(err)

	is.NoErr(env.PutShape("routes", "ferry", line))
	is.NoErr(env.PutShape("routes", "port", shape.NewPoint(178.4, -18.1, ctx)))

	var buf bytes.Buffer
	n, err := env.ExportLayer("routes", &buf)
	is.NoErr(err)
	is.Equal(n, 2)

	fc, err := gj.UnmarshalFeatureCollection(buf.Bytes())
	is.NoErr(err)
	is.Equal(len(fc.Features), 2)

	ferry := fc.Features[0]
	is.Equal(ferry.PropertyMustString("id"), "ferry")
	is.Equal(ferry.Geometry.Type, gj.GeometryMultiLineString)
	for _, l := range ferry.Geometry.MultiLineString {
		for _, p := range l {
			is.True(p[0] >= -180 && p[0] <= 180)
		}
	}

	port := fc.Features[1]
	is.Equal(port.PropertyMustString("id"), "port")
	is.Equal(port.Geometry.Point, []float64{178.4, -18.1})

	// Nothing stored, nothing exported
	buf.Reset()
	n, err = env.ExportLayer("empty", &buf)
	is.NoErr(err)
	is.Equal(n, 0)
}
