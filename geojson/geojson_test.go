package geojson

import (
	"encoding/json"
	"testing"

	"github.com/cheekybits/is"
	gj "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/rubenv/dateline/codec"
	"github.com/rubenv/dateline/shape"
)

func TestRoundTripPolygon(t *testing.T) {
	is := is.New(t)
	ctx := shape.NewGeoContext()

	in := `{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]},"properties":null}`

	f, err := gj.UnmarshalFeature([]byte(in))
	is.NoErr(err)

	s, err := ToShape(f.Geometry, codec.New(ctx))
	is.NoErr(err)
	is.NotNil(s)
	_, ok := s.(*shape.Rectangle)
	is.True(ok)

	g, err := FromShape(s, ctx)
	is.NoErr(err)
	is.NotNil(g)

	j2, err := json.Marshal(&gj.Feature{Type: "Feature", Geometry: g})
	is.NoErr(err)
	is.Equal(in, string(j2))
}

func TestRoundTripMultiPolygon(t *testing.T) {
	is := is.New(t)
	ctx := shape.NewGeoContext()

	in := gj.NewMultiPolygonGeometry(
		[][][]float64{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{2, 2}, {2, 4}, {4, 4}, {4, 2}, {2, 2}},
		},
		[][][]float64{
			{{20, 0}, {30, 0}, {25, 5}, {20, 0}},
		},
	)

	s, err := ToShape(in, codec.New(ctx))
	is.NoErr(err)
	sg, ok := s.(*shape.Geometry)
	is.True(ok)
	is.True(sg.HasArea())
	is.Equal(sg.Area(nil), 96.0+25.0)

	out, err := FromShape(s, ctx)
	is.NoErr(err)
	is.Equal(out.Type, gj.GeometryMultiPolygon)
	is.Equal(len(out.MultiPolygon), 2)
}

func TestCrossingRectangle(t *testing.T) {
	is := is.New(t)
	ctx := shape.NewGeoContext()

	g, err := FromShape(shape.NewRectangle(170, -170, -10, 10, ctx), ctx)
	is.NoErr(err)
	is.Equal(g.Type, gj.GeometryMultiPolygon)
	is.Equal(g.MultiPolygon[0][0][0], []float64{170, -10})
	is.Equal(g.MultiPolygon[1][0][0], []float64{-180, -10})
}

func TestPoint(t *testing.T) {
	is := is.New(t)
	ctx := shape.NewGeoContext()

	g, err := FromShape(shape.NewPoint(1, 2, ctx), ctx)
	is.NoErr(err)
	is.Equal(g.Type, gj.GeometryPoint)
	is.Equal(g.Point, []float64{1, 2})

	s, err := ToShape(gj.NewPointGeometry([]float64{190, 2}), codec.New(ctx))
	is.NoErr(err)
	is.True(s.Equal(shape.NewPoint(-170, 2, ctx)))
}

func TestFeature(t *testing.T) {
	is := is.New(t)
	ctx := shape.NewGeoContext()

	f, err := NewFeature("abc", shape.NewPoint(1, 2, ctx), ctx)
	is.NoErr(err)
	is.Equal(f.ID, "abc")
	is.Equal(f.PropertyMustString("id"), "abc")

	data, err := json.Marshal(f)
	is.NoErr(err)
	is.Equal(string(data), `{"id":"abc","type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"id":"abc"}}`)
}

func TestToGeom(t *testing.T) {
	is := is.New(t)

	g, err := ToGeom(gj.NewLineStringGeometry([][]float64{{0, 0, 1}, {1, 1, 2}}))
	is.NoErr(err)
	is.Equal(g.Layout(), geom.XYZ)

	_, err = ToGeom(gj.NewLineStringGeometry([][]float64{{0, 0}, {1, 1, 2}}))
	is.Err(err)

	_, err = ToGeom(nil)
	is.Err(err)

	c, err := ToGeom(gj.NewCollectionGeometry(gj.NewPointGeometry([]float64{1, 2})))
	is.NoErr(err)
	_, ok := c.(*geom.GeometryCollection)
	is.True(ok)

	_, err = ToShape(gj.NewCollectionGeometry(gj.NewPointGeometry([]float64{1, 2})), codec.New(shape.NewGeoContext()))
	is.True(errors.Is(err, shape.ErrInvalidGeometry))
}
