package dateline

import (
	"path"
	"runtime"
	"testing"

	"github.com/cheekybits/is"
	"github.com/jonas-p/go-shp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/twpayne/go-geom"

	"github.com/rubenv/dateline/shape"
)

func ring(coords ...float64) []shp.Point {
	out := make([]shp.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		out = append(out, shp.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}

func polygon(rings ...[]shp.Point) *shp.Polygon {
	return (*shp.Polygon)(shp.NewPolyLine(rings))
}

func writeTestShapefile(t *testing.T) string {
	filename := path.Join(t.TempDir(), "islands.shp")

	w, err := shp.Create(filename, shp.POLYGON)
	if err != nil {
		t.Fatal(err)
	}

	err = w.SetFields([]shp.Field{
		shp.StringField("NAME", 10),
	})
	if err != nil {
		t.Fatal(err)
	}

	records := []struct {
		name  string
		shape shp.Shape
	}{
		// Shells are clockwise, holes counter-clockwise
		{"square", polygon(ring(0, 0, 0, 10, 10, 10, 10, 0, 0, 0))},
		{"bowtie", polygon(ring(0, 0, 10, 10, 10, 0, 0, 10, 0, 0))},
		{"fiji", polygon(ring(170, -10, 170, 10, -170, 0, 170, -10))},
		{"holed", polygon(
			ring(20, 20, 20, 30, 30, 30, 30, 20, 20, 20),
			ring(22, 22, 24, 22, 24, 24, 22, 24, 22, 22),
		)},
		{"", polygon(ring(40, 40, 40, 50, 50, 50, 50, 40, 40, 40))},
	}
	for i, r := range records {
		w.Write(r.shape)
		err := w.WriteAttribute(i, 0, r.name)
		if err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	return filename
}

func TestImportShapefile(t *testing.T) {
	is := is.New(t)
	env, hook := newTestEnv(t)
	ctx := env.Context

	filename := writeTestShapefile(t)
	env.Config.Layers["islands"] = &Layer{
		Shapefile: filename,
		IDField:   "NAME",
	}

	// Stale content is dropped
	is.NoErr(env.PutShape("islands", "atlantis", shape.NewPoint(0, 0, ctx)))

	stats, err := env.ImportLayer("islands")
	is.NoErr(err)
	is.Equal(stats.Imported, 3)
	is.Equal(stats.Invalid, 2)

	ids, err := env.GetShapeIDs("islands")
	is.NoErr(err)
	is.Equal(ids, []string{"fiji", "holed", "square"})

	s, err := env.GetShape("islands", "square")
	is.NoErr(err)
	r, ok := s.(*shape.Rectangle)
	is.True(ok)
	is.False(r.CrossesDateline())
	is.True(r.Equal(shape.NewRectangle(0, 10, 0, 10, ctx)))

	s, err = env.GetShape("islands", "fiji")
	is.NoErr(err)
	_, ok = s.(*shape.Geometry)
	is.True(ok)
	is.Equal(s.Relate(shape.NewPoint(179, 0, ctx)), shape.Contains)
	is.Equal(s.Relate(shape.NewPoint(-179, 0, ctx)), shape.Contains)
	is.Equal(s.Relate(shape.NewPoint(0, 0, ctx)), shape.Disjoint)

	s, err = env.GetShape("islands", "holed")
	is.NoErr(err)
	is.Equal(s.Area(nil), 96.0)
	is.Equal(s.Relate(shape.NewPoint(23, 23, ctx)), shape.Disjoint)
	is.Equal(s.Relate(shape.NewPoint(21, 21, ctx)), shape.Contains)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	is.Equal(warnings, 2)
}

func TestImportByRecordNumber(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)

	stats, err := env.ImportShapefile("islands", writeTestShapefile(t), "")
	is.NoErr(err)
	is.Equal(stats.Imported, 4)
	is.Equal(stats.Invalid, 1)

	ids, err := env.GetShapeIDs("islands")
	is.NoErr(err)
	is.Equal(ids, []string{"0", "2", "3", "4"})
}

func TestImportDefaultWorkers(t *testing.T) {
	is := is.New(t)
	if testing.Short() {
		t.Skip("Skipping store test in short mode")
	}

	geo := true
	config := &Config{
		Geo:    &geo,
		Store:  t.TempDir(),
		Layers: make(map[string]*Layer),
	}
	log, _ := test.NewNullLogger()
	env, err := NewEnv(config, log)
	is.NoErr(err)
	env.Quiet = true
	defer env.Close()
	is.Equal(env.Config.Workers, runtime.NumCPU())

	stats, err := env.ImportShapefile("islands", writeTestShapefile(t), "NAME")
	is.NoErr(err)
	is.Equal(stats.Imported, 3)
}

func TestImportErrors(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)

	_, err := env.ImportLayer("unknown")
	is.Err(err)

	_, err = env.ImportShapefile("islands", path.Join(t.TempDir(), "missing.shp"), "")
	is.Err(err)

	_, err = env.ImportShapefile("islands", writeTestShapefile(t), "ISO")
	is.Err(err)
}

func TestShpToGeom(t *testing.T) {
	is := is.New(t)

	g, err := shpToGeom(&shp.Point{X: 1, Y: 2})
	is.NoErr(err)
	is.Equal(g.FlatCoords(), []float64{1, 2})

	g, err = shpToGeom(&shp.MultiPoint{Points: ring(1, 2, 3, 4)})
	is.NoErr(err)
	_, ok := g.(*geom.MultiPoint)
	is.True(ok)

	g, err = shpToGeom(shp.NewPolyLine([][]shp.Point{ring(0, 0, 1, 1)}))
	is.NoErr(err)
	_, ok = g.(*geom.LineString)
	is.True(ok)

	g, err = shpToGeom(shp.NewPolyLine([][]shp.Point{ring(0, 0, 1, 1), ring(2, 2, 3, 3, 4, 4)}))
	is.NoErr(err)
	ml, ok := g.(*geom.MultiLineString)
	is.True(ok)
	is.Equal(ml.Ends(), []int{4, 10})

	// Two shells become a multipolygon, shells come out counter-clockwise
	g, err = shpToGeom(polygon(
		ring(0, 0, 0, 1, 1, 1, 1, 0, 0, 0),
		ring(5, 5, 5, 6, 6, 6, 6, 5, 5, 5),
	))
	is.NoErr(err)
	mp, ok := g.(*geom.MultiPolygon)
	is.True(ok)
	is.Equal(mp.NumPolygons(), 2)
	is.Equal(mp.Polygon(0).FlatCoords(), []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0})

	// Hole outside of the shell
	_, err = shpToGeom(polygon(
		ring(0, 0, 0, 1, 1, 1, 1, 0, 0, 0),
		ring(5, 5, 6, 5, 6, 6, 5, 6, 5, 5),
	))
	is.Err(err)

	_, err = shpToGeom(polygon(ring(0, 0, 1, 1, 0, 0)))
	is.Err(err)

	_, err = shpToGeom(&shp.Null{})
	is.Err(err)
}
