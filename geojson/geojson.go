package geojson

import (
	gj "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/rubenv/dateline/codec"
	"github.com/rubenv/dateline/shape"
)

// NewFeature wraps the GeoJSON form of s in a feature carrying id.
func NewFeature(id string, s shape.Shape, ctx *shape.Context) (*gj.Feature, error) {
	g, err := FromShape(s, ctx)
	if err != nil {
		return nil, err
	}

	f := gj.NewFeature(g)
	f.ID = id
	f.SetProperty("id", id)
	return f, nil
}

// FromShape converts s to GeoJSON. Rectangles and circles have no GeoJSON
// type of their own and are written as polygons.
func FromShape(s shape.Shape, ctx *shape.Context) (*gj.Geometry, error) {
	switch s := s.(type) {
	case *shape.Point:
		return gj.NewPointGeometry([]float64{s.X(), s.Y()}), nil
	case *shape.Geometry:
		return FromGeom(s.Geom())
	}

	g, err := ctx.GeometryFrom(s)
	if err != nil {
		return nil, err
	}
	return FromGeom(g)
}

func FromGeom(g geom.T) (*gj.Geometry, error) {
	stride := g.Stride()
	switch g := g.(type) {
	case *geom.Point:
		return gj.NewPointGeometry(toPosition(g.FlatCoords())), nil
	case *geom.MultiPoint:
		return gj.NewMultiPointGeometry(toPositions(g.FlatCoords(), stride)...), nil
	case *geom.LineString:
		return gj.NewLineStringGeometry(toPositions(g.FlatCoords(), stride)), nil
	case *geom.LinearRing:
		return gj.NewLineStringGeometry(toPositions(g.FlatCoords(), stride)), nil
	case *geom.MultiLineString:
		return gj.NewMultiLineStringGeometry(toRings(g.FlatCoords(), 0, g.Ends(), stride)...), nil
	case *geom.Polygon:
		return gj.NewPolygonGeometry(toRings(g.FlatCoords(), 0, g.Ends(), stride)), nil
	case *geom.MultiPolygon:
		flat := g.FlatCoords()
		polys := make([][][][]float64, 0, g.NumPolygons())
		offset := 0
		for _, ends := range g.Endss() {
			polys = append(polys, toRings(flat, offset, ends, stride))
			if len(ends) > 0 {
				offset = ends[len(ends)-1]
			}
		}
		return gj.NewMultiPolygonGeometry(polys...), nil
	case *geom.GeometryCollection:
		parts := make([]*gj.Geometry, 0, g.NumGeoms())
		for _, part := range g.Geoms() {
			p, err := FromGeom(part)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p)
		}
		return gj.NewCollectionGeometry(parts...), nil
	}
	return nil, errors.Errorf("Unknown geometry type: %T", g)
}

func toPosition(c []float64) []float64 {
	return append([]float64(nil), c...)
}

func toPositions(flat []float64, stride int) [][]float64 {
	out := make([][]float64, 0, len(flat)/stride)
	for i := 0; i+stride <= len(flat); i += stride {
		out = append(out, toPosition(flat[i:i+stride]))
	}
	return out
}

func toRings(flat []float64, start int, ends []int, stride int) [][][]float64 {
	out := make([][][]float64, 0, len(ends))
	for _, end := range ends {
		out = append(out, toPositions(flat[start:end], stride))
		start = end
	}
	return out
}

// ToShape parses a GeoJSON geometry the same way the codec parses WKT.
func ToShape(g *gj.Geometry, c *codec.Codec) (shape.Shape, error) {
	t, err := ToGeom(g)
	if err != nil {
		return nil, shape.InvalidGeometry(err, "%v", err)
	}
	return c.FromGeom(t)
}

func ToGeom(g *gj.Geometry) (geom.T, error) {
	if g == nil {
		return nil, errors.New("Missing geometry")
	}

	f := &flattener{}
	switch g.Type {
	case gj.GeometryPoint:
		err := f.add(g.Point)
		if err != nil {
			return nil, err
		}
		return geom.NewPointFlat(f.layout(), f.flat), nil
	case gj.GeometryMultiPoint:
		_, err := f.addAll(g.MultiPoint)
		if err != nil {
			return nil, err
		}
		return geom.NewMultiPointFlat(f.layout(), f.flat), nil
	case gj.GeometryLineString:
		_, err := f.addAll(g.LineString)
		if err != nil {
			return nil, err
		}
		return geom.NewLineStringFlat(f.layout(), f.flat), nil
	case gj.GeometryMultiLineString:
		ends, err := f.addRings(g.MultiLineString)
		if err != nil {
			return nil, err
		}
		return geom.NewMultiLineStringFlat(f.layout(), f.flat, ends), nil
	case gj.GeometryPolygon:
		ends, err := f.addRings(g.Polygon)
		if err != nil {
			return nil, err
		}
		return geom.NewPolygonFlat(f.layout(), f.flat, ends), nil
	case gj.GeometryMultiPolygon:
		endss := make([][]int, 0, len(g.MultiPolygon))
		for _, p := range g.MultiPolygon {
			ends, err := f.addRings(p)
			if err != nil {
				return nil, err
			}
			endss = append(endss, ends)
		}
		return geom.NewMultiPolygonFlat(f.layout(), f.flat, endss), nil
	case gj.GeometryCollection:
		c := geom.NewGeometryCollection()
		for _, part := range g.Geometries {
			p, err := ToGeom(part)
			if err != nil {
				return nil, err
			}
			err = c.Push(p)
			if err != nil {
				return nil, err
			}
		}
		return c, nil
	}
	return nil, errors.Errorf("Unknown geometry type: %v", g.Type)
}

// flattener collects positions into one flat coordinate buffer.
type flattener struct {
	stride int
	flat   []float64
}

func (f *flattener) add(c []float64) error {
	if f.stride == 0 {
		f.stride = len(c)
	}
	if len(c) < 2 || len(c) > 4 || len(c) != f.stride {
		return errors.Errorf("Bad position: %v", c)
	}
	f.flat = append(f.flat, c...)
	return nil
}

func (f *flattener) addAll(cs [][]float64) (int, error) {
	for _, c := range cs {
		err := f.add(c)
		if err != nil {
			return 0, err
		}
	}
	return len(f.flat), nil
}

func (f *flattener) addRings(rings [][][]float64) ([]int, error) {
	ends := make([]int, 0, len(rings))
	for _, r := range rings {
		end, err := f.addAll(r)
		if err != nil {
			return nil, err
		}
		ends = append(ends, end)
	}
	return ends, nil
}

func (f *flattener) layout() geom.Layout {
	switch f.stride {
	case 3:
		return geom.XYZ
	case 4:
		return geom.XYZM
	}
	return geom.XY
}
