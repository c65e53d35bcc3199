package shape

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geos"
)

// Geometry wraps an arbitrary point, line or polygon geometry and makes it
// behave on a globe that wraps at the dateline. It is immutable once created
// and safe for concurrent use.
type Geometry struct {
	ctx *Context
	g   geom.T
	kg  *geos.Geom

	bbox    *Rectangle
	env     [4]float64
	hasArea bool
	area    float64
}

// NewGeometry takes ownership of g, which may be modified. With
// datelineCheck set, geodetic geometries are checked for dateline crossings
// and unwrapped.
func NewGeometry(g geom.T, ctx *Context, datelineCheck bool) (*Geometry, error) {
	switch t := g.(type) {
	case *geom.Point, *geom.LineString, *geom.Polygon,
		*geom.MultiPoint, *geom.MultiLineString, *geom.MultiPolygon:
	case *geom.LinearRing:
		g = geom.NewLineStringFlat(t.Layout(), t.FlatCoords())
	case *geom.GeometryCollection:
		return nil, InvalidGeometry(nil, "GeometryCollection is not supported, use a MultiPoint, MultiLineString or MultiPolygon")
	default:
		return nil, InvalidGeometry(nil, "Unsupported geometry type %T", g)
	}
	if g.Empty() {
		return nil, InvalidGeometry(nil, "Empty geometry")
	}

	var bbox *Rectangle
	if ctx.geo {
		if datelineCheck {
			_, err := unwrapDateline(g)
			if err != nil {
				return nil, err
			}
		}

		if isMulti(g) {
			u, err := ctx.kernel.union(g)
			if err != nil {
				return nil, err
			}
			g = u
		}
		unwrapped := g.Bounds()

		r, err := ctx.kernel.retile(g)
		if err != nil {
			return nil, err
		}
		g = r

		minX, maxX := -180.0, 180.0
		if width := unwrapped.Max(0) - unwrapped.Min(0); width < 360 {
			minX = unwrapped.Min(0)
			maxX = NormLonDeg(minX + width)
		}
		bbox = NewRectangle(minX, maxX, unwrapped.Min(1), unwrapped.Max(1), ctx)
	} else {
		b := g.Bounds()
		bbox = NewRectangle(b.Min(0), b.Max(0), b.Min(1), b.Max(1), ctx)
	}

	b := g.Bounds()
	kg, err := ctx.kernel.fromGeom(g)
	if err != nil {
		return nil, err
	}

	valid, reason, err := ctx.kernel.validate(kg)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, InvalidGeometry(nil, "%s", reason)
	}

	hasArea := dimension(g) == 2
	area := 0.0
	if hasArea {
		area = ctx.kernel.area(kg)
	}

	return &Geometry{
		ctx:     ctx,
		g:       g,
		kg:      kg,
		bbox:    bbox,
		env:     [4]float64{b.Min(0), b.Max(0), b.Min(1), b.Max(1)},
		hasArea: hasArea,
		area:    area,
	}, nil
}

func isMulti(g geom.T) bool {
	switch g.(type) {
	case *geom.MultiPoint, *geom.MultiLineString, *geom.MultiPolygon:
		return true
	}
	return false
}

// Geom is the wrapped geometry. It must not be modified.
func (g *Geometry) Geom() geom.T {
	return g.g
}

func (g *Geometry) Relate(other Shape) Relation {
	switch o := other.(type) {
	case *Point:
		return g.relatePoint(o)
	case *Rectangle:
		return g.relateRectangle(o)
	case *Circle:
		return g.relateCircle(o)
	case *Geometry:
		return matrixRelation(g.kg.Relate(o.kg))
	}
	return other.Relate(g).Transpose()
}

// kernelGeom converts a simple shape for use against the wrapped geometry.
// The shapes handled here always convert, so failure is a bug.
func (g *Geometry) kernelGeom(s Shape) *geos.Geom {
	t, err := g.ctx.GeometryFrom(s)
	if err != nil {
		panic(err)
	}
	kg, err := g.ctx.kernel.fromGeom(t)
	if err != nil {
		panic(err)
	}
	return kg
}

// relatePoint treats a point on the boundary as contained.
func (g *Geometry) relatePoint(p *Point) Relation {
	pg := g.kernelGeom(p)

	if g.kg.Disjoint(pg) {
		return Disjoint
	}
	return Contains
}

func (g *Geometry) relateRectangle(r *Rectangle) Relation {
	bboxRel := g.bbox.Relate(r)
	if bboxRel == Within || bboxRel == Disjoint {
		return bboxRel
	}

	rg := g.kernelGeom(r)
	return matrixRelation(g.kg.Relate(rg))
}

// relateCircle samples the vertices against the circle. Edges bulging into
// the circle between two outside vertices go unnoticed.
func (g *Geometry) relateCircle(c *Circle) Relation {
	bboxRel := g.bbox.Relate(c)
	if bboxRel == Within || bboxRel == Disjoint {
		return bboxRel
	}

	seen, outside := 0, 0
	partial := false
	eachCoord(g.g, func(x, y float64) bool {
		seen++
		if c.Relate(NewPoint(x, y, g.ctx)) == Disjoint {
			outside++
		}
		if seen != outside && outside != 0 {
			partial = true
			return false
		}
		return true
	})

	if partial {
		return Intersects
	}
	if seen == outside {
		if g.relatePoint(c.center) == Disjoint {
			return Disjoint
		}
		return Contains
	}
	return Within
}

func (g *Geometry) BoundingBox() *Rectangle {
	return g.bbox
}

func (g *Geometry) HasArea() bool {
	return g.hasArea
}

// Area is the planar area when ctx is nil, otherwise the area of the bounding
// box in ctx scaled by how much of the box the geometry fills.
func (g *Geometry) Area(ctx *Context) float64 {
	if ctx == nil || g.area == 0 {
		return g.area
	}
	bboxArea := g.bbox.Area(nil)
	return g.bbox.Area(ctx) * g.area / bboxArea
}

func (g *Geometry) Center() *Point {
	c, err := xy.Centroid(g.g)
	if err != nil || len(c) < 2 {
		return g.bbox.Center()
	}
	return NewPoint(c[0], c[1], g.ctx)
}

// Equal is exact coordinate equality.
func (g *Geometry) Equal(other Shape) bool {
	o, ok := other.(*Geometry)
	if !ok {
		return false
	}
	if g == o {
		return true
	}
	if reflect.TypeOf(g.g) != reflect.TypeOf(o.g) || g.g.Layout() != o.g.Layout() {
		return false
	}
	if !floatsEqual(g.g.FlatCoords(), o.g.FlatCoords()) {
		return false
	}
	if !intsEqual(g.g.Ends(), o.g.Ends()) {
		return false
	}
	a, b := g.g.Endss(), o.g.Endss()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !intsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Hash only covers the envelope: equal geometries hash the same, the reverse
// does not hold.
func (g *Geometry) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range g.env {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (g *Geometry) String() string {
	s, err := wkt.Marshal(g.g)
	if err != nil {
		return fmt.Sprintf("%T(%v)", g.g, err)
	}
	return s
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
