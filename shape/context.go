package shape

import (
	"math"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// circleSegments is the number of vertices used when a circle has to be
// handed to the kernel as a polygon.
const circleSegments = 64

type ContextOptions struct {
	Geo               bool
	NormWrapLongitude bool

	// minX, maxX, minY, maxY; ignored for geodetic contexts
	WorldBounds []float64

	// haversine, lawOfCosines or cartesian
	Distance string
}

// Context decides whether the world is a sphere wrapping at the dateline or a
// flat plane, and creates shapes that live in it.
type Context struct {
	geo               bool
	normWrapLongitude bool
	worldBounds       *Rectangle
	calc              DistanceCalculator
	kernel            *kernel
}

func NewContext(opts ContextOptions) (*Context, error) {
	calc, err := distanceCalculator(opts.Distance, opts.Geo)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		geo:               opts.Geo,
		normWrapLongitude: opts.NormWrapLongitude,
		calc:              calc,
		kernel:            newKernel(),
	}

	switch {
	case opts.Geo:
		ctx.worldBounds = NewRectangle(-180, 180, -90, 90, ctx)
	case len(opts.WorldBounds) == 0:
		ctx.worldBounds = NewRectangle(-math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, math.MaxFloat64, ctx)
	case len(opts.WorldBounds) == 4:
		b := opts.WorldBounds
		if b[0] > b[1] || b[2] > b[3] {
			return nil, errors.Errorf("Bad world bounds: %v", b)
		}
		ctx.worldBounds = NewRectangle(b[0], b[1], b[2], b[3], ctx)
	default:
		return nil, errors.Errorf("World bounds need 4 values, got %d", len(opts.WorldBounds))
	}

	return ctx, nil
}

// NewGeoContext returns the usual longitude/latitude context.
func NewGeoContext() *Context {
	ctx, err := NewContext(ContextOptions{Geo: true})
	if err != nil {
		panic(err)
	}
	return ctx
}

func (c *Context) IsGeo() bool {
	return c.geo
}

func (c *Context) WorldBounds() *Rectangle {
	return c.worldBounds
}

func (c *Context) DistanceCalculator() DistanceCalculator {
	return c.calc
}

func (c *Context) NormX(x float64) float64 {
	if c.normWrapLongitude {
		return NormLonDeg(x)
	}
	return x
}

func (c *Context) NormY(y float64) float64 {
	if c.normWrapLongitude {
		return NormLatDeg(y)
	}
	return y
}

func (c *Context) VerifyX(x float64) error {
	b := c.worldBounds
	if x < b.minX || x > b.maxX {
		return OutOfRange("Bad X value %v is not in boundary %v", x, b)
	}
	return nil
}

func (c *Context) VerifyY(y float64) error {
	b := c.worldBounds
	if y < b.minY || y > b.maxY {
		return OutOfRange("Bad Y value %v is not in boundary %v", y, b)
	}
	return nil
}

func (c *Context) MakePoint(x, y float64) (*Point, error) {
	err := c.VerifyX(x)
	if err != nil {
		return nil, err
	}
	err = c.VerifyY(y)
	if err != nil {
		return nil, err
	}
	return NewPoint(x, y, c), nil
}

func (c *Context) MakeRectangle(minX, maxX, minY, maxY float64) (*Rectangle, error) {
	b := c.worldBounds
	if minY < b.minY || maxY > b.maxY {
		return nil, OutOfRange("Y values [%v to %v] not in boundary %v", minY, maxY, b)
	}
	if minY > maxY {
		return nil, OutOfRange("maxY must be >= minY: %v to %v", minY, maxY)
	}

	if c.geo {
		err := c.VerifyX(minX)
		if err != nil {
			return nil, err
		}
		err = c.VerifyX(maxX)
		if err != nil {
			return nil, err
		}

		// An edge on the dateline does not make the rectangle cross it
		if minX == 180 && minX != maxX {
			minX = -180
		} else if maxX == -180 && minX != maxX {
			maxX = 180
		}
	} else {
		if minX < b.minX || maxX > b.maxX {
			return nil, OutOfRange("X values [%v to %v] not in boundary %v", minX, maxX, b)
		}
		if minX > maxX {
			return nil, OutOfRange("maxX must be >= minX: %v to %v", minX, maxX)
		}
	}

	return NewRectangle(minX, maxX, minY, maxY, c), nil
}

func (c *Context) MakeCircle(center *Point, radius float64) (*Circle, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, OutOfRange("Bad circle radius: %v", radius)
	}
	if c.geo && radius > 180 {
		radius = 180
	}
	return NewCircle(center, radius, c), nil
}

// MakeGeometry wraps g with dateline handling enabled. Ownership of g passes
// to the returned shape.
func (c *Context) MakeGeometry(g geom.T) (*Geometry, error) {
	return NewGeometry(g, c, true)
}

// GeometryFrom builds a kernel geometry equivalent to s. Rectangles crossing
// the dateline become two parts, circles are approximated by a polygon.
func (c *Context) GeometryFrom(s Shape) (geom.T, error) {
	switch s := s.(type) {
	case *Point:
		return geom.NewPointFlat(geom.XY, []float64{s.x, s.y}), nil
	case *Rectangle:
		return c.rectangleGeometry(s), nil
	case *Circle:
		return c.circleGeometry(s), nil
	case *Geometry:
		return cloneGeom(s.g), nil
	}
	return nil, UnsupportedShape("Cannot make a geometry from %T", s)
}

func (c *Context) rectangleGeometry(r *Rectangle) geom.T {
	if !r.CrossesDateline() {
		return envelopeGeom(r.minX, r.maxX, r.minY, r.maxY)
	}

	parts := []geom.T{
		envelopeGeom(r.minX, c.worldBounds.maxX, r.minY, r.maxY),
		envelopeGeom(c.worldBounds.minX, r.maxX, r.minY, r.maxY),
	}
	return homogenize(parts)
}

// envelopeGeom is a polygon for a box with extent, a line when one side is
// zero and a point when both are.
func envelopeGeom(minX, maxX, minY, maxY float64) geom.T {
	switch {
	case minX == maxX && minY == maxY:
		return geom.NewPointFlat(geom.XY, []float64{minX, minY})
	case minX == maxX || minY == maxY:
		return geom.NewLineStringFlat(geom.XY, []float64{minX, minY, maxX, maxY})
	}
	return geom.NewPolygonFlat(geom.XY, []float64{
		minX, minY,
		maxX, minY,
		maxX, maxY,
		minX, maxY,
		minX, minY,
	}, []int{10})
}

func (c *Context) circleGeometry(circle *Circle) geom.T {
	cx, cy := circle.center.x, circle.center.y
	r := circle.radius
	if r == 0 {
		return geom.NewPointFlat(geom.XY, []float64{cx, cy})
	}

	flat := make([]float64, 0, 2*(circleSegments+1))
	for i := 0; i < circleSegments; i++ {
		// counter-clockwise starting east
		bearing := 2 * math.Pi * float64(i) / circleSegments
		var x, y float64
		if c.geo {
			x, y = pointOnBearing(cx, cy, r, math.Pi/2-bearing)
		} else {
			x = cx + r*math.Cos(bearing)
			y = cy + r*math.Sin(bearing)
		}
		flat = append(flat, x, y)
	}
	flat = append(flat, flat[0], flat[1])
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
}

// pointOnBearing walks dist degrees from (x, y) along the great circle with
// the given bearing (radians clockwise from north). The resulting longitude
// is kept continuous with x rather than normalized.
func pointOnBearing(x, y, dist, bearing float64) (float64, float64) {
	lat1 := toRadians(y)
	lon1 := toRadians(x)
	d := toRadians(dist)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(math.Sin(bearing)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return toDegrees(lon2), toDegrees(lat2)
}
