package shape

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Circle is every point within radius of center. On the sphere the radius is
// an arc in degrees.
type Circle struct {
	center *Point
	radius float64
	ctx    *Context
	bbox   *Rectangle
}

func NewCircle(center *Point, radius float64, ctx *Context) *Circle {
	c := &Circle{
		center: center,
		radius: radius,
		ctx:    ctx,
	}
	c.bbox = c.calcBoundingBox()
	return c
}

func (c *Circle) Radius() float64 {
	return c.radius
}

func (c *Circle) isGeo() bool {
	return c.ctx != nil && c.ctx.geo
}

func (c *Circle) distance(x, y float64) float64 {
	if c.ctx == nil {
		return Cartesian{}.Distance(c.center, x, y)
	}
	return c.ctx.calc.Distance(c.center, x, y)
}

func (c *Circle) contains(x, y float64) bool {
	return c.distance(x, y) <= c.radius
}

func (c *Circle) s2Cap() s2.Cap {
	ll := s2.LatLngFromDegrees(c.center.y, c.center.x)
	return s2.CapFromCenterAngle(s2.PointFromLatLng(ll), s1.Angle(toRadians(c.radius)))
}

func (c *Circle) calcBoundingBox() *Rectangle {
	if c.radius == 0 {
		return c.center.BoundingBox()
	}

	if !c.isGeo() {
		minX, maxX := c.center.x-c.radius, c.center.x+c.radius
		minY, maxY := c.center.y-c.radius, c.center.y+c.radius
		if c.ctx != nil {
			w := c.ctx.worldBounds
			minX, maxX = math.Max(minX, w.minX), math.Min(maxX, w.maxX)
			minY, maxY = math.Max(minY, w.minY), math.Min(maxY, w.maxY)
		}
		return NewRectangle(minX, maxX, minY, maxY, c.ctx)
	}

	rb := c.s2Cap().RectBound()
	minY, maxY := toDegrees(rb.Lat.Lo), toDegrees(rb.Lat.Hi)
	if rb.Lng.IsFull() {
		return NewRectangle(-180, 180, minY, maxY, c.ctx)
	}
	return NewRectangle(toDegrees(rb.Lng.Lo), toDegrees(rb.Lng.Hi), minY, maxY, c.ctx)
}

func (c *Circle) Relate(other Shape) Relation {
	switch o := other.(type) {
	case *Point:
		if c.contains(o.x, o.y) {
			return Contains
		}
		return Disjoint
	case *Rectangle:
		return c.relateRectangle(o)
	case *Circle:
		return c.relateCircle(o)
	}
	return other.Relate(c).Transpose()
}

func (c *Circle) relateRectangle(r *Rectangle) Relation {
	bboxRel := c.bbox.Relate(r)
	if bboxRel == Disjoint {
		return Disjoint
	}
	if bboxRel == Within {
		return Within
	}

	// Beyond a hemisphere the cap is no longer convex
	if !c.isGeo() || c.radius < 90 {
		inside := 0
		for _, corner := range [][2]float64{
			{r.minX, r.minY},
			{r.maxX, r.minY},
			{r.maxX, r.maxY},
			{r.minX, r.maxY},
		} {
			if c.contains(corner[0], corner[1]) {
				inside++
			}
		}
		if inside == 4 {
			return Contains
		}
		if inside > 0 {
			return Intersects
		}
	}

	if c.rectangleDistance(r) <= c.radius {
		return Intersects
	}
	return Disjoint
}

func (c *Circle) rectangleDistance(r *Rectangle) float64 {
	if c.isGeo() {
		ll := s2.LatLngFromDegrees(c.center.y, c.center.x)
		return r.s2Rect().DistanceToLatLng(ll).Degrees()
	}

	dx := math.Max(0, math.Max(r.minX-c.center.x, c.center.x-r.maxX))
	dy := math.Max(0, math.Max(r.minY-c.center.y, c.center.y-r.maxY))
	return math.Hypot(dx, dy)
}

func (c *Circle) relateCircle(o *Circle) Relation {
	d := c.distance(o.center.x, o.center.y)
	switch {
	case d > c.radius+o.radius:
		return Disjoint
	case d+o.radius <= c.radius:
		return Contains
	case d+c.radius <= o.radius:
		return Within
	}
	return Intersects
}

func (c *Circle) BoundingBox() *Rectangle {
	return c.bbox
}

func (c *Circle) HasArea() bool {
	return c.radius > 0
}

func (c *Circle) Area(ctx *Context) float64 {
	if ctx == nil || !ctx.geo {
		return math.Pi * c.radius * c.radius
	}
	return c.s2Cap().Area() * (180 / math.Pi) * (180 / math.Pi)
}

func (c *Circle) Center() *Point {
	return c.center
}

func (c *Circle) Equal(other Shape) bool {
	o, ok := other.(*Circle)
	if !ok {
		return false
	}
	return c.radius == o.radius && c.center.Equal(o.center)
}

func (c *Circle) String() string {
	return fmt.Sprintf("Circle(%v, d=%v)", c.center, c.radius)
}
