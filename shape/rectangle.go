package shape

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Rectangle is an axis aligned box. In a geodetic context minX > maxX means
// the box crosses the dateline.
type Rectangle struct {
	minX, maxX, minY, maxY float64
	ctx                    *Context
}

// NewRectangle does no normalization or range checking, use
// Context.MakeRectangle for untrusted values.
func NewRectangle(minX, maxX, minY, maxY float64, ctx *Context) *Rectangle {
	return &Rectangle{minX: minX, maxX: maxX, minY: minY, maxY: maxY, ctx: ctx}
}

func (r *Rectangle) MinX() float64 { return r.minX }
func (r *Rectangle) MaxX() float64 { return r.maxX }
func (r *Rectangle) MinY() float64 { return r.minY }
func (r *Rectangle) MaxY() float64 { return r.maxY }

func (r *Rectangle) CrossesDateline() bool {
	return r.minX > r.maxX
}

func (r *Rectangle) Width() float64 {
	w := r.maxX - r.minX
	if w < 0 {
		w += 360
	}
	return w
}

func (r *Rectangle) Height() float64 {
	return r.maxY - r.minY
}

func (r *Rectangle) Relate(other Shape) Relation {
	switch o := other.(type) {
	case *Point:
		return r.relatePoint(o)
	case *Rectangle:
		return r.relateRectangle(o)
	}
	return other.Relate(r).Transpose()
}

func (r *Rectangle) relatePoint(p *Point) Relation {
	if p.y > r.maxY || p.y < r.minY {
		return Disjoint
	}

	minX, maxX, px := r.minX, r.maxX, p.x
	if r.isGeo() {
		if raw := maxX - minX; raw < 0 {
			maxX = minX + raw + 360
		}
		if px < minX {
			px += 360
		} else if px > maxX {
			px -= 360
		} else {
			return Contains
		}
	}

	if px < minX || px > maxX {
		return Disjoint
	}
	return Contains
}

func (r *Rectangle) relateRectangle(o *Rectangle) Relation {
	yRel := r.relateYRange(o.minY, o.maxY)
	if yRel == Disjoint {
		return Disjoint
	}
	xRel := r.relateXRange(o.minX, o.maxX)
	if xRel == Disjoint {
		return Disjoint
	}
	if xRel == yRel {
		return xRel
	}

	// One dimension identical, the other decides
	if r.minX == o.minX && r.maxX == o.maxX {
		return yRel
	}
	if r.minY == o.minY && r.maxY == o.maxY {
		return xRel
	}
	return Intersects
}

func (r *Rectangle) relateYRange(minY, maxY float64) Relation {
	return relateRange(r.minY, r.maxY, minY, maxY)
}

func (r *Rectangle) relateXRange(extMinX, extMaxX float64) Relation {
	minX, maxX := r.minX, r.maxX
	if r.isGeo() {
		// unroll both ranges over the dateline, the 360 case is a full wrap
		extWidth := extMaxX - extMinX
		if extWidth < 0 {
			extWidth += 360
		}
		if extWidth < 360 {
			extMaxX = extMinX + extWidth
		} else {
			extMaxX = 180 + 360
		}

		if w := r.Width(); w < 360 {
			maxX = minX + w
		} else {
			maxX = 180 + 360
		}

		if maxX < extMinX {
			minX += 360
			maxX += 360
		} else if extMaxX < minX {
			extMinX += 360
			extMaxX += 360
		}
	}
	return relateRange(minX, maxX, extMinX, extMaxX)
}

func relateRange(intMin, intMax, extMin, extMax float64) Relation {
	if extMin > intMax || extMax < intMin {
		return Disjoint
	}
	if extMin >= intMin && extMax <= intMax {
		return Contains
	}
	if extMin <= intMin && extMax >= intMax {
		return Within
	}
	return Intersects
}

func (r *Rectangle) BoundingBox() *Rectangle {
	return r
}

func (r *Rectangle) HasArea() bool {
	return r.Width() > 0 && r.Height() > 0
}

func (r *Rectangle) Area(ctx *Context) float64 {
	if ctx == nil || !ctx.geo {
		return r.Width() * r.Height()
	}
	// steradians to square degrees
	return r.s2Rect().Area() * (180 / math.Pi) * (180 / math.Pi)
}

func (r *Rectangle) s2Rect() s2.Rect {
	lng := s1.FullInterval()
	if r.Width() < 360 {
		lng = s1.IntervalFromEndpoints(toRadians(r.minX), toRadians(r.maxX))
	}
	return s2.Rect{
		Lat: r1.Interval{Lo: toRadians(r.minY), Hi: toRadians(r.maxY)},
		Lng: lng,
	}
}

func (r *Rectangle) Center() *Point {
	y := r.minY + r.Height()/2
	x := r.minX + r.Width()/2
	if r.CrossesDateline() {
		x = NormLonDeg(x)
	}
	return NewPoint(x, y, r.ctx)
}

func (r *Rectangle) Equal(other Shape) bool {
	o, ok := other.(*Rectangle)
	if !ok {
		return false
	}
	return r.minX == o.minX && r.maxX == o.maxX && r.minY == o.minY && r.maxY == o.maxY
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("Rect(minX=%v,maxX=%v,minY=%v,maxY=%v)", r.minX, r.maxX, r.minY, r.maxY)
}

func (r *Rectangle) isGeo() bool {
	return r.ctx != nil && r.ctx.geo
}
