package shape

import (
	"fmt"
)

type Point struct {
	x, y float64
	ctx  *Context
}

// NewPoint skips the world bounds check done by Context.MakePoint.
func NewPoint(x, y float64, ctx *Context) *Point {
	return &Point{x: x, y: y, ctx: ctx}
}

func (p *Point) X() float64 { return p.x }
func (p *Point) Y() float64 { return p.y }

func (p *Point) Relate(other Shape) Relation {
	if o, ok := other.(*Point); ok {
		if p.Equal(o) {
			return Contains
		}
		return Disjoint
	}
	return other.Relate(p).Transpose()
}

func (p *Point) BoundingBox() *Rectangle {
	return NewRectangle(p.x, p.x, p.y, p.y, p.ctx)
}

func (p *Point) HasArea() bool {
	return false
}

func (p *Point) Area(ctx *Context) float64 {
	return 0
}

func (p *Point) Center() *Point {
	return p
}

func (p *Point) Equal(other Shape) bool {
	o, ok := other.(*Point)
	if !ok {
		return false
	}
	return p.x == o.x && p.y == o.y
}

func (p *Point) String() string {
	return fmt.Sprintf("Pt(x=%v,y=%v)", p.x, p.y)
}
