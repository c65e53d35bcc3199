package shape

type Relation int

const (
	Disjoint Relation = iota
	Intersects
	Within
	Contains
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "DISJOINT"
	case Intersects:
		return "INTERSECTS"
	case Within:
		return "WITHIN"
	case Contains:
		return "CONTAINS"
	}
	return "UNKNOWN"
}

// Transpose gives the relation as seen from the other shape.
func (r Relation) Transpose() Relation {
	switch r {
	case Within:
		return Contains
	case Contains:
		return Within
	}
	return r
}

// Intersects reports whether the shapes share at least one point.
func (r Relation) Intersects() bool {
	return r != Disjoint
}

type Shape interface {
	Relate(other Shape) Relation
	BoundingBox() *Rectangle
	HasArea() bool
	Area(ctx *Context) float64
	Center() *Point
	Equal(other Shape) bool
}
