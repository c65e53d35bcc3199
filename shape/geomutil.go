package shape

import (
	"github.com/twpayne/go-geom"
)

func cloneGeom(g geom.T) geom.T {
	switch g := g.(type) {
	case *geom.Point:
		return g.Clone()
	case *geom.LineString:
		return g.Clone()
	case *geom.LinearRing:
		return g.Clone()
	case *geom.Polygon:
		return g.Clone()
	case *geom.MultiPoint:
		return g.Clone()
	case *geom.MultiLineString:
		return g.Clone()
	case *geom.MultiPolygon:
		return g.Clone()
	case *geom.GeometryCollection:
		c := geom.NewGeometryCollection()
		for _, part := range g.Geoms() {
			c.MustPush(cloneGeom(part))
		}
		return c
	}
	return g
}

func dimension(g geom.T) int {
	switch g := g.(type) {
	case *geom.Point, *geom.MultiPoint:
		return 0
	case *geom.LineString, *geom.LinearRing, *geom.MultiLineString:
		return 1
	case *geom.Polygon, *geom.MultiPolygon:
		return 2
	case *geom.GeometryCollection:
		d := -1
		for _, part := range g.Geoms() {
			if pd := dimension(part); pd > d {
				d = pd
			}
		}
		return d
	}
	return -1
}

// homogenize flattens parts, drops empty ones and everything below the
// highest dimension, and returns a single or typed multi geometry.
func homogenize(parts []geom.T) geom.T {
	flat := make([]geom.T, 0, len(parts))
	var collect func(g geom.T)
	collect = func(g geom.T) {
		if g == nil || g.Empty() {
			return
		}
		switch g := g.(type) {
		case *geom.GeometryCollection:
			for _, part := range g.Geoms() {
				collect(part)
			}
		case *geom.MultiPoint:
			for i := 0; i < g.NumPoints(); i++ {
				collect(g.Point(i))
			}
		case *geom.MultiLineString:
			for i := 0; i < g.NumLineStrings(); i++ {
				collect(g.LineString(i))
			}
		case *geom.MultiPolygon:
			for i := 0; i < g.NumPolygons(); i++ {
				collect(g.Polygon(i))
			}
		case *geom.LinearRing:
			flat = append(flat, geom.NewLineStringFlat(g.Layout(), g.FlatCoords()))
		default:
			flat = append(flat, g)
		}
	}
	for _, p := range parts {
		collect(p)
	}

	dim := -1
	layout := geom.XY
	for _, g := range flat {
		if d := dimension(g); d > dim {
			dim = d
			layout = g.Layout()
		}
	}

	var keep []geom.T
	for _, g := range flat {
		if dimension(g) == dim && g.Layout() == layout {
			keep = append(keep, g)
		}
	}

	if len(keep) == 1 {
		return keep[0]
	}

	switch dim {
	case 0:
		mp := geom.NewMultiPoint(layout)
		for _, g := range keep {
			mp.Push(g.(*geom.Point))
		}
		return mp
	case 1:
		ml := geom.NewMultiLineString(layout)
		for _, g := range keep {
			ml.Push(g.(*geom.LineString))
		}
		return ml
	}
	mp := geom.NewMultiPolygon(layout)
	for _, g := range keep {
		mp.Push(g.(*geom.Polygon))
	}
	return mp
}

// shiftX moves every x ordinate of a flat coordinate buffer.
func shiftX(flat []float64, stride int, dx float64) {
	if dx == 0 {
		return
	}
	for i := 0; i < len(flat); i += stride {
		flat[i] += dx
	}
}

func extentX(flat []float64, stride int) float64 {
	if len(flat) == 0 {
		return 0
	}
	min, max := flat[0], flat[0]
	for i := stride; i < len(flat); i += stride {
		x := flat[i]
		if x < min {
			min = x
		} else if x > max {
			max = x
		}
	}
	return max - min
}

// eachCoord visits every coordinate of g in order.
func eachCoord(g geom.T, f func(x, y float64) bool) {
	stride := g.Stride()
	flat := g.FlatCoords()
	for i := 0; i+1 < len(flat); i += stride {
		if !f(flat[i], flat[i+1]) {
			return
		}
	}
}
