package shape

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// unwrapDateline rewrites g in place so that parts crossing the dateline
// continue past +180 instead of jumping back to -180. It returns the highest
// number of crossings found in any line or polygon.
func unwrapDateline(g geom.T) (int, error) {
	if boundsWidth(g) < 180 {
		return 0, nil
	}

	stride := g.Stride()
	crossings := 0
	switch g := g.(type) {
	case *geom.LineString:
		crossings = unwrapLine(g.FlatCoords(), stride)
	case *geom.MultiLineString:
		for i := 0; i < g.NumLineStrings(); i++ {
			flat := g.LineString(i).FlatCoords()
			if extentX(flat, stride) < 180 {
				continue
			}
			if c := unwrapLine(flat, stride); c > crossings {
				crossings = c
			}
		}
	case *geom.Polygon:
		return unwrapPolygon(g)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			p := g.Polygon(i)
			if extentX(p.FlatCoords(), stride) < 180 {
				continue
			}
			c, err := unwrapPolygon(p)
			if err != nil {
				return 0, err
			}
			if c > crossings {
				crossings = c
			}
		}
	}
	return crossings, nil
}

func unwrapPolygon(p *geom.Polygon) (int, error) {
	if p.NumLinearRings() == 0 {
		return 0, nil
	}

	layout := p.Layout()
	stride := p.Stride()
	exterior := p.LinearRing(0).FlatCoords()
	crossings := unwrapLine(exterior, stride)
	if crossings == 0 {
		return 0, nil
	}

	for i := 1; i < p.NumLinearRings(); i++ {
		hole := p.LinearRing(i).FlatCoords()
		unwrapLine(hole, stride)
		for shifts := 0; !ringWithin(layout, hole, exterior); shifts++ {
			if shifts > crossings {
				return 0, InvalidGeometry(nil, "Inner ring %d doesn't appear to be within the exterior", i)
			}
			shiftX(hole, stride, 360)
		}
	}
	return crossings, nil
}

// unwrapLine walks a coordinate buffer and moves every coordinate after a
// dateline jump onto the next (or previous) 360 degree page. The result is
// shifted so the lowest page used is the standard one.
func unwrapLine(flat []float64, stride int) int {
	n := len(flat) / stride
	if n <= 1 {
		return 0
	}

	shift := 0.0
	page, minPage, maxPage := 0, 0, 0
	prevX := flat[0]
	for i := 1; i < n; i++ {
		x := flat[i*stride] + shift
		if prevX-x > 180 {
			// left to right
			x += 360
			shift += 360
			page++
			if page > maxPage {
				maxPage = page
			}
		} else if x-prevX > 180 {
			// right to left
			x -= 360
			shift -= 360
			page--
			if page < minPage {
				minPage = page
			}
		}
		if page != 0 {
			flat[i*stride] = x
		}
		prevX = x
	}

	shiftX(flat, stride, float64(minPage*-360))
	return maxPage - minPage
}

func ringWithin(layout geom.Layout, inner, outer []float64) bool {
	stride := layout.Stride()
	for i := 0; i+stride <= len(inner); i += stride {
		if !xy.IsPointInRing(layout, geom.Coord(inner[i:i+stride]), outer) {
			return false
		}
	}
	return true
}

func boundsWidth(g geom.T) float64 {
	b := g.Bounds()
	if b.IsEmpty() {
		return 0
	}
	return b.Max(0) - b.Min(0)
}
