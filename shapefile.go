package dateline

import (
	"github.com/jonas-p/go-shp"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// shpToGeom converts a shapefile record to a planar geometry. Z and M values
// are dropped.
func shpToGeom(s shp.Shape) (geom.T, error) {
	switch s := s.(type) {
	case *shp.Point:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}), nil
	case *shp.PointZ:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}), nil
	case *shp.PointM:
		return geom.NewPointFlat(geom.XY, []float64{s.X, s.Y}), nil
	case *shp.MultiPoint:
		return geom.NewMultiPointFlat(geom.XY, flattenPoints(s.Points)), nil
	case *shp.MultiPointZ:
		return geom.NewMultiPointFlat(geom.XY, flattenPoints(s.Points)), nil
	case *shp.MultiPointM:
		return geom.NewMultiPointFlat(geom.XY, flattenPoints(s.Points)), nil
	case *shp.PolyLine:
		return lineFromParts(s.Parts, s.Points)
	case *shp.PolyLineZ:
		return lineFromParts(s.Parts, s.Points)
	case *shp.PolyLineM:
		return lineFromParts(s.Parts, s.Points)
	case *shp.Polygon:
		return polygonFromParts(s.Parts, s.Points)
	case *shp.PolygonZ:
		return polygonFromParts(s.Parts, s.Points)
	case *shp.PolygonM:
		return polygonFromParts(s.Parts, s.Points)
	case *shp.Null:
		return nil, errors.New("Null shape")
	}
	return nil, errors.Errorf("Unsupported shapefile shape: %T", s)
}

func flattenPoints(points []shp.Point) []float64 {
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	return flat
}

func splitParts(parts []int32, points []shp.Point) ([][]float64, error) {
	out := make([][]float64, 0, len(parts))
	for i, first := range parts {
		last := len(points)
		if i < len(parts)-1 {
			last = int(parts[i+1])
		}
		if int(first) > last || last > len(points) {
			return nil, errors.Errorf("Bad part offsets: %v", parts)
		}
		out = append(out, flattenPoints(points[first:last]))
	}
	return out, nil
}

func lineFromParts(parts []int32, points []shp.Point) (geom.T, error) {
	lines, err := splitParts(parts, points)
	if err != nil {
		return nil, err
	}

	switch len(lines) {
	case 0:
		return nil, errors.New("PolyLine without parts")
	case 1:
		return geom.NewLineStringFlat(geom.XY, lines[0]), nil
	}

	ml := geom.NewMultiLineString(geom.XY)
	for _, l := range lines {
		err := ml.Push(geom.NewLineStringFlat(geom.XY, l))
		if err != nil {
			return nil, err
		}
	}
	return ml, nil
}

// polygonFromParts groups rings into polygons. Shells are clockwise in
// shapefiles, holes counter-clockwise. A hole belongs to the first shell
// that holds its first vertex.
func polygonFromParts(parts []int32, points []shp.Point) (geom.T, error) {
	rings, err := splitParts(parts, points)
	if err != nil {
		return nil, err
	}

	shells := make([][]float64, 0)
	holes := make([][]float64, 0)
	for _, r := range rings {
		if len(r) < 8 {
			return nil, errors.Errorf("Ring with %d points", len(r)/2)
		}
		if xy.IsRingCounterClockwise(geom.XY, r) {
			holes = append(holes, r)
		} else {
			shells = append(shells, r)
		}
	}

	if len(shells) == 0 {
		// Some writers ignore the winding rules, treat the lot as shells
		shells, holes = holes, nil
	}

	// From here on shells run counter-clockwise, which is what a
	// rectangle that stays clear of the dateline looks like.
	polys := make([]*geom.Polygon, len(shells))
	for i, s := range shells {
		if !xy.IsRingCounterClockwise(geom.XY, s) {
			reverseRing(s)
		}
		polys[i] = geom.NewPolygonFlat(geom.XY, s, []int{len(s)})
	}

	for _, h := range holes {
		owner := -1
		for i, s := range shells {
			if xy.IsPointInRing(geom.XY, h[0:2], s) {
				owner = i
				break
			}
		}
		if owner < 0 {
			return nil, errors.Errorf("Hole outside of every shell at %v", h[0:2])
		}
		if xy.IsRingCounterClockwise(geom.XY, h) {
			reverseRing(h)
		}
		err := polys[owner].Push(geom.NewLinearRingFlat(geom.XY, h))
		if err != nil {
			return nil, err
		}
	}

	if len(polys) == 1 {
		return polys[0], nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, p := range polys {
		err := mp.Push(p)
		if err != nil {
			return nil, err
		}
	}
	return mp, nil
}

func reverseRing(flat []float64) {
	for i, j := 0, len(flat)-2; i < j; i, j = i+2, j-2 {
		flat[i], flat[j] = flat[j], flat[i]
		flat[i+1], flat[j+1] = flat[j+1], flat[i+1]
	}
}
