package codec

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"github.com/twpayne/go-geom/xy"

	"github.com/rubenv/dateline/shape"
)

// Codec reads and writes shapes of one context.
type Codec struct {
	ctx *shape.Context
}

func New(ctx *shape.Context) *Codec {
	return &Codec{ctx: ctx}
}

func (c *Codec) Context() *shape.Context {
	return c.ctx
}

// ReadShape accepts the simple formats ("x y", "lat,lon",
// "minX minY maxX maxY", "Circle(x y d=radius)") as well as WKT.
func (c *Codec) ReadShape(str string) (shape.Shape, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, shape.InvalidGeometry(nil, "Empty shape string")
	}

	s, err := c.readSimpleShape(str)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	g, err := wkt.Unmarshal(str)
	if err != nil {
		return nil, shape.InvalidGeometry(err, "error reading WKT: %v", err)
	}
	return c.FromGeom(g)
}

// FromGeom turns a freshly parsed geometry into the simplest shape that
// represents it. Ownership of g passes to the codec.
func (c *Codec) FromGeom(g geom.T) (shape.Shape, error) {
	// Winding has to be taken before folding, folding 181 to -179 turns
	// the ring around.
	ccw := true
	if p, ok := g.(*geom.Polygon); ok && c.ctx.IsGeo() && p.NumLinearRings() == 1 {
		ccw = writtenCounterClockwise(p)
	}

	err := c.checkCoordinates(g)
	if err != nil {
		return nil, err
	}

	switch t := g.(type) {
	case *geom.Point:
		if t.Empty() {
			return nil, shape.InvalidGeometry(nil, "Empty point")
		}
		return shape.NewPoint(t.X(), t.Y(), c.ctx), nil
	case *geom.Polygon:
		if isRectangle(t) {
			b := t.Bounds()
			// Polygons run counter-clockwise, a clockwise rectangle
			// is one that goes around the back of the globe.
			crossesDateline := c.ctx.IsGeo() && !ccw
			if crossesDateline {
				return shape.NewRectangle(b.Max(0), b.Min(0), b.Min(1), b.Max(1), c.ctx), nil
			}
			return shape.NewRectangle(b.Min(0), b.Max(0), b.Min(1), b.Max(1), c.ctx), nil
		}
	}

	sg, err := c.ctx.MakeGeometry(g)
	if err != nil {
		return nil, err
	}
	return sg, nil
}

// writtenCounterClockwise reports the winding of the shell as written. A
// shell with longitudes past ±180 is a continuous path, so every step is
// taken the short way round before measuring.
func writtenCounterClockwise(p *geom.Polygon) bool {
	stride := p.Stride()
	ring := append([]float64(nil), p.LinearRing(0).FlatCoords()...)

	continuous := false
	for i := 0; i < len(ring); i += stride {
		if ring[i] < -180 || ring[i] > 180 {
			continuous = true
			break
		}
	}
	if continuous {
		for i := stride; i < len(ring); i += stride {
			d := ring[i] - ring[i-stride]
			for d > 180 {
				ring[i] -= 360
				d -= 360
			}
			for d < -180 {
				ring[i] += 360
				d += 360
			}
		}
	}
	return xy.IsRingCounterClockwise(p.Layout(), ring)
}

// checkCoordinates folds geodetic coordinates into range and rejects out of
// range ones otherwise.
func (c *Codec) checkCoordinates(g geom.T) error {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for _, part := range gc.Geoms() {
			err := c.checkCoordinates(part)
			if err != nil {
				return err
			}
		}
		return nil
	}

	stride := g.Stride()
	flat := g.FlatCoords()
	for i := 0; i+1 < len(flat); i += stride {
		if c.ctx.IsGeo() {
			flat[i] = shape.NormLonDeg(flat[i])
			flat[i+1] = shape.NormLatDeg(flat[i+1])
			continue
		}

		err := c.ctx.VerifyX(flat[i])
		if err != nil {
			return err
		}
		err = c.ctx.VerifyY(flat[i+1])
		if err != nil {
			return err
		}
	}
	return nil
}

// isRectangle reports whether p is a single ring of four axis aligned edges.
func isRectangle(p *geom.Polygon) bool {
	if p.NumLinearRings() != 1 {
		return false
	}
	ring := p.LinearRing(0)
	if ring.NumCoords() != 5 {
		return false
	}

	b := p.Bounds()
	for i := 0; i < 5; i++ {
		c := ring.Coord(i)
		if c.X() != b.Min(0) && c.X() != b.Max(0) {
			return false
		}
		if c.Y() != b.Min(1) && c.Y() != b.Max(1) {
			return false
		}
	}

	prev := ring.Coord(0)
	for i := 1; i < 5; i++ {
		c := ring.Coord(i)
		xChanged := c.X() != prev.X()
		yChanged := c.Y() != prev.Y()
		if xChanged == yChanged {
			return false
		}
		prev = c
	}
	return true
}

func (c *Codec) readSimpleShape(str string) (shape.Shape, error) {
	if unicode.IsLetter(rune(str[0])) {
		if strings.HasPrefix(str, "Circle(") || strings.HasPrefix(str, "CIRCLE(") {
			return c.readCircle(str)
		}
		return nil, nil
	}

	if strings.Contains(str, ",") {
		return c.readLatCommaLon(str)
	}

	fields := strings.Fields(str)
	nums, err := parseFloats(str, fields)
	if err != nil {
		return nil, err
	}

	switch len(nums) {
	case 2:
		return c.ctx.MakePoint(c.ctx.NormX(nums[0]), c.ctx.NormY(nums[1]))
	case 4:
		return c.ctx.MakeRectangle(
			c.ctx.NormX(nums[0]), c.ctx.NormX(nums[2]),
			c.ctx.NormY(nums[1]), c.ctx.NormY(nums[3]))
	}
	return nil, shape.InvalidGeometry(nil, "Expected 2 numbers (point) or 4 numbers (rectangle): %s", str)
}

func (c *Codec) readLatCommaLon(str string) (*shape.Point, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return nil, shape.InvalidGeometry(nil, "Expected lat,lon: %s", str)
	}
	nums, err := parseFloats(str, parts)
	if err != nil {
		return nil, err
	}
	return c.ctx.MakePoint(c.ctx.NormX(nums[1]), c.ctx.NormY(nums[0]))
}

func (c *Codec) readCircle(str string) (shape.Shape, error) {
	end := strings.LastIndex(str, ")")
	if end < 0 {
		return nil, shape.InvalidGeometry(nil, "Missing closing parenthesis: %s", str)
	}
	tokens := strings.Fields(str[len("Circle("):end])
	if len(tokens) == 0 {
		return nil, shape.InvalidGeometry(nil, "Missing circle center: %s", str)
	}

	var center *shape.Point
	var err error
	if strings.Contains(tokens[0], ",") {
		center, err = c.readLatCommaLon(tokens[0])
		tokens = tokens[1:]
	} else {
		if len(tokens) < 2 {
			return nil, shape.InvalidGeometry(nil, "Missing circle center: %s", str)
		}
		var nums []float64
		nums, err = parseFloats(str, tokens[:2])
		if err == nil {
			center, err = c.ctx.MakePoint(c.ctx.NormX(nums[0]), c.ctx.NormY(nums[1]))
		}
		tokens = tokens[2:]
	}
	if err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		return nil, shape.InvalidGeometry(nil, "Missing circle distance: %s", str)
	}
	if len(tokens) > 1 {
		return nil, shape.InvalidGeometry(nil, "Extra arguments: %s :: %s", tokens[1], str)
	}

	arg := tokens[0]
	if idx := strings.Index(arg, "="); idx > 0 {
		k := arg[:idx]
		if k != "d" && k != "distance" {
			return nil, shape.InvalidGeometry(nil, "Unknown arg: %s :: %s", k, str)
		}
		arg = arg[idx+1:]
	}
	d, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return nil, shape.InvalidGeometry(err, "Bad circle distance %q: %s", arg, str)
	}

	return c.ctx.MakeCircle(center, d)
}

func parseFloats(str string, fields []string) ([]float64, error) {
	nums := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, shape.InvalidGeometry(err, "Bad number %q in %s", f, str)
		}
		nums[i] = v
	}
	return nums, nil
}

// WriteShape produces WKT for complex geometries and the simple formats for
// everything else.
func (c *Codec) WriteShape(s shape.Shape) (string, error) {
	switch s := s.(type) {
	case *shape.Geometry:
		out, err := wkt.Marshal(s.Geom())
		if err != nil {
			return "", shape.InvalidGeometry(err, "Cannot write WKT: %v", err)
		}
		return out, nil
	case *shape.Point:
		return formatFloat(s.X()) + " " + formatFloat(s.Y()), nil
	case *shape.Rectangle:
		return strings.Join([]string{
			formatFloat(s.MinX()),
			formatFloat(s.MinY()),
			formatFloat(s.MaxX()),
			formatFloat(s.MaxY()),
		}, " "), nil
	case *shape.Circle:
		p := s.Center()
		return "Circle(" + formatFloat(p.X()) + " " + formatFloat(p.Y()) + " d=" + formatFloat(s.Radius()) + ")", nil
	}
	return "", shape.UnsupportedShape("No text form for %T", s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
