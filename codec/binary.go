package codec

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/rubenv/dateline/shape"
)

// Leading byte of the binary form. Everything after it is big endian.
const (
	typePoint     byte = 0
	typeRectangle byte = 1
	typeGeometry  byte = 2
)

const (
	pointSize     = 1 + 2*8
	rectangleSize = 1 + 4*8
)

// ReadShapeFromBytes decodes the shape stored in buf[offset:offset+length].
func (c *Codec) ReadShapeFromBytes(buf []byte, offset, length int) (shape.Shape, error) {
	if offset < 0 || length < 0 || offset+length > len(buf) {
		return nil, shape.BufferUnderrun("Range %d+%d is outside a buffer of %d bytes", offset, length, len(buf))
	}
	if length == 0 {
		return nil, shape.BufferUnderrun("Empty shape buffer")
	}
	data := buf[offset : offset+length]

	switch data[0] {
	case typePoint:
		v, err := readFloats(data, 2)
		if err != nil {
			return nil, err
		}
		return shape.NewPoint(v[0], v[1], c.ctx), nil
	case typeRectangle:
		v, err := readFloats(data, 4)
		if err != nil {
			return nil, err
		}
		return shape.NewRectangle(v[0], v[1], v[2], v[3], c.ctx), nil
	case typeGeometry:
		g, err := wkb.Unmarshal(data[1:])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, shape.BufferUnderrun("Geometry needs more than %d bytes", length-1)
			}
			return nil, shape.InvalidGeometry(err, "error reading WKB: %v", err)
		}
		err = c.checkCoordinates(g)
		if err != nil {
			return nil, err
		}
		sg, err := c.ctx.MakeGeometry(g)
		if err != nil {
			return nil, err
		}
		return sg, nil
	}
	return nil, shape.UnknownShapeType("Unknown shape type %d", data[0])
}

func readFloats(data []byte, n int) ([]float64, error) {
	if len(data) < 1+8*n {
		return nil, shape.BufferUnderrun("Need %d bytes, got %d", 1+8*n, len(data))
	}
	v := make([]float64, n)
	for i := range v {
		off := 1 + 8*i
		v[i] = math.Float64frombits(binary.BigEndian.Uint64(data[off : off+8]))
	}
	return v, nil
}

// WriteShapeToBytes encodes points, rectangles and geometries. Circles have
// no binary form.
func (c *Codec) WriteShapeToBytes(s shape.Shape) ([]byte, error) {
	switch s := s.(type) {
	case *shape.Point:
		buf := make([]byte, pointSize)
		buf[0] = typePoint
		putFloats(buf, s.X(), s.Y())
		return buf, nil
	case *shape.Rectangle:
		buf := make([]byte, rectangleSize)
		buf[0] = typeRectangle
		putFloats(buf, s.MinX(), s.MaxX(), s.MinY(), s.MaxY())
		return buf, nil
	case *shape.Geometry:
		data, err := wkb.Marshal(s.Geom(), binary.BigEndian)
		if err != nil {
			return nil, shape.InvalidGeometry(err, "Cannot write WKB: %v", err)
		}
		return append([]byte{typeGeometry}, data...), nil
	}
	return nil, shape.UnsupportedShape("Unsupported shape %T", s)
}

func putFloats(buf []byte, v ...float64) {
	for i, f := range v {
		off := 1 + 8*i
		binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(f))
	}
}
