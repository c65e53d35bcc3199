package shape

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geos"
)

// kernel hands geometries to GEOS for the operations that need real planar
// topology. Values cross the boundary as WKB.
type kernel struct {
	ctx *geos.Context
}

func newKernel() *kernel {
	return &kernel{
		ctx: geos.NewContext(),
	}
}

// guard turns a GEOS panic into an error.
func guard(op string, f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = InvalidGeometry(e, "%s failed: %v", op, e)
			} else {
				err = InvalidGeometry(nil, "%s failed: %v", op, r)
			}
		}
	}()
	f()
	return nil
}

func (k *kernel) fromGeom(g geom.T) (*geos.Geom, error) {
	data, err := wkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return nil, InvalidGeometry(err, "Cannot encode geometry: %v", err)
	}

	kg, err := k.ctx.NewGeomFromWKB(data)
	if err != nil {
		return nil, InvalidGeometry(err, "Kernel rejected geometry: %v", err)
	}
	return kg, nil
}

func (k *kernel) toGeom(kg *geos.Geom) (geom.T, error) {
	var data []byte
	err := guard("WKB export", func() {
		data = kg.ToWKB()
	})
	if err != nil {
		return nil, err
	}

	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot decode kernel output")
	}
	return g, nil
}

// validate returns the kernel's reason when kg is not valid.
func (k *kernel) validate(kg *geos.Geom) (bool, string, error) {
	var valid bool
	var reason string
	err := guard("validity check", func() {
		valid = kg.IsValid()
		if !valid {
			reason = kg.IsValidReason()
		}
	})
	return valid, reason, err
}

func (k *kernel) area(kg *geos.Geom) float64 {
	var a float64
	err := guard("area", func() {
		a = kg.Area()
	})
	if err != nil {
		return 0
	}
	return a
}

// union merges the parts of g into a single simple geometry.
func (k *kernel) union(g geom.T) (geom.T, error) {
	kg, err := k.fromGeom(g)
	if err != nil {
		return nil, err
	}

	var u *geos.Geom
	err = guard("union", func() {
		u = kg.UnaryUnion()
	})
	if err != nil {
		return nil, err
	}

	out, err := k.toGeom(u)
	if err != nil {
		return nil, err
	}
	return homogenize([]geom.T{out}), nil
}

func (k *kernel) intersection(a *geos.Geom, b geom.T) (geom.T, error) {
	kb, err := k.fromGeom(b)
	if err != nil {
		return nil, err
	}

	var i *geos.Geom
	err = guard("intersection", func() {
		i = kb.Intersection(a)
	})
	if err != nil {
		return nil, err
	}

	return k.toGeom(i)
}
