package shape

import (
	"testing"

	"github.com/cheekybits/is"
	"github.com/twpayne/go-geom"
)

func TestUnwrapLineLeftToRight(t *testing.T) {
	is := is.New(t)

	l := geom.NewLineStringFlat(geom.XY, []float64{170, 0, -170, 0})
	crossings, err := unwrapDateline(l)
	is.NoErr(err)
	is.Equal(crossings, 1)
	is.Equal(l.FlatCoords(), []float64{170, 0, 190, 0})
}

func TestUnwrapLineRightToLeft(t *testing.T) {
	is := is.New(t)

	l := geom.NewLineStringFlat(geom.XY, []float64{-170, 0, 170, 0})
	crossings, err := unwrapDateline(l)
	is.NoErr(err)
	is.Equal(crossings, 1)
	is.Equal(l.FlatCoords(), []float64{190, 0, 170, 0})
}

func TestUnwrapLineMultipleWraps(t *testing.T) {
	is := is.New(t)

	l := geom.NewLineStringFlat(geom.XY, []float64{
		100, 0,
		-100, 1,
		60, 2,
		-140, 3,
		100, 4,
		-100, 5,
	})
	crossings, err := unwrapDateline(l)
	is.NoErr(err)
	is.Equal(crossings, 2)
	is.Equal(l.FlatCoords(), []float64{
		100, 0,
		260, 1,
		420, 2,
		580, 3,
		460, 4,
		620, 5,
	})
}

func TestUnwrapNoop(t *testing.T) {
	is := is.New(t)

	flat := []float64{-100, 0, 0, 10, 100, 20}
	l := geom.NewLineStringFlat(geom.XY, append([]float64(nil), flat...))

	// wide, but every step is shorter than half the globe
	crossings, err := unwrapDateline(l)
	is.NoErr(err)
	is.Equal(crossings, 0)
	is.Equal(l.FlatCoords(), flat)

	l = geom.NewLineStringFlat(geom.XY, []float64{0, 0, 10, 10})
	crossings, err = unwrapDateline(l)
	is.NoErr(err)
	is.Equal(crossings, 0)
	is.Equal(l.FlatCoords(), []float64{0, 0, 10, 10})
}

func TestUnwrapPolygonWithHole(t *testing.T) {
	is := is.New(t)

	p := geom.NewPolygonFlat(geom.XY, []float64{
		170, -10, -170, -10, -170, 10, 170, 10, 170, -10,
		-178, -5, -176, -5, -176, 5, -178, 5, -178, -5,
	}, []int{10, 20})

	crossings, err := unwrapDateline(p)
	is.NoErr(err)
	is.Equal(crossings, 1)
	is.Equal(p.LinearRing(0).FlatCoords(), []float64{170, -10, 190, -10, 190, 10, 170, 10, 170, -10})
	is.Equal(p.LinearRing(1).FlatCoords(), []float64{182, -5, 184, -5, 184, 5, 182, 5, 182, -5})
}

func TestUnwrapPolygonStrayHole(t *testing.T) {
	is := is.New(t)

	p := geom.NewPolygonFlat(geom.XY, []float64{
		170, -10, -170, -10, -170, 10, 170, 10, 170, -10,
		0, -5, 2, -5, 2, 5, 0, 5, 0, -5,
	}, []int{10, 20})

	_, err := unwrapDateline(p)
	is.Err(err)
}

func TestUnwrapMultiLineString(t *testing.T) {
	is := is.New(t)

	ml := geom.NewMultiLineStringFlat(geom.XY, []float64{
		170, 0, -170, 0,
		-10, 0, 10, 0,
	}, []int{4, 8})

	crossings, err := unwrapDateline(ml)
	is.NoErr(err)
	is.Equal(crossings, 1)
	is.Equal(ml.FlatCoords(), []float64{170, 0, 190, 0, -10, 0, 10, 0})
}
