package dateline

import (
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/rubenv/dateline/shape"
)

func TestValidateLayer(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)
	ctx := env.Context

	is.NoErr(env.PutShape("parcels", "ok", shape.NewRectangle(0, 1, 0, 1, ctx)))
	is.NoErr(env.PutShape("parcels", "point", shape.NewPoint(1, 1, ctx)))

	// Values written by something that did not check them
	bowtie, err := wkb.Marshal(geom.NewPolygonFlat(geom.XY, []float64{0, 0, 10, 10, 10, 0, 0, 10, 0, 0}, []int{10}), wkb.XDR)
	is.NoErr(err)
	is.NoErr(env.db.Put(env.wo, shapeKey("parcels", "bowtie"), append([]byte{2}, bowtie...)))
	is.NoErr(env.db.Put(env.wo, shapeKey("parcels", "short"), []byte{0, 1, 2}))

	invalid, err := env.ValidateLayer("parcels")
	is.NoErr(err)
	is.Equal(len(invalid), 2)
	is.Equal(invalid[0].ID, "bowtie")
	is.True(strings.Contains(strings.ToLower(invalid[0].Reason), "self-intersection"))
	is.Equal(invalid[1].ID, "short")

	invalid, err = env.ValidateLayer("empty")
	is.NoErr(err)
	is.Equal(len(invalid), 0)
}
