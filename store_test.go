package dateline

import (
	"math"
	"testing"

	"github.com/cheekybits/is"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/rubenv/dateline/shape"
)

func newTestEnv(t *testing.T) (*Env, *test.Hook) {
	if testing.Short() {
		t.Skip("Skipping store test in short mode")
	}

	geo := true
	config := &Config{
		Geo:     &geo,
		Store:   t.TempDir(),
		Workers: 4,
		Layers:  make(map[string]*Layer),
	}

	log, hook := test.NewNullLogger()
	env, err := NewEnv(config, log)
	if err != nil {
		t.Fatal(err)
	}
	env.Quiet = true
	t.Cleanup(env.Close)
	return env, hook
}

func TestStoreShapes(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)
	ctx := env.Context

	poly, err := env.Codec.ReadShape("POLYGON((170 30, 140 40, 170 -20, -140 20, 180 0, 170 30))")
	is.NoErr(err)

	is.NoErr(env.PutShape("islands", "a", shape.NewPoint(1, 2, ctx)))
	is.NoErr(env.PutShape("islands", "b", shape.NewRectangle(170, -170, -10, 10, ctx)))
	is.NoErr(env.PutShape("islands", "c", poly))
	is.NoErr(env.PutShape("lakes", "a", shape.NewPoint(3, 4, ctx)))

	s, err := env.GetShape("islands", "a")
	is.NoErr(err)
	is.True(s.Equal(shape.NewPoint(1, 2, ctx)))

	s, err = env.GetShape("islands", "b")
	is.NoErr(err)
	is.True(s.(*shape.Rectangle).CrossesDateline())

	// Stored already split at the dateline, so the bounding box read back
	// spans the globe. Relations are unaffected.
	s, err = env.GetShape("islands", "c")
	is.NoErr(err)
	is.True(math.Abs(s.Area(nil)-poly.Area(nil)) < 1e-6)
	is.Equal(s.Relate(shape.NewPoint(170, 4, ctx)), shape.Contains)
	is.Equal(s.Relate(shape.NewPoint(-170, 4, ctx)), shape.Contains)
	is.Equal(s.Relate(shape.NewPoint(-175, 4, ctx)), shape.Disjoint)

	s, err = env.GetShape("islands", "missing")
	is.NoErr(err)
	is.Nil(s)

	ids, err := env.GetShapeIDs("islands")
	is.NoErr(err)
	is.Equal(ids, []string{"a", "b", "c"})

	is.NoErr(env.DeleteShape("islands", "b"))
	ids, err = env.GetShapeIDs("islands")
	is.NoErr(err)
	is.Equal(ids, []string{"a", "c"})

	is.NoErr(env.RemoveLayer("islands"))
	ids, err = env.GetShapeIDs("islands")
	is.NoErr(err)
	is.Equal(len(ids), 0)

	// Other layers are left alone
	s, err = env.GetShape("lakes", "a")
	is.NoErr(err)
	is.True(s.Equal(shape.NewPoint(3, 4, ctx)))
}

func TestStoreBadNames(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)
	p := shape.NewPoint(1, 2, env.Context)

	is.Err(env.PutShape("", "a", p))
	is.Err(env.PutShape("a/b", "a", p))
	is.Err(env.PutShape("islands", "", p))
	is.Err(env.PutShape("islands", "x/y", p))

	// Circles have no binary form
	is.Err(env.PutShape("islands", "a", shape.NewCircle(p, 1, env.Context)))
}

func TestForEachShape(t *testing.T) {
	is := is.New(t)
	env, _ := newTestEnv(t)
	ctx := env.Context

	for i, id := range []string{"x", "y", "z"} {
		is.NoErr(env.PutShape("points", id, shape.NewPoint(float64(i), 0, ctx)))
	}

	seen := make([]string, 0)
	err := env.ForEachShape("points", func(s *StoredShape) error {
		p, ok := s.Shape.(*shape.Point)
		is.True(ok)
		is.Equal(p.X(), float64(len(seen)))
		seen = append(seen, s.ID)
		return nil
	})
	is.NoErr(err)
	is.Equal(seen, []string{"x", "y", "z"})

	// Garbage makes decoding fail
	is.NoErr(env.db.Put(env.wo, shapeKey("points", "bad"), []byte{9, 9, 9}))
	err = env.ForEachShape("points", func(s *StoredShape) error {
		return nil
	})
	is.Err(err)
}
