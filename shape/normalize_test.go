package shape

import (
	"testing"

	"github.com/cheekybits/is"
)

func TestNormLonDeg(t *testing.T) {
	is := is.New(t)

	is.Equal(NormLonDeg(0), 0.0)
	is.Equal(NormLonDeg(180), 180.0)
	is.Equal(NormLonDeg(-180), -180.0)
	is.Equal(NormLonDeg(190), -170.0)
	is.Equal(NormLonDeg(-190), 170.0)
	is.Equal(NormLonDeg(540), 180.0)
	is.Equal(NormLonDeg(360), 0.0)
}

func TestNormLatDeg(t *testing.T) {
	is := is.New(t)

	is.Equal(NormLatDeg(45), 45.0)
	is.Equal(NormLatDeg(100), 80.0)
	is.Equal(NormLatDeg(-100), -80.0)
	is.Equal(NormLatDeg(180), 0.0)
}

