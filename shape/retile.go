package shape

import (
	"math"

	"github.com/twpayne/go-geom"
)

// retile cuts an unwrapped geometry into 360 degree wide pages, moves every
// page back into [-180, 180] and unions the pieces.
func (k *kernel) retile(g geom.T) (geom.T, error) {
	b := g.Bounds()
	if b.IsEmpty() || b.Min(0) >= -180 && b.Max(0) <= 180 {
		return g, nil
	}

	kg, err := k.fromGeom(g)
	if err != nil {
		return nil, err
	}

	pages := make([]geom.T, 0, 2)
	for page := int(math.Floor((b.Min(0) + 180) / 360)); ; page++ {
		minX := -180 + float64(page)*360
		if b.Max(0) <= minX {
			break
		}

		frag, err := k.intersection(kg, envelopeGeom(minX, minX+360, -90, 90))
		if err != nil {
			return nil, err
		}
		if frag.Empty() {
			continue
		}

		frag = homogenize([]geom.T{frag})
		shiftX(frag.FlatCoords(), frag.Stride(), float64(page)*-360)
		pages = append(pages, frag)
	}

	if len(pages) == 1 {
		return pages[0], nil
	}
	return k.union(homogenize(pages))
}
