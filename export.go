package dateline

import (
	"encoding/json"
	"io"

	gj "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/rubenv/dateline/geojson"
)

// ExportLayer writes a layer as a GeoJSON FeatureCollection. Every feature
// carries its store id.
func (e *Env) ExportLayer(layer string, out io.Writer) (int, error) {
	fc := gj.NewFeatureCollection()
	err := e.ForEachShape(layer, func(s *StoredShape) error {
		f, err := geojson.NewFeature(s.ID, s.Shape, e.Context)
		if err != nil {
			return errors.Wrapf(err, "Failed to convert %s/%s", layer, s.ID)
		}
		fc.AddFeature(f)
		return nil
	})
	if err != nil {
		return 0, err
	}

	err = json.NewEncoder(out).Encode(fc)
	if err != nil {
		return 0, err
	}
	return len(fc.Features), nil
}
