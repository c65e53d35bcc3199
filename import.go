package dateline

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jonas-p/go-shp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const importBatchSize = 1000

type ImportStats struct {
	Imported int
	Invalid  int
}

type shpRecord struct {
	row   int
	id    string
	shape shp.Shape
}

// ImportLayer replaces the contents of a configured layer with its shapefile.
func (e *Env) ImportLayer(name string) (*ImportStats, error) {
	l, err := e.Config.Layer(name)
	if err != nil {
		return nil, err
	}
	return e.ImportShapefile(name, l.Shapefile, l.IDField)
}

// ImportShapefile stores every shape of a shapefile in a layer, keyed by the
// idField attribute or the record number. Records that do not form a valid
// shape are logged and skipped.
func (e *Env) ImportShapefile(layer, filename, idField string) (*ImportStats, error) {
	err := checkName("layer", layer)
	if err != nil {
		return nil, err
	}

	log := e.Log.WithFields(logrus.Fields{
		"layer": layer,
		"file":  filename,
	})

	r, err := shp.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open %s", filename)
	}
	defer r.Close()

	idIndex := -1
	if idField != "" {
		for i, f := range r.Fields() {
			if f.String() == idField {
				idIndex = i
			}
		}
		if idIndex < 0 {
			return nil, errors.Errorf("Unknown attribute %s in %s", idField, filename)
		}
	}

	log.Info("Removing old shapes")
	err = e.RemoveLayer(layer)
	if err != nil {
		return nil, err
	}

	log.Info("Importing")
	bar := e.newBar(r.AttributeCount())
	defer bar.Finish()

	var g errgroup.Group
	var invalid int64

	// The shapefile reader is not safe for concurrent use, everything
	// that touches it stays on this goroutine.
	records := make(chan *shpRecord, 100)
	g.Go(func() error {
		defer close(records)

		for r.Next() {
			row, s := r.Shape()
			id := strconv.Itoa(row)
			if idIndex >= 0 {
				id = strings.Trim(r.ReadAttribute(row, idIndex), " \x00")
			}
			records <- &shpRecord{row: row, id: id, shape: s}
		}
		return r.Err()
	})

	workers := e.Config.Workers
	shapes := make(chan *StoredShape, 100)
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			defer wg.Done()
			for rec := range records {
				s, err := e.convertRecord(rec)
				if err != nil {
					log.WithFields(logrus.Fields{
						"row": rec.row,
						"id":  rec.id,
					}).WithError(err).Warn("Skipping invalid shape")
					atomic.AddInt64(&invalid, 1)
					bar.Increment()
					continue
				}
				shapes <- s
			}
			return nil
		})
	}
	g.Go(func() error {
		wg.Wait()
		close(shapes)
		return nil
	})

	imported := 0
	g.Go(func() error {
		batch := make([]*StoredShape, 0, importBatchSize)
		for s := range shapes {
			batch = append(batch, s)
			if len(batch) == importBatchSize {
				err := e.putShapes(layer, batch)
				if err != nil {
					drain(shapes)
					return err
				}
				imported += len(batch)
				bar.Add(len(batch))
				batch = batch[:0]
			}
		}

		err := e.putShapes(layer, batch)
		if err != nil {
			return err
		}
		imported += len(batch)
		bar.Add(len(batch))
		return nil
	})

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{
		Imported: imported,
		Invalid:  int(invalid),
	}
	log.WithFields(logrus.Fields{
		"imported": stats.Imported,
		"invalid":  stats.Invalid,
	}).Info("Done")
	return stats, nil
}

func (e *Env) convertRecord(rec *shpRecord) (*StoredShape, error) {
	err := checkName("id", rec.id)
	if err != nil {
		return nil, err
	}

	g, err := shpToGeom(rec.shape)
	if err != nil {
		return nil, err
	}

	s, err := e.Codec.FromGeom(g)
	if err != nil {
		return nil, err
	}
	return &StoredShape{ID: rec.id, Shape: s}, nil
}

func drain(shapes <-chan *StoredShape) {
	for range shapes {
	}
}
