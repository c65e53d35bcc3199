package dateline

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rubenv/dateline/shape"
)

type InvalidShape struct {
	ID     string
	Reason string
}

type rawShape struct {
	id   string
	data []byte
}

// ValidateLayer decodes every stored shape of a layer, which repeats the
// dateline repair and the topology check, and reports the ones that fail.
func (e *Env) ValidateLayer(layer string) ([]*InvalidShape, error) {
	log := e.Log.WithField("layer", layer)

	ids, err := e.GetShapeIDs(layer)
	if err != nil {
		return nil, err
	}

	bar := e.newBar(len(ids))
	defer bar.Finish()

	var g errgroup.Group

	raw := make(chan *rawShape, 100)
	g.Go(func() error {
		defer close(raw)
		return e.scanLayer(layer, func(id string, data []byte) error {
			raw <- &rawShape{id: id, data: data}
			return nil
		})
	})

	var mu sync.Mutex
	result := make([]*InvalidShape, 0)
	for i := 0; i < e.Config.Workers; i++ {
		g.Go(func() error {
			for r := range raw {
				_, err := e.Codec.ReadShapeFromBytes(r.data, 0, len(r.data))
				bar.Increment()
				if err == nil {
					continue
				}

				reason := shape.Reason(err)
				log.WithFields(logrus.Fields{
					"id":     r.id,
					"reason": reason,
				}).Warn("Invalid shape")

				mu.Lock()
				result = append(result, &InvalidShape{ID: r.id, Reason: reason})
				mu.Unlock()
			}
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
