package dateline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/tecbot/gorocksdb"

	"github.com/rubenv/dateline/shape"
)

// StoredShape is a shape as read back from the store.
type StoredShape struct {
	ID    string
	Shape shape.Shape
}

func shapeKey(layer, id string) []byte {
	return []byte(fmt.Sprintf("shape/%s/%s", layer, id))
}

func layerPrefix(layer string) string {
	return fmt.Sprintf("shape/%s/", layer)
}

func checkName(kind, name string) error {
	if name == "" || strings.Contains(name, "/") {
		return errors.Errorf("Bad %s name: %q", kind, name)
	}
	return nil
}

func (e *Env) PutShape(layer, id string, s shape.Shape) error {
	return e.putShapes(layer, []*StoredShape{{ID: id, Shape: s}})
}

func (e *Env) putShapes(layer string, shapes []*StoredShape) error {
	err := checkName("layer", layer)
	if err != nil {
		return err
	}

	wb := gorocksdb.NewWriteBatch()
	defer wb.Destroy()
	for _, s := range shapes {
		err := checkName("id", s.ID)
		if err != nil {
			return err
		}

		data, err := e.Codec.WriteShapeToBytes(s.Shape)
		if err != nil {
			return errors.Wrapf(err, "Failed to encode %s/%s", layer, s.ID)
		}
		wb.Put(shapeKey(layer, s.ID), data)
	}
	return e.db.Write(e.wo, wb)
}

// GetShape returns nil when nothing is stored under id.
func (e *Env) GetShape(layer, id string) (shape.Shape, error) {
	n, err := e.db.Get(e.ro, shapeKey(layer, id))
	if err != nil {
		return nil, err
	}
	defer n.Free()

	if n.Size() == 0 {
		return nil, nil
	}

	s, err := e.Codec.ReadShapeFromBytes(n.Data(), 0, n.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode %s/%s", layer, id)
	}
	return s, nil
}

func (e *Env) DeleteShape(layer, id string) error {
	return e.db.Delete(e.wo, shapeKey(layer, id))
}

func (e *Env) GetShapeIDs(layer string) ([]string, error) {
	result := make([]string, 0)
	err := e.scanLayer(layer, func(id string, _ []byte) error {
		result = append(result, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Env) RemoveLayer(layer string) error {
	keys, err := e.GetShapeIDs(layer)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	wb := gorocksdb.NewWriteBatch()
	defer wb.Destroy()

	for _, k := range keys {
		wb.Delete(shapeKey(layer, k))
	}

	return e.db.Write(e.wo, wb)
}

// ForEachShape decodes every shape of a layer in key order.
func (e *Env) ForEachShape(layer string, f func(s *StoredShape) error) error {
	return e.scanLayer(layer, func(id string, data []byte) error {
		s, err := e.Codec.ReadShapeFromBytes(data, 0, len(data))
		if err != nil {
			return errors.Wrapf(err, "Failed to decode %s/%s", layer, id)
		}
		return f(&StoredShape{ID: id, Shape: s})
	})
}

// scanLayer hands out copies of the raw values stored in a layer.
func (e *Env) scanLayer(layer string, f func(id string, data []byte) error) error {
	ro := gorocksdb.NewDefaultReadOptions()
	defer ro.Destroy()
	ro.SetFillCache(false)

	it := e.db.NewIterator(ro)
	defer it.Close()

	keyPrefix := layerPrefix(layer)
	for it.Seek([]byte(keyPrefix)); it.Valid(); it.Next() {
		key := it.Key()
		k := string(key.Data())
		key.Free()
		if !strings.HasPrefix(k, keyPrefix) {
			break
		}

		value := it.Value()
		data := append([]byte(nil), value.Data()...)
		value.Free()

		err := f(k[len(keyPrefix):], data)
		if err != nil {
			return err
		}
	}

	return it.Err()
}
