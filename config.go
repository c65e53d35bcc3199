package dateline

import (
	"io"
	"io/ioutil"
	"os"
	"runtime"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/rubenv/dateline/shape"
)

const DefaultStore = "data"

type Config struct {
	// Defaults to true
	Geo               *bool     `yaml:"geo"`
	WorldBounds       []float64 `yaml:"world_bounds"`
	NormWrapLongitude bool      `yaml:"norm_wrap_longitude"`
	Distance          string    `yaml:"distance"`

	Store   string            `yaml:"store"`
	Workers int               `yaml:"workers"`
	Layers  map[string]*Layer `yaml:"layers"`
}

type Layer struct {
	Shapefile string `yaml:"shapefile"`

	// Attribute holding the feature id, record number when empty
	IDField string `yaml:"id_field"`
}

func ReadConfig(configPath string) (*Config, error) {
	f, err := os.Open(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open config %s", configPath)
	}
	defer f.Close()

	return ParseConfig(f)
}

func ParseConfig(in io.Reader) (*Config, error) {
	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	err = yaml.UnmarshalStrict(data, config)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}

	if config.Geo == nil {
		geo := true
		config.Geo = &geo
	}
	if config.Store == "" {
		config.Store = DefaultStore
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Layers == nil {
		config.Layers = make(map[string]*Layer)
	}
	for name, l := range config.Layers {
		if l == nil || l.Shapefile == "" {
			return nil, errors.Errorf("Layer %s has no shapefile", name)
		}
	}

	return config, nil
}

func (c *Config) NewContext() (*shape.Context, error) {
	return shape.NewContext(shape.ContextOptions{
		Geo:               c.Geo == nil || *c.Geo,
		NormWrapLongitude: c.NormWrapLongitude,
		WorldBounds:       c.WorldBounds,
		Distance:          c.Distance,
	})
}

func (c *Config) Layer(name string) (*Layer, error) {
	l, ok := c.Layers[name]
	if !ok {
		return nil, errors.Errorf("Unknown layer: %s", name)
	}
	return l, nil
}
