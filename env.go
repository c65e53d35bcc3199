package dateline

import (
	"os"
	"path"
	"runtime"
	"syscall"

	"github.com/cheggaaa/pb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tecbot/gorocksdb"

	"github.com/rubenv/dateline/codec"
	"github.com/rubenv/dateline/shape"
)

// Env bundles the spatial context, the codec used for stored values and the
// shape store itself.
type Env struct {
	Config  *Config
	Context *shape.Context
	Codec   *codec.Codec
	Log     logrus.FieldLogger

	// Hides progress bars
	Quiet bool

	db *gorocksdb.DB
	wo *gorocksdb.WriteOptions
	ro *gorocksdb.ReadOptions
}

func NewEnv(config *Config, log logrus.FieldLogger) (*Env, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	ctx, err := config.NewContext()
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config:  config,
		Context: ctx,
		Codec:   codec.New(ctx),
		Log:     log.WithField("store", config.Store),
	}
	err = env.openStore()
	if err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Env) openStore() error {
	// Determine max number of open files
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		return errors.Wrap(err, "Failed to get open file limit")
	}
	maxOpen := int(rLimit.Cur) - 100
	if maxOpen < 64 {
		maxOpen = 64
	}

	storeFolder := path.Join(e.Config.Store, "shapes")
	err = os.MkdirAll(storeFolder, 0755)
	if err != nil {
		return err
	}

	opts := gorocksdb.NewDefaultOptions()
	bb := gorocksdb.NewDefaultBlockBasedTableOptions()
	bb.SetBlockCache(gorocksdb.NewLRUCache(256 << 20))
	bb.SetFilterPolicy(gorocksdb.NewBloomFilter(10))
	opts.SetCreateIfMissing(true)
	opts.SetBlockBasedTableFactory(bb)
	opts.SetMaxOpenFiles(maxOpen)
	opts.SetMaxBackgroundCompactions(1)
	db, err := gorocksdb.OpenDb(opts, storeFolder)
	if err != nil {
		return errors.Wrap(err, "Failed to open store")
	}
	e.db = db

	e.wo = gorocksdb.NewDefaultWriteOptions()
	e.ro = gorocksdb.NewDefaultReadOptions()
	e.ro.SetFillCache(false)
	e.Log.Debug("Store opened")
	return nil
}

func (e *Env) Close() {
	e.wo.Destroy()
	e.ro.Destroy()
	e.db.Close()
}

func (e *Env) newBar(total int) *pb.ProgressBar {
	bar := pb.New(total)
	bar.NotPrint = e.Quiet
	return bar.Start()
}
