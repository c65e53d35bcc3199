package cmd

import (
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rubenv/dateline"
	"github.com/rubenv/dateline/codec"
)

type GlobalOptions struct {
	Config  string `short:"c" long:"config" description:"Config file path"`
	Store   string `short:"d" long:"datastore" description:"Data store path, overrides the config"`
	Verbose bool   `short:"v" long:"verbose" description:"Show debug output"`
	Quiet   bool   `short:"q" long:"quiet" description:"Hide progress bars"`
}

var globalOpts = GlobalOptions{}
var parser = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)

func Run() error {
	_, err := parser.Parse()
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	return err
}

// LoadConfig reads the config file, or returns the defaults when none was
// given.
func (g *GlobalOptions) LoadConfig() (*dateline.Config, error) {
	if g.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var config *dateline.Config
	var err error
	if g.Config == "" {
		config, err = dateline.ParseConfig(strings.NewReader(""))
	} else {
		config, err = dateline.ReadConfig(g.Config)
	}
	if err != nil {
		return nil, err
	}

	if g.Store != "" {
		config.Store = g.Store
	}
	return config, nil
}

func (g *GlobalOptions) NewCodec() (*codec.Codec, error) {
	config, err := g.LoadConfig()
	if err != nil {
		return nil, err
	}

	ctx, err := config.NewContext()
	if err != nil {
		return nil, err
	}
	return codec.New(ctx), nil
}

func (g *GlobalOptions) NewEnv() (*dateline.Env, error) {
	config, err := g.LoadConfig()
	if err != nil {
		return nil, err
	}

	env, err := dateline.NewEnv(config, logrus.StandardLogger())
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create env")
	}
	env.Quiet = g.Quiet
	return env, nil
}
