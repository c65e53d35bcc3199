package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kr/pretty"

	"github.com/rubenv/dateline/geojson"
)

type CmdGet struct {
	global *GlobalOptions

	Format string `short:"f" long:"format" description:"Output format" choice:"text" choice:"geojson" choice:"dump" default:"text"`
}

func init() {
	_, err := parser.AddCommand("get",
		"Get a shape",
		"Get a shape from the datastore",
		&CmdGet{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdGet) Usage() string {
	return "layer id"
}

func (cmd CmdGet) Execute(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("Options missing, Usage: %s", cmd.Usage())
	}

	env, err := cmd.global.NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	s, err := env.GetShape(args[0], args[1])
	if err != nil {
		return fmt.Errorf("Failed to get shape: %s", err)
	}
	if s == nil {
		return fmt.Errorf("No shape %s in layer %s", args[1], args[0])
	}

	switch cmd.Format {
	case "dump":
		fmt.Printf("%# v\n", pretty.Formatter(s))
	case "geojson":
		f, err := geojson.NewFeature(args[1], s, env.Context)
		if err != nil {
			return err
		}

		b, err := json.Marshal(f)
		if err != nil {
			return err
		}
		os.Stdout.Write(b)
		os.Stdout.WriteString("\n")
	default:
		return describe(os.Stdout, env.Codec, s)
	}

	return nil
}
