package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type CmdExport struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("export",
		"Export a layer",
		"Writes a layer as a GeoJSON FeatureCollection",
		&CmdExport{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdExport) Usage() string {
	return "layer [out.geojson]"
}

func (cmd CmdExport) Execute(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("Layer not specified, Usage: %s", cmd.Usage())
	}

	env, err := cmd.global.NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	var out io.Writer = os.Stdout
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	n, err := env.ExportLayer(args[0], out)
	if err != nil {
		return fmt.Errorf("Failed to export: %s", err)
	}
	env.Log.WithFields(logrus.Fields{
		"layer":    args[0],
		"features": n,
	}).Info("Exported")
	return nil
}
