package cmd

import (
	"fmt"
	"sort"
)

type CmdImport struct {
	global *GlobalOptions

	Shapefile string `short:"f" long:"file" description:"Import this shapefile instead of the configured one"`
	IDField   string `short:"i" long:"id-field" description:"Attribute holding the id, used with --file"`
}

func init() {
	_, err := parser.AddCommand("import",
		"Import shapefiles",
		"Imports layers from shapefiles, all configured layers when none are given",
		&CmdImport{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdImport) Usage() string {
	return "[layer...]"
}

func (cmd CmdImport) Execute(args []string) error {
	env, err := cmd.global.NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if cmd.Shapefile != "" {
		if len(args) != 1 {
			return fmt.Errorf("Need exactly one layer with --file, Usage: %s", cmd.Usage())
		}

		stats, err := env.ImportShapefile(args[0], cmd.Shapefile, cmd.IDField)
		if err != nil {
			return fmt.Errorf("Failed to import: %s", err)
		}
		fmt.Printf("%s: %d imported, %d invalid\n", args[0], stats.Imported, stats.Invalid)
		return nil
	}

	layers := args
	if len(layers) == 0 {
		for name := range env.Config.Layers {
			layers = append(layers, name)
		}
		sort.Strings(layers)
	}
	if len(layers) == 0 {
		return fmt.Errorf("No layers configured, Usage: %s", cmd.Usage())
	}

	for _, name := range layers {
		stats, err := env.ImportLayer(name)
		if err != nil {
			return fmt.Errorf("Failed to import %s: %s", name, err)
		}
		fmt.Printf("%s: %d imported, %d invalid\n", name, stats.Imported, stats.Invalid)
	}

	return nil
}
