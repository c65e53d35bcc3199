package cmd

import (
	"fmt"
	"os"
)

type CmdRelate struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("relate",
		"Relate two shapes",
		"Prints how the first shape relates to the second one",
		&CmdRelate{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdRelate) Usage() string {
	return "shape other"
}

func (cmd CmdRelate) Execute(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("Shapes not specified, Usage: %s", cmd.Usage())
	}

	c, err := cmd.global.NewCodec()
	if err != nil {
		return err
	}

	a, err := c.ReadShape(args[0])
	if err != nil {
		return err
	}
	b, err := c.ReadShape(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, a.Relate(b))
	return nil
}
