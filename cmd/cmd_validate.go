package cmd

import "fmt"

type CmdValidate struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("validate",
		"Validate a layer",
		"Decodes every shape of a layer and lists the ones that are no longer valid",
		&CmdValidate{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdValidate) Usage() string {
	return "layer"
}

func (cmd CmdValidate) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("Layer not specified, Usage: %s", cmd.Usage())
	}

	env, err := cmd.global.NewEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	invalid, err := env.ValidateLayer(args[0])
	if err != nil {
		return err
	}

	for _, s := range invalid {
		fmt.Printf("%s\t%s\n", s.ID, s.Reason)
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%d invalid shapes in %s", len(invalid), args[0])
	}
	return nil
}
