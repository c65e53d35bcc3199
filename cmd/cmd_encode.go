package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
)

type CmdEncode struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("encode",
		"Encode a shape",
		"Reads the hex dump of a binary shape and prints it in text form",
		&CmdEncode{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdEncode) Usage() string {
	return "00405900000000000040490000000000"
}

func (cmd CmdEncode) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("Hex data not specified, Usage: %s", cmd.Usage())
	}

	data, err := hex.DecodeString(args[0])
	if err != nil {
		return err
	}

	c, err := cmd.global.NewCodec()
	if err != nil {
		return err
	}

	s, err := c.ReadShapeFromBytes(data, 0, len(data))
	if err != nil {
		return err
	}

	text, err := c.WriteShape(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}
