package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rubenv/dateline/codec"
	"github.com/rubenv/dateline/shape"
)

type CmdDecode struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("decode",
		"Decode a shape",
		"Parses a shape in text form, prints its binary form and what it looks like",
		&CmdDecode{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdDecode) Usage() string {
	return "'POLYGON((...))'"
}

func (cmd CmdDecode) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("Shape not specified, Usage: %s", cmd.Usage())
	}

	c, err := cmd.global.NewCodec()
	if err != nil {
		return err
	}

	s, err := c.ReadShape(args[0])
	if err != nil {
		return err
	}

	return describe(os.Stdout, c, s)
}

func describe(out io.Writer, c *codec.Codec, s shape.Shape) error {
	text, err := c.WriteShape(s)
	if err != nil {
		return err
	}

	bbox := s.BoundingBox()
	fmt.Fprintf(out, "Type:     %T\n", s)
	fmt.Fprintf(out, "Text:     %s\n", text)
	fmt.Fprintf(out, "Bounds:   %s\n", bbox)
	fmt.Fprintf(out, "Dateline: %v\n", bbox.CrossesDateline())
	fmt.Fprintf(out, "Center:   %s\n", s.Center())
	if s.HasArea() {
		fmt.Fprintf(out, "Area:     %g\n", s.Area(c.Context()))
	}

	data, err := c.WriteShapeToBytes(s)
	if err != nil {
		// Circles only have a text form
		return nil
	}
	fmt.Fprintf(out, "Binary:   %s\n", hex.EncodeToString(data))
	return nil
}
