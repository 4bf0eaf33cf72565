package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/engindearing/pbxgraph/encode"
	"github.com/engindearing/pbxgraph/parse"
)

func runFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fmt wants one document argument", cli.ErrUsage)
	}
	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	doc, err := parse.Parse(data)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", args[0], err)
	}
	return encode.Encode(doc, cc.Out, encode.EncodeComments(!cfg.NoComments))
}
