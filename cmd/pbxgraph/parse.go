package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/engindearing/pbxgraph/analysis"
	"github.com/engindearing/pbxgraph/parse"
)

func runParse(cfg *ParseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: parse wants one document argument", cli.ErrUsage)
	}
	data, err := readInput(args[0])
	if err != nil {
		return err
	}
	doc, err := parse.Parse(data)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", args[0], err)
	}
	logger := cfg.logger()
	logger.Debug("parsed document", "records", doc.Len(), "sections", len(doc.Sections()))

	out, err := cfg.artifact(analysis.Snapshot(doc))
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(out)
	return err
}
