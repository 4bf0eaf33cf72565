package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/engindearing/pbxgraph/analysis"
	"github.com/engindearing/pbxgraph/encode"
	"github.com/engindearing/pbxgraph/parse"
)

func runAdd(cfg *AddConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Add.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return fmt.Errorf("%w: add wants -project", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: add wants at least one file", cli.ErrUsage)
	}
	data, err := readInput(cfg.Project)
	if err != nil {
		return err
	}
	doc, err := parse.Parse(data)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", cfg.Project, err)
	}

	added, err := analysis.AddFiles(doc, cfg.Target, args)
	if err != nil {
		return err
	}
	logger := cfg.logger()
	logger.Debug("added files", "requested", len(args), "added", len(added))
	for _, w := range doc.AllocWarnings() {
		logger.Warn("seeded identifier collision", "seed", w.Seed, "substituted", w.ID)
	}

	if cfg.Write {
		f, err := os.OpenFile(cfg.Project, os.O_TRUNC|os.O_RDWR, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		return encode.Encode(doc, f)
	}
	return encode.Encode(doc, cc.Out)
}
