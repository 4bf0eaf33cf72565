package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/engindearing/pbxgraph/analysis"
	"github.com/engindearing/pbxgraph/encode"
)

func runRebuild(cfg *RebuildConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Rebuild.Parse(cc, args); err != nil {
		return err
	}
	if cfg.Analysis == "" || cfg.Structure == "" {
		return fmt.Errorf("%w: rebuild wants -analysis and -structure", cli.ErrUsage)
	}
	logger := cfg.logger()

	aData, err := readInput(cfg.Analysis)
	if err != nil {
		return err
	}
	a, err := analysis.DecodeAnalysis(aData)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", cfg.Analysis, err)
	}
	if cfg.PatchFile != "" {
		p, err := readInput(cfg.PatchFile)
		if err != nil {
			return err
		}
		if a, err = a.Patch(p); err != nil {
			return fmt.Errorf("error applying %s: %w", cfg.PatchFile, err)
		}
		logger.Debug("applied merge patch", "patch", cfg.PatchFile)
	}

	sData, err := readInput(cfg.Structure)
	if err != nil {
		return err
	}
	s, err := analysis.DecodeStructure(sData)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", cfg.Structure, err)
	}

	var opts []analysis.BuildOption
	for _, kv := range cfg.Set {
		key, value, _ := strings.Cut(kv, "=")
		opts = append(opts, analysis.WithCriticalSetting(key, value))
	}

	doc, err := analysis.Build(a, s, opts...)
	if err != nil {
		return err
	}
	for _, w := range doc.AllocWarnings() {
		logger.Warn("seeded identifier collision", "seed", w.Seed, "substituted", w.ID)
	}
	logger.Debug("rebuilt document", "records", doc.Len())
	return encode.Encode(doc, cc.Out)
}
