package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/engindearing/pbxgraph/analysis"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='enable debug logging'"`

	J bool `cli:"name=j aliases=json desc='write artifacts as json'"`
	Y bool `cli:"name=y aliases=yaml desc='write artifacts as yaml'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// artifact renders an analysis in the selected encoding, json unless
// -y[aml] was given.
func (cfg *MainConfig) artifact(a *analysis.Analysis) ([]byte, error) {
	if cfg.Y {
		return a.YAML()
	}
	return a.JSON()
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}

type ParseConfig struct {
	*MainConfig

	Parse *cli.Command
}

type RebuildConfig struct {
	*MainConfig
	Analysis  string `cli:"name=analysis desc='analysis artifact (json or yaml)'"`
	Structure string `cli:"name=structure desc='group structure (json or yaml)'"`
	PatchFile string `cli:"name=patch desc='json merge patch applied to the analysis'"`
	Set       []string

	Rebuild *cli.Command
}

func (cfg *RebuildConfig) setOpt(cc *cli.Context, a string) (any, error) {
	if _, _, ok := strings.Cut(a, "="); !ok {
		return nil, fmt.Errorf("%w: -set wants key=value, got %q", cli.ErrUsage, a)
	}
	cfg.Set = append(cfg.Set, a)
	return nil, nil
}

type ValidateConfig struct {
	*MainConfig
	Require []string
	Rules   []string

	Validate *cli.Command
}

func (cfg *ValidateConfig) requireOpt(cc *cli.Context, a string) (any, error) {
	if _, _, ok := strings.Cut(a, "="); !ok {
		return nil, fmt.Errorf("%w: -require wants field=value, got %q", cli.ErrUsage, a)
	}
	cfg.Require = append(cfg.Require, a)
	return nil, nil
}

func (cfg *ValidateConfig) ruleOpt(cc *cli.Context, a string) (any, error) {
	if _, _, ok := strings.Cut(a, "="); !ok {
		return nil, fmt.Errorf("%w: -rule wants name=expr, got %q", cli.ErrUsage, a)
	}
	cfg.Rules = append(cfg.Rules, a)
	return nil, nil
}

type FmtConfig struct {
	*MainConfig
	NoComments bool `cli:"name=nocomments desc='drop inline comment labels'"`

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Raw bool `cli:"name=raw desc='diff file bytes without normalizing first'"`

	Diff *cli.Command
}

type AddConfig struct {
	*MainConfig
	Project string `cli:"name=project desc='document to add files to'"`
	Target  string `cli:"name=target desc='target name (defaults to the only target)'"`
	Write   bool   `cli:"name=w desc='rewrite the document in place'"`

	Add *cli.Command
}
