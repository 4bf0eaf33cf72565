package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "pbxgraph").
		WithSynopsis("pbxgraph [opts] command [opts]").
		WithDescription("pbxgraph parses, rebuilds, and checks project object graphs.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return pbxMain(cfg, cc, args)
		}).
		WithSubs(
			ParseCommand(cfg),
			RebuildCommand(cfg),
			ValidateCommand(cfg),
			FmtCommand(cfg),
			DiffCommand(cfg),
			AddCommand(cfg))
}

func ParseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ParseConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Parse, "parse").
		WithAliases("p").
		WithSynopsis("parse <pbxproj>").
		WithDescription("parse a document and emit its analysis artifact").
		WithRun(func(cc *cli.Context, args []string) error {
			return runParse(cfg, cc, args)
		})
}

func RebuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RebuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "set",
		Description: "force a build setting in every configuration",
		Type:        cli.NamedFuncOpt(cfg.setOpt, "(key=value)"),
	})
	return cli.NewCommandAt(&cfg.Rebuild, "rebuild").
		WithAliases("r", "re").
		WithSynopsis("rebuild -analysis <file> -structure <file> [-patch <file>] [-set key=value]...").
		WithDescription("build a document from an analysis artifact and a group structure").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runRebuild(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts := []*cli.Opt{
		{
			Name:        "require",
			Description: "require a build setting value (blocking when absent)",
			Type:        cli.NamedFuncOpt(cfg.requireOpt, "(field=value)"),
		},
		{
			Name:        "rule",
			Description: "named boolean expression checked per configuration",
			Type:        cli.NamedFuncOpt(cfg.ruleOpt, "(name=expr)"),
		},
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("val", "check").
		WithSynopsis("validate [-require field=value]... [-rule name=expr]... <pbxproj>").
		WithDescription("report structural issues; exits nonzero on blocking ones").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runValidate(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt <pbxproj>").
		WithDescription("parse a document and re-emit it canonically").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runFmt(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff <a> <b>").
		WithDescription("line diff of two documents, normalized unless -raw").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
}

func AddCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AddConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Add, "add").
		WithAliases("a").
		WithSynopsis("add -project <pbxproj> [-target name] <files...>").
		WithDescription("add source files to a document's target").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runAdd(cfg, cc, args)
		})
}
