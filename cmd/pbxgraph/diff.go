package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/engindearing/pbxgraph/encode"
	"github.com/engindearing/pbxgraph/parse"
)

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff wants two document arguments", cli.ErrUsage)
	}
	a, err := diffText(cfg, args[0])
	if err != nil {
		return err
	}
	b, err := diffText(cfg, args[1])
	if err != nil {
		return err
	}

	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	ins := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	if f, ok := cc.Out.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		ins.DisableColor()
		del.DisableColor()
	}
	changed := false
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			changed = true
			if err := writeLines(cc, ins, "+", d.Text); err != nil {
				return err
			}
		case diffpatch.DiffDelete:
			changed = true
			if err := writeLines(cc, del, "-", d.Text); err != nil {
				return err
			}
		}
	}
	if changed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffText loads a document for diffing. Unless -raw, it parses and
// re-encodes so the comparison sees canonical form, not formatting.
func diffText(cfg *DiffConfig, arg string) (string, error) {
	data, err := readInput(arg)
	if err != nil {
		return "", err
	}
	if cfg.Raw {
		return string(data), nil
	}
	doc, err := parse.Parse(data)
	if err != nil {
		return "", fmt.Errorf("error parsing %s: %w", arg, err)
	}
	var sb strings.Builder
	if err := encode.Encode(doc, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeLines(cc *cli.Context, c *color.Color, prefix, text string) error {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if _, err := c.Fprintf(cc.Out, "%s%s\n", prefix, line); err != nil {
			return err
		}
	}
	return nil
}
