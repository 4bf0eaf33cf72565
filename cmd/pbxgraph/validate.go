package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/engindearing/pbxgraph/validate"
)

func runValidate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: validate wants one document argument", cli.ErrUsage)
	}
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	var opts []validate.Option
	for _, r := range cfg.Require {
		field, value, _ := strings.Cut(r, "=")
		opts = append(opts, validate.WithCriticalValue(field, value))
	}
	for _, r := range cfg.Rules {
		name, src, _ := strings.Cut(r, "=")
		opts = append(opts, validate.WithRule(name, src))
	}

	rep := validate.Validate(data, opts...)
	errColor, warnColor := issueColors(cc)
	for _, issue := range rep.Issues {
		c := warnColor
		if issue.Blocking {
			c = errColor
		}
		if _, err := c.Fprintln(cc.Out, issue.String()); err != nil {
			return err
		}
	}
	if !rep.OK() {
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintf(cc.Out, "ok: %d advisory issue(s)\n", len(rep.Advisory()))
	return nil
}

// issueColors picks severity colors, active only when the output is a
// terminal.
func issueColors(cc *cli.Context) (*color.Color, *color.Color) {
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	f, ok := cc.Out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		errColor.DisableColor()
		warnColor.DisableColor()
	}
	return errColor, warnColor
}
