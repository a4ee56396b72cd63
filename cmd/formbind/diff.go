package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/formbind/go-formbind/encode"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two files", cli.ErrUsage)
	}
	from, err := loadForm(args[0])
	if err != nil {
		return err
	}
	to, err := loadForm(args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	colored := len(cfg.encOpts(cc.Out)) > 0
	return writeDiff(cc.Out, encode.MustString(from), encode.MustString(to), colored)
}

// writeDiff renders a line diff of the two encoded snapshots.
func writeDiff(w io.Writer, from, to string, colored bool) error {
	dmp := diffpatch.New()
	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(fromRunes, toRunes, false), lines)
	for i := range diffs {
		d := &diffs[i]
		var mark string
		var paint func(string, ...any) string
		switch d.Type {
		case diffpatch.DiffDelete:
			mark, paint = "-", color.RedString
		case diffpatch.DiffInsert:
			mark, paint = "+", color.GreenString
		default:
			mark, paint = " ", fmt.Sprintf
		}
		for _, ln := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out := mark + " " + ln
			if colored {
				out = paint("%s", out)
			}
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		}
	}
	return nil
}
