package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/formbind/go-formbind"
	"github.com/formbind/go-formbind/encode"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a field path and a value", cli.ErrUsage)
	}
	path, err := fieldpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	value, err := formbind.ParseYAML([]byte(args[1]))
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := args[2:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	encOpts := cfg.encOpts(cc.Out)
	for _, file := range files {
		form, err := loadForm(file)
		if err != nil {
			return err
		}
		if err := tree.Set(form, path, value, tree.MakeMap); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := encode.Encode(form, cc.Out, encOpts...); err != nil {
			return err
		}
	}
	return nil
}
