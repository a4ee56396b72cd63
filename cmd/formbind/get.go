package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/formbind/go-formbind/encode"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a field path", cli.ErrUsage)
	}
	path, err := fieldpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	encOpts := cfg.encOpts(cc.Out)
	for _, file := range files {
		form, err := loadForm(file)
		if err != nil {
			return err
		}
		v, ok := tree.Get(form, path)
		if !ok {
			return fmt.Errorf("%s: no field at %s", file, path)
		}
		if err := encode.Encode(v, cc.Out, encOpts...); err != nil {
			return err
		}
	}
	return nil
}
