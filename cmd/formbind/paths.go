package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/scott-cotton/cli"

	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

func paths(cfg *PathsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Paths.Parse(cc, args)
	if err != nil {
		return err
	}
	files := args
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		form, err := loadForm(file)
		if err != nil {
			return err
		}
		if err := listPaths(nil, form, cfg.Leaves, cc.Out); err != nil {
			return err
		}
	}
	return nil
}

func listPaths(at fieldpath.Path, v any, leavesOnly bool, w io.Writer) error {
	kind := tree.KindOf(v)
	if len(at) > 0 && (!leavesOnly || !kind.IsContainer()) {
		if _, err := fmt.Fprintln(w, at.String()); err != nil {
			return err
		}
	}
	switch kind {
	case tree.Map:
		mv := v.(map[string]any)
		for _, field := range slices.Sorted(maps.Keys(mv)) {
			err := listPaths(at.Join(fieldpath.FieldName(field)), mv[field], leavesOnly, w)
			if err != nil {
				return err
			}
		}
	case tree.Sequence:
		for i, elt := range v.([]any) {
			err := listPaths(at.Join(fieldpath.IndexName(i)), elt, leavesOnly, w)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
