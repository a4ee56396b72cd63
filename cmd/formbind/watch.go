package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"

	"github.com/formbind/go-formbind"
	"github.com/formbind/go-formbind/encode"
	"github.com/formbind/go-formbind/fieldpath"
	"github.com/formbind/go-formbind/tree"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: watch requires a file", cli.ErrUsage)
	}
	file := filepath.Clean(args[0])
	form, err := formbind.LoadFile(file)
	if err != nil {
		return err
	}
	store := formbind.NewStore(form)

	bind, err := cfg.bindPaths(store)
	if err != nil {
		return err
	}
	encOpts := cfg.encOpts(cc.Out)
	for _, p := range bind {
		store.Register([]fieldpath.Path{p}, func(snapshot any) {
			v, ok := tree.Get(snapshot, p)
			if !ok {
				fmt.Fprintf(cc.Out, "%s: removed\n", p)
				return
			}
			fmt.Fprintf(cc.Out, "%s: %s", p, encode.MustString(v, encOpts...))
		})
	}
	fmt.Fprintf(cc.Out, "watching %s (%d fields)\n", file, len(bind))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		return err
	}
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != file {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			next, err := formbind.LoadFile(file)
			if err != nil {
				fmt.Fprintf(cc.Out, "reload %s: %v\n", file, err)
				continue
			}
			err = store.Update(func(any) any { return next },
				formbind.UpdateOptions{Notify: true})
			if err != nil {
				fmt.Fprintf(cc.Out, "update %s: %v\n", file, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cc.Out, "watch: %v\n", err)
		}
	}
}

func (cfg *WatchConfig) bindPaths(store *formbind.Store) ([]fieldpath.Path, error) {
	if cfg.Paths == "" {
		return leafPaths(nil, store.Form(), nil), nil
	}
	var bind []fieldpath.Path
	for _, s := range strings.Split(cfg.Paths, ",") {
		p, err := fieldpath.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		bind = append(bind, p)
	}
	return bind, nil
}

func leafPaths(at fieldpath.Path, v any, dst []fieldpath.Path) []fieldpath.Path {
	switch tree.KindOf(v) {
	case tree.Map:
		mv := v.(map[string]any)
		for field, child := range mv {
			dst = leafPaths(at.Join(fieldpath.FieldName(field)), child, dst)
		}
	case tree.Sequence:
		for i, child := range v.([]any) {
			dst = leafPaths(at.Join(fieldpath.IndexName(i)), child, dst)
		}
	default:
		if len(at) > 0 {
			dst = append(dst, at)
		}
	}
	return dst
}
