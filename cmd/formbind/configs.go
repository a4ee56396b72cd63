package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/formbind/go-formbind"
	"github.com/formbind/go-formbind/encode"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

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

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if cfg.Color {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
	}
	return nil
}

// loadForm reads path, or stdin when path is "-".
func loadForm(path string) (any, error) {
	if path != "-" {
		return formbind.LoadFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("load form from stdin: %w", err)
	}
	return formbind.ParseYAML(data)
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type PathsConfig struct {
	*MainConfig
	Leaves bool `cli:"name=leaves desc='only list terminal fields'"`

	Paths *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Paths string `cli:"name=paths desc='comma separated field paths to bind (default all leaves)'"`

	Watch *cli.Command
}

type ServeConfig struct {
	*MainConfig
	Addr string `cli:"name=addr desc='TCP listen address' default=localhost:9321"`

	Serve *cli.Command
}
