package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	"github.com/formbind/go-formbind/encode"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	src := args[0]
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
		env, ok := form.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: top level is not a map", file)
		}
		prog, err := expr.Compile(src, expr.Env(env))
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		out, err := expr.Run(prog, env)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := encode.Encode(out, cc.Out, encOpts...); err != nil {
			return err
		}
	}
	return nil
}
