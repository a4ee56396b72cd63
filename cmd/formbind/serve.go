package main

import (
	"fmt"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/formbind/go-formbind"
	"github.com/formbind/go-formbind/server"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	var form any = map[string]any{}
	if len(args) > 0 {
		form, err = loadForm(args[0])
		if err != nil {
			return err
		}
	}

	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	store := formbind.NewStore(form, formbind.WithLogger(log))
	srv := server.New(&server.Spec{Store: store, Log: log})
	if err := srv.StartTCP(cfg.Addr); err != nil {
		return fmt.Errorf("failed to start TCP listener: %w", err)
	}
	fmt.Fprintf(cc.Out, "formbind listening on %s\n", srv.TCPAddr())
	defer srv.StopTCP()

	// Block forever
	select {}
}
