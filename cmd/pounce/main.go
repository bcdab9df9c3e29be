// Command pounce is the entry point: CLI subcommands drive a running
// daemon, and 'pounce start' runs the daemon itself.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbaines/pounce/internal/app"
	"github.com/kbaines/pounce/internal/cli"
	"github.com/kbaines/pounce/internal/config"
)

func main() {
	cli.LaunchFunc = launchDaemon
	cli.Execute()
}

// launchDaemon loads configuration, assembles the daemon around the
// platform bridges, and blocks until a signal or a stop command.
func launchDaemon(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	bridges, err := platformBridges(cfg)
	if err != nil {
		return err
	}

	a, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Bridges:    bridges,
		Version:    cli.Version,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		a.Stop()
	}()

	return a.Run(ctx)
}
