package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/webhooks/internal/app"
	"github.com/allisson/webhooks/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := getSystemCommands(version)
	cmds = append(cmds, getAuthCommands()...)
	cmds = append(cmds, getWebhookCommands()...)
	return cmds
}

// formatFlag is shared by every command that prints a result.
func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// withContainer loads configuration, builds the dependency container and shuts it down once run
// returns.
func withContainer(ctx context.Context, run func(cfg *config.Config, container *app.Container) error) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return run(cfg, container)
}
