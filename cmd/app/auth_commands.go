package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/webhooks/cmd/app/commands"
	"github.com/allisson/webhooks/internal/app"
	"github.com/allisson/webhooks/internal/config"
)

func getAuthCommands() []*cli.Command {
	createClient := &cli.Command{
		Name:  "create-client",
		Usage: "Register an API client and print its one-time secret",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Client name"},
			&cli.BoolFlag{
				Name:    "active",
				Aliases: []string{"a"},
				Value:   true,
				Usage:   "Allow the client to issue tokens right away",
			},
			&cli.StringFlag{
				Name:    "policies",
				Aliases: []string{"p"},
				Usage:   `JSON policies, e.g. '[{"path":"/v1/webhooks/*","capabilities":["read"]}]'. Prompts when omitted`,
			},
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
				clientUseCase, err := container.ClientUseCase()
				if err != nil {
					return err
				}
				return commands.RunCreateClient(
					ctx,
					clientUseCase,
					container.Logger(),
					cmd.String("name"),
					cmd.Bool("active"),
					cmd.String("policies"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			})
		},
	}

	return []*cli.Command{createClient}
}
