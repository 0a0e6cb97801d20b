package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/webhooks/cmd/app/commands"
	"github.com/allisson/webhooks/internal/app"
	"github.com/allisson/webhooks/internal/config"
)

func getWebhookCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "trigger",
			Usage: "Deliver an event to every registered webhook and print the result",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "ip",
					Aliases: []string{"i"},
					Value:   "127.0.0.1",
					Usage:   "IP address reported in the event payload",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(_ *config.Config, container *app.Container) error {
					dispatchUseCase, err := container.DispatchUseCase()
					if err != nil {
						return err
					}
					return commands.RunTrigger(
						ctx,
						dispatchUseCase,
						container.Logger(),
						cmd.String("ip"),
						cmd.String("format"),
						commands.DefaultIO().Writer,
					)
				})
			},
		},
	}
}
