package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"finwire/internal/article"
	"finwire/internal/collect"
	"finwire/internal/config"
	"finwire/internal/httpclient"
	"finwire/internal/list"
	"finwire/internal/version"
)

func main() {
	app := &cli.Command{
		Name:  "finwire",
		Usage: "Collect market intelligence from news, video and podcast sources",
		Commands: []*cli.Command{
			{
				Name:  "collect",
				Usage: "Run one collection pass over all sources",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "Path to config file (default ~/.config/finwire/config.yaml)"},
					&cli.StringFlag{Name: "log-file", Usage: "Write logs to this file instead of stderr"},
					&cli.BoolFlag{Name: "no-archive", Usage: "Skip writing records to the local archive"},
					&cli.BoolFlag{Name: "no-export", Usage: "Skip the CSV export"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return collect.Run(ctx, collect.Options{
						ConfigPath: c.String("config"),
						LogFile:    c.String("log-file"),
						NoArchive:  c.Bool("no-archive"),
						NoExport:   c.Bool("no-export"),
					})
				},
			},
			{
				Name:  "list",
				Usage: "List archived records",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "Path to config file"},
					&cli.IntFlag{Name: "hours", Usage: "Time window in hours (default: 24)", Value: 24},
					&cli.StringFlag{Name: "source", Usage: "Filter by source type (web_news, video, podcast)"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return list.Run(ctx, c.String("config"), c.Int("hours"), c.String("source"))
				},
			},
			{
				Name:  "read",
				Usage: "Fetch a URL and print its extracted article text",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "url",
						UsageText: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Usage: "Path to config file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					url := c.StringArg("url")
					if url == "" {
						return fmt.Errorf("usage: finwire read <url>")
					}
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					text, err := article.NewExtractor(httpclient.New(cfg.HTTP)).Extract(ctx, url)
					if err != nil {
						return err
					}
					fmt.Println(text)
					return nil
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Println(version.GetVersion())
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
