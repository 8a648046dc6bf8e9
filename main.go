package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/review-sentiment/internal/analyze"
	"github.com/dtnitsch/review-sentiment/internal/common"
	"github.com/dtnitsch/review-sentiment/internal/history"
	"github.com/dtnitsch/review-sentiment/internal/score"
	"github.com/dtnitsch/review-sentiment/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		// cli.Exit errors have already been printed and exited on.
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "review-sentiment",
		Usage: "score the polarity and subjectivity of a product page's reviews",
		Flags: append(common.GlobalFlags(), analyze.Flags()...),
		// Running with no command analyzes, prompting for the URL.
		Action: analyze.AnalyzeAction,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "fetch a product page and report review sentiment",
				ArgsUsage: "[URL]",
				Flags:     analyze.Flags(),
				Action:    analyze.AnalyzeAction,
			},
			{
				Name:  "history",
				Usage: "list recorded runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "number of runs to show",
						Value: 20,
					},
				},
				Action: history.HistoryAction,
			},
			{
				Name:      "show",
				Usage:     "print a recorded run",
				ArgsUsage: "RUN_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "report layout: text or table",
						Value: "text",
					},
				},
				Action: history.ShowAction,
			},
			{
				Name:  "quickstart",
				Usage: "print example invocations",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.QuickstartYAML)
					return err
				},
			},
			{
				Name:      "score",
				Usage:     "score text given as arguments or on stdin",
				ArgsUsage: "[TEXT...]",
				Flags:     score.Flags(),
				Action:    score.ScoreAction,
			},
		},
	}
}
