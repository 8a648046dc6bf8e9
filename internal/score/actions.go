// Package score implements the score command: the sentiment pipeline
// without fetching, for checking the lexicon against known text.
package score

import (
	"errors"
	"fmt"
	"io"

	"github.com/dtnitsch/review-sentiment/internal/analyze"
	"github.com/dtnitsch/review-sentiment/internal/common"
	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/extractor"
	"github.com/dtnitsch/review-sentiment/pkg/mapreduce"
	"github.com/dtnitsch/review-sentiment/pkg/report"
	"github.com/urfave/cli/v2"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "report layout: text or table",
			Value: string(report.FormatText),
		},
		&cli.StringFlag{
			Name:  "averaging",
			Usage: "aggregate mode: legacy or mean (default from config)",
		},
		&cli.BoolFlag{
			Name:  "no-language-detection",
			Usage: "skip language detection for lines the lexicon cannot score",
		},
	}
}

// ScoreAction scores each argument as one review, or each non-blank stdin
// line when no arguments are given.
func ScoreAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(err)
	}
	if c.IsSet("averaging") {
		cfg.Averaging = models.AveragingMode(c.String("averaging"))
	}
	if c.Bool("no-language-detection") {
		cfg.Language.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		return common.Fail(err)
	}
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return common.Fail(models.NewAnalysisError(models.KindConfigInvalid, "bad --format", err))
	}

	reviews, err := readReviews(c)
	if err != nil {
		return common.Fail(err)
	}

	scorer, err := analyze.NewScorer(cfg, logger)
	if err != nil {
		return common.Fail(err)
	}

	scored := mapreduce.Map(reviews, scorer)
	reporter := report.New(c.App.Writer, format, "score")
	if err := reporter.Reviews(scored); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	agg, err := mapreduce.Reduce(scored, cfg.Averaging)
	if errors.Is(err, models.ErrAggregationUndefined) {
		// Fine for one or two lines; there is just no average to show.
		logger.Info("no aggregate", "reason", err)
		return nil
	}
	if err != nil {
		return common.Fail(err)
	}
	return reporter.Aggregate(agg)
}

func readReviews(c *cli.Context) ([]models.Review, error) {
	if c.Args().Present() {
		var reviews []models.Review
		for _, arg := range c.Args().Slice() {
			for _, r := range extractor.SplitReviews(arg) {
				r.Index = len(reviews) + 1
				reviews = append(reviews, r)
			}
		}
		if len(reviews) == 0 {
			return nil, models.NewAnalysisError(models.KindInvalidInput, "nothing to score", nil)
		}
		return reviews, nil
	}

	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return nil, models.NewAnalysisError(models.KindInvalidInput, "failed to read stdin", err)
	}
	reviews := extractor.SplitReviews(string(data))
	if len(reviews) == 0 {
		return nil, models.NewAnalysisError(models.KindInvalidInput, "nothing to score", nil)
	}
	return reviews, nil
}
