package analyze

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/review-sentiment/internal/common"
	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/caching"
	"github.com/dtnitsch/review-sentiment/pkg/db"
	"github.com/dtnitsch/review-sentiment/pkg/export"
	"github.com/dtnitsch/review-sentiment/pkg/extractor"
	"github.com/dtnitsch/review-sentiment/pkg/fetcher"
	"github.com/dtnitsch/review-sentiment/pkg/langdetect"
	"github.com/dtnitsch/review-sentiment/pkg/parser"
	"github.com/dtnitsch/review-sentiment/pkg/prompt"
	"github.com/dtnitsch/review-sentiment/pkg/report"
	"github.com/dtnitsch/review-sentiment/pkg/sentiment"
	"github.com/urfave/cli/v2"
)

// Flags are the analyze command flags. They are also accepted at the top
// level since analyze is the default action.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "product page URL (prompted for when omitted)",
		},
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
			Name:  "export",
			Usage: "write the xlsx file without asking",
		},
		&cli.BoolFlag{
			Name:  "no-export",
			Usage: "skip the xlsx file without asking",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "xlsx file name (default from config)",
		},
		&cli.StringFlag{
			Name:  "max-age",
			Usage: "reuse a cached page younger than this duration, e.g. 1h (0 disables the cache)",
		},
		&cli.BoolFlag{
			Name:  "force-fetch",
			Usage: "ignore the page cache",
		},
		&cli.BoolFlag{
			Name:  "no-history",
			Usage: "do not record this run",
		},
		&cli.BoolFlag{
			Name:  "no-language-detection",
			Usage: "skip language detection for reviews the lexicon cannot score",
		},
	}
}

func AnalyzeAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	startTime := time.Now()

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return common.Fail(err)
	}
	format, err := applyFlags(c, cfg)
	if err != nil {
		return common.Fail(err)
	}

	prompter := prompt.New(c.App.Reader, c.App.Writer)

	rawURL := c.String("url")
	if rawURL == "" && c.Args().Present() {
		rawURL = c.Args().First()
	}
	if rawURL == "" {
		if rawURL, err = prompter.URL(); err != nil {
			return common.Fail(models.NewAnalysisError(models.KindInvalidInput, "no URL given", err))
		}
	}
	pageURL, err := fetcher.NormalizeURL(rawURL)
	if err != nil {
		return common.Fail(err)
	}

	pipeline, err := newPipeline(c, cfg, logger)
	if err != nil {
		return common.Fail(err)
	}

	outcome, err := pipeline.Run(c.Context, pageURL)
	if err != nil {
		logger.Error("analyze failed", "url", pageURL, "error", err)
		return common.Fail(err)
	}

	reporter := report.New(c.App.Writer, format, outcome.Meta.Title)
	if err := reporter.Reviews(outcome.Reviews); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	var database *db.DB
	if !cfg.History.Disabled {
		database, err = common.OpenHistory(c, cfg)
		if err != nil {
			logger.Error("run history unavailable", "error", err)
		} else {
			defer database.Close()
		}
	}
	runID := recordRun(database, outcome, logger)

	if outcome.AggregateErr != nil {
		return common.Fail(outcome.AggregateErr)
	}
	if err := reporter.Aggregate(outcome.Aggregate); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	save, err := shouldExport(c, prompter)
	if err != nil {
		return common.Fail(err)
	}
	if save {
		exporter := export.New(cfg.Export.FileName, cfg.Export.SheetName)
		if err := exporter.Write(outcome.Reviews); err != nil {
			return common.Fail(err)
		}
		fmt.Fprintln(c.App.Writer, "File created.")

		if database != nil && runID > 0 {
			if err := database.SetRunExport(runID, exporter.Path()); err != nil {
				logger.Error("failed to record export", "run_id", runID, "error", err)
			}
		}
	}

	logger.Info("analyze complete",
		"url", pageURL,
		"run_id", runID,
		"reviews", outcome.Aggregate.TotalReviews,
		"unsupported", outcome.Aggregate.UnsupportedCount,
		"exported", save,
		"elapsed", time.Since(startTime).String(),
	)
	return nil
}

// applyFlags overrides cfg with any analyze flags that were set and
// returns the report format.
func applyFlags(c *cli.Context, cfg *models.Config) (report.Format, error) {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return "", models.NewAnalysisError(models.KindConfigInvalid, "bad --format", err)
	}

	if c.IsSet("averaging") {
		cfg.Averaging = models.AveragingMode(c.String("averaging"))
	}
	if c.IsSet("output") {
		cfg.Export.FileName = c.String("output")
	}
	if c.IsSet("max-age") {
		maxAge, err := time.ParseDuration(c.String("max-age"))
		if err != nil {
			return "", models.NewAnalysisError(models.KindConfigInvalid, "bad --max-age", err)
		}
		cfg.Fetch.MaxAge = maxAge
	}
	if c.Bool("no-history") {
		cfg.History.Disabled = true
	}
	if c.Bool("no-language-detection") {
		cfg.Language.Disabled = true
	}
	if c.Bool("export") && c.Bool("no-export") {
		return "", models.NewAnalysisError(models.KindConfigInvalid, "--export and --no-export are exclusive", nil)
	}

	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return format, nil
}

func newPipeline(c *cli.Context, cfg *models.Config, logger *slog.Logger) (*Pipeline, error) {
	cache, err := caching.NewCache(cfg.Fetch.CacheDir, cfg.Fetch.MaxAge)
	if err != nil {
		return nil, models.NewAnalysisError(models.KindConfigInvalid, "failed to set up page cache", err)
	}

	f := fetcher.NewFetcher(fetcher.Options{
		UserAgent:      cfg.Fetch.UserAgent,
		AcceptLanguage: cfg.Fetch.AcceptLanguage,
		Timeout:        cfg.Fetch.Timeout,
		Cache:          cache,
		ForceFetch:     c.Bool("force-fetch"),
		Logger:         logger,
	})

	scorer, err := NewScorer(cfg, logger)
	if err != nil {
		return nil, err
	}

	var extractOpts []extractor.Option
	if cfg.Extract.KeepWhitespaceLines {
		extractOpts = append(extractOpts, extractor.WithWhitespaceLines())
	}

	return &Pipeline{
		Source:    f,
		Parser:    &parser.Parser{},
		Extractor: extractor.New(cfg.Extract.ContainerTag, cfg.Extract.ContainerClass, extractOpts...),
		Scorer:    scorer,
		Mode:      cfg.Averaging,
		Logger:    logger,
	}, nil
}

// NewScorer builds the lexicon analyzer. Unless disabled, a language
// detector names the reason for reviews the lexicon cannot score.
func NewScorer(cfg *models.Config, logger *slog.Logger) (*sentiment.Analyzer, error) {
	lexicon, err := sentiment.DefaultLexicon()
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	var opts []sentiment.Option
	if !cfg.Language.Disabled {
		detector, err := langdetect.New(cfg.Language.Supported, cfg.Language.MinRelativeDistance)
		if err != nil {
			return nil, models.NewAnalysisError(models.KindConfigInvalid, "bad language settings", err)
		}
		opts = append(opts, sentiment.WithLanguageGate(detector))
		logger.Debug("language detection enabled", "supported", cfg.Language.Supported)
	}
	return sentiment.NewAnalyzer(lexicon, opts...), nil
}

func shouldExport(c *cli.Context, p *prompt.Prompter) (bool, error) {
	switch {
	case c.Bool("export"):
		return true, nil
	case c.Bool("no-export"):
		return false, nil
	}
	return p.Confirm(prompt.ExportQuestion)
}

// recordRun stores the outcome. Failures are logged; it returns 0 when
// nothing was recorded.
func recordRun(database *db.DB, outcome *Outcome, logger *slog.Logger) int64 {
	if database == nil {
		return 0
	}

	run := &db.Run{
		URL:       outcome.URL,
		Title:     outcome.Meta.Title,
		Aggregate: outcome.Aggregate,
		Reviews:   outcome.Reviews,
	}
	if outcome.AggregateErr != nil {
		run.AggregateError = outcome.AggregateErr.Error()
	}

	runID, err := database.RecordRun(run)
	if err != nil {
		logger.Error("failed to record run", "url", outcome.URL, "error", err)
		return 0
	}
	logger.Info("run recorded", "run_id", runID, "db", database.Path())
	return runID
}
