package analyze

import (
	"context"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/extractor"
	"github.com/dtnitsch/review-sentiment/pkg/mapreduce"
	"github.com/dtnitsch/review-sentiment/pkg/parser"
	"github.com/dtnitsch/review-sentiment/pkg/sentiment"
)

// PageSource returns the parsed document for a URL.
type PageSource interface {
	GetHtml(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// Pipeline runs fetch, extract, score and aggregate for one page.
type Pipeline struct {
	Source    PageSource
	Parser    *parser.Parser
	Extractor *extractor.Extractor
	Scorer    sentiment.Scorer
	Mode      models.AveragingMode
	Logger    *slog.Logger
}

// Outcome is what one page produced. AggregateErr is set when the reviews
// were scored but no average could be computed.
type Outcome struct {
	URL          string
	Meta         *parser.PageMeta
	Reviews      []models.ScoredReview
	Aggregate    models.PageAggregate
	AggregateErr error
}

// Run returns an error only when there is nothing to report: the page
// could not be fetched or held no reviews.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Outcome, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := p.Source.GetHtml(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	out := &Outcome{URL: rawURL}

	meta, err := p.Parser.ParseMeta(rawURL, doc)
	if err != nil {
		// The title is cosmetic; keep going without it.
		logger.Warn("failed to read page metadata", "url", rawURL, "error", err)
		meta = &parser.PageMeta{URL: rawURL}
	}
	out.Meta = meta

	reviews, err := p.Extractor.Reviews(doc)
	if err != nil {
		return nil, err
	}
	logger.Info("extracted reviews", "url", rawURL, "count", len(reviews))

	out.Reviews = mapreduce.Map(reviews, p.Scorer)
	out.Aggregate, out.AggregateErr = mapreduce.Reduce(out.Reviews, p.Mode)
	if out.AggregateErr != nil {
		logger.Warn("aggregate undefined", "url", rawURL, "error", out.AggregateErr)
	}

	return out, nil
}
