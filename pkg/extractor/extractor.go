// Package extractor pulls review text out of a product page.
package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/review-sentiment/models"
)

type Extractor struct {
	selector       string
	keepWhitespace bool
}

type Option func(*Extractor)

// WithWhitespaceLines keeps whitespace-only lines as empty reviews instead
// of dropping them. Only truly empty lines are skipped, so every line the
// page holds becomes a report entry and an export row.
func WithWhitespaceLines() Option {
	return func(e *Extractor) {
		e.keepWhitespace = true
	}
}

// New returns an extractor matching tag elements whose class attribute is
// exactly containerClass (all classes, same order).
func New(tag, containerClass string, opts ...Option) *Extractor {
	e := &Extractor{selector: Selector(tag, containerClass)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Selector builds the CSS selector for a container. An empty tag matches
// any element.
func Selector(tag, containerClass string) string {
	class := strings.Join(strings.Fields(containerClass), " ")
	return fmt.Sprintf("%s[class=%q]", strings.TrimSpace(tag), class)
}

func (e *Extractor) Selector() string {
	return e.selector
}

// Reviews concatenates the text of every container in document order,
// splits it into lines and returns the non-blank lines as reviews (or the
// non-empty ones, WithWhitespaceLines).
func (e *Extractor) Reviews(doc *goquery.Document) ([]models.Review, error) {
	containers := doc.Find(e.selector)
	if containers.Length() == 0 {
		return nil, models.NewAnalysisError(models.KindNoReviewsFound,
			fmt.Sprintf("no elements match %s", e.selector), nil)
	}

	var sb strings.Builder
	containers.Each(func(i int, s *goquery.Selection) {
		sb.WriteString(s.Text())
	})

	// Blank lines are layout, not reviews, unless the caller asked to keep
	// whitespace-only lines.
	reviews := splitLines(sb.String(), e.keepWhitespace)
	if len(reviews) == 0 {
		return nil, models.NewAnalysisError(models.KindNoReviewsFound,
			fmt.Sprintf("%d containers matched but held no text", containers.Length()), nil)
	}
	return reviews, nil
}

// ReviewsFromHTML parses html and extracts its reviews.
func (e *Extractor) ReviewsFromHTML(html string) ([]models.Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return e.Reviews(doc)
}

// SplitReviews splits text on newlines, trims each line and drops blanks.
func SplitReviews(text string) []models.Review {
	return splitLines(text, false)
}

func splitLines(text string, keepWhitespace bool) []models.Review {
	var reviews []models.Review
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if raw == "" || (line == "" && !keepWhitespace) {
			continue
		}
		reviews = append(reviews, models.Review{
			Index: len(reviews) + 1,
			Text:  line,
		})
	}
	return reviews
}
