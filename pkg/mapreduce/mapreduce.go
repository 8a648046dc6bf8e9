// Package mapreduce scores reviews one by one (Map) and folds the results
// into page-level averages (Reduce).
package mapreduce

import (
	"fmt"

	"github.com/dtnitsch/review-sentiment/models"
	"github.com/dtnitsch/review-sentiment/pkg/sentiment"
)

// Map scores and labels every review, preserving order.
func Map(reviews []models.Review, scorer sentiment.Scorer) []models.ScoredReview {
	scored := make([]models.ScoredReview, len(reviews))
	for i, r := range reviews {
		scored[i] = sentiment.Label(r, scorer.Score(r.Text))
	}
	return scored
}

// Reduce aggregates scored reviews. See Aggregate.
func Reduce(scored []models.ScoredReview, mode models.AveragingMode) (models.PageAggregate, error) {
	results := make([]models.SentimentResult, len(scored))
	for i, s := range scored {
		results[i] = s.Result
	}
	return Aggregate(results, mode)
}

// Aggregate sums the scored results and divides by the valid count.
//
//	valid                = total - unsupported
//	average polarity     = polarity sum / valid
//	average subjectivity = subjectivity sum / (valid - 1)   legacy
//	                     = subjectivity sum / valid         mean
//
// A zero denominator is an AggregationUndefined error.
func Aggregate(results []models.SentimentResult, mode models.AveragingMode) (models.PageAggregate, error) {
	mode, err := models.ParseAveragingMode(string(mode))
	if err != nil {
		return models.PageAggregate{}, models.NewAnalysisError(models.KindConfigInvalid, "bad averaging mode", err)
	}

	agg := models.PageAggregate{
		Mode:         mode,
		TotalReviews: len(results),
	}

	for _, r := range results {
		if !r.IsScored() {
			agg.UnsupportedCount++
			continue
		}
		agg.PolaritySum += r.Polarity
		agg.SubjectivitySum += r.Subjectivity
	}

	agg.ValidCount = agg.TotalReviews - agg.UnsupportedCount
	agg.PolarityDenominator = agg.ValidCount
	agg.SubjectivityDenominator = subjectivityDenominator(agg.ValidCount, mode)

	if agg.PolarityDenominator <= 0 {
		return agg, models.NewAnalysisError(models.KindAggregationUndefined,
			fmt.Sprintf("no valid reviews out of %d", agg.TotalReviews), nil)
	}
	if agg.SubjectivityDenominator <= 0 {
		return agg, models.NewAnalysisError(models.KindAggregationUndefined,
			fmt.Sprintf("%s subjectivity average needs at least 2 valid reviews, have %d", mode, agg.ValidCount), nil)
	}

	agg.AveragePolarity = agg.PolaritySum / float64(agg.PolarityDenominator)
	agg.AverageSubjectivity = agg.SubjectivitySum / float64(agg.SubjectivityDenominator)
	return agg, nil
}

func subjectivityDenominator(valid int, mode models.AveragingMode) int {
	if mode == models.AveragingMean {
		return valid
	}
	return valid - 1
}
