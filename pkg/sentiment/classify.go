package sentiment

import "github.com/dtnitsch/review-sentiment/models"

// ClassifyPolarity maps p in [-1, 1] onto five half-open buckets.
// Values outside the range (and NaN) land in the end buckets.
func ClassifyPolarity(p float64) models.PolarityLabel {
	switch {
	case p >= 0.6:
		return models.PolarityVeryPositive
	case p >= 0.2:
		return models.PolarityPositive
	case p >= -0.2:
		return models.PolarityNeutral
	case p >= -0.6:
		return models.PolarityNegative
	default:
		return models.PolarityVeryNegative
	}
}

// ClassifySubjectivity maps s in [0, 1] onto five half-open buckets.
func ClassifySubjectivity(s float64) models.SubjectivityLabel {
	switch {
	case s >= 0.8:
		return models.SubjectivityHigh
	case s >= 0.6:
		return models.SubjectivitySomewhat
	case s >= 0.4:
		return models.SubjectivityNeutral
	case s >= 0.2:
		return models.SubjectivitySomewhatObjective
	default:
		return models.SubjectivityVeryObjective
	}
}

// Label attaches the result and its labels to a review.
// Unsupported results get no labels.
func Label(review models.Review, result models.SentimentResult) models.ScoredReview {
	sr := models.ScoredReview{
		Review: review,
		Result: result,
	}
	if result.IsScored() {
		sr.PolarityLabel = ClassifyPolarity(result.Polarity)
		sr.SubjectivityLabel = ClassifySubjectivity(result.Subjectivity)
	}
	return sr
}
