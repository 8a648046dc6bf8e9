package models

import "fmt"

// AveragingMode selects the subjectivity denominator.
type AveragingMode string

const (
	// AveragingLegacy divides the subjectivity sum by (valid - 1) and the
	// polarity sum by valid. This matches the historical page report.
	AveragingLegacy AveragingMode = "legacy"
	// AveragingMean divides both sums by valid.
	AveragingMean AveragingMode = "mean"
)

// ParseAveragingMode accepts "legacy", "mean" or "" (legacy).
func ParseAveragingMode(s string) (AveragingMode, error) {
	switch AveragingMode(s) {
	case "", AveragingLegacy:
		return AveragingLegacy, nil
	case AveragingMean:
		return AveragingMean, nil
	}
	return "", fmt.Errorf("unknown averaging mode %q (want legacy or mean)", s)
}

// PageAggregate holds page-level averages over the valid reviews.
type PageAggregate struct {
	Mode             AveragingMode `json:"mode" yaml:"mode"`
	TotalReviews     int           `json:"total_reviews" yaml:"total_reviews"`
	UnsupportedCount int           `json:"unsupported_count" yaml:"unsupported_count"`
	ValidCount       int           `json:"valid_count" yaml:"valid_count"`

	PolaritySum     float64 `json:"polarity_sum" yaml:"polarity_sum"`
	SubjectivitySum float64 `json:"subjectivity_sum" yaml:"subjectivity_sum"`

	PolarityDenominator     int `json:"polarity_denominator" yaml:"polarity_denominator"`
	SubjectivityDenominator int `json:"subjectivity_denominator" yaml:"subjectivity_denominator"`

	AveragePolarity     float64 `json:"average_polarity" yaml:"average_polarity"`
	AverageSubjectivity float64 `json:"average_subjectivity" yaml:"average_subjectivity"`
}
