package models

// PolarityLabel is one of five ordered polarity buckets.
type PolarityLabel string

const (
	PolarityVeryPositive PolarityLabel = "VERY POSITIVE"
	PolarityPositive     PolarityLabel = "Positive"
	PolarityNeutral      PolarityLabel = "Neutral"
	PolarityNegative     PolarityLabel = "Negative"
	PolarityVeryNegative PolarityLabel = "VERY NEGATIVE"
)

// PolarityLabels lists the buckets from most positive to most negative.
var PolarityLabels = []PolarityLabel{
	PolarityVeryPositive,
	PolarityPositive,
	PolarityNeutral,
	PolarityNegative,
	PolarityVeryNegative,
}

// SubjectivityLabel is one of five ordered subjectivity buckets.
type SubjectivityLabel string

const (
	SubjectivityHigh              SubjectivityLabel = "HIGHLY SUBJECTIVE"
	SubjectivitySomewhat          SubjectivityLabel = "Somewhat Subjective"
	SubjectivityNeutral           SubjectivityLabel = "Neutral"
	SubjectivitySomewhatObjective SubjectivityLabel = "Somewhat Objective"
	SubjectivityVeryObjective     SubjectivityLabel = "VERY OBJECTIVE"
)

// SubjectivityLabels lists the buckets from most subjective to most objective.
var SubjectivityLabels = []SubjectivityLabel{
	SubjectivityHigh,
	SubjectivitySomewhat,
	SubjectivityNeutral,
	SubjectivitySomewhatObjective,
	SubjectivityVeryObjective,
}
