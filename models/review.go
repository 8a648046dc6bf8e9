package models

// Review is one line of review text taken from the page.
// Index is 1-based in extraction order.
type Review struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

// ResultKind tags a SentimentResult.
type ResultKind string

const (
	ResultScored      ResultKind = "scored"
	ResultUnsupported ResultKind = "unsupported"
)

// UnsupportedReason says why a review could not be analyzed.
type UnsupportedReason string

const (
	// ReasonLanguage: nothing scored and the language gate detected a language we don't score.
	ReasonLanguage UnsupportedReason = "language"
	// ReasonNoSentiment: the scorer returned exactly (0, 0). This also
	// covers genuinely neutral text; the two cases are indistinguishable.
	ReasonNoSentiment UnsupportedReason = "no-sentiment"
)

// SentimentResult is either Scored(polarity, subjectivity) or Unsupported.
// For Unsupported results Polarity and Subjectivity hold the raw values the
// scorer produced, which are always zero.
type SentimentResult struct {
	Kind         ResultKind        `json:"kind" yaml:"kind"`
	Polarity     float64           `json:"polarity" yaml:"polarity"`
	Subjectivity float64           `json:"subjectivity" yaml:"subjectivity"`
	Reason       UnsupportedReason `json:"reason,omitempty" yaml:"reason,omitempty"`
	Language     string            `json:"language,omitempty" yaml:"language,omitempty"`
}

// Scored builds a result for an analyzable review.
func Scored(polarity, subjectivity float64) SentimentResult {
	return SentimentResult{
		Kind:         ResultScored,
		Polarity:     polarity,
		Subjectivity: subjectivity,
	}
}

// Unsupported builds a result for a review that could not be analyzed.
func Unsupported(reason UnsupportedReason, language string) SentimentResult {
	return SentimentResult{
		Kind:     ResultUnsupported,
		Reason:   reason,
		Language: language,
	}
}

func (r SentimentResult) IsScored() bool {
	return r.Kind == ResultScored
}

// ScoredReview pairs a review with its result and labels.
// Labels are empty for unsupported reviews.
type ScoredReview struct {
	Review
	Result            SentimentResult   `json:"result" yaml:"result"`
	PolarityLabel     PolarityLabel     `json:"polarity_label,omitempty" yaml:"polarity_label,omitempty"`
	SubjectivityLabel SubjectivityLabel `json:"subjectivity_label,omitempty" yaml:"subjectivity_label,omitempty"`
}
