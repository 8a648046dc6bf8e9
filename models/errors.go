package models

import "fmt"

// ErrorKind classifies the failures that end a run.
type ErrorKind string

const (
	KindNetworkFailure       ErrorKind = "NETWORK_FAILURE"
	KindNoReviewsFound       ErrorKind = "NO_REVIEWS_FOUND"
	KindAggregationUndefined ErrorKind = "AGGREGATION_UNDEFINED"
	KindExportFailure        ErrorKind = "EXPORT_FAILURE"
	KindConfigInvalid        ErrorKind = "CONFIG_INVALID"
	KindHistoryFailure       ErrorKind = "HISTORY_FAILURE"
	KindInvalidInput         ErrorKind = "INVALID_INPUT"
)

// Sentinels for errors.Is. They match any AnalysisError of the same kind.
var (
	ErrNetworkFailure       = &AnalysisError{Kind: KindNetworkFailure}
	ErrNoReviewsFound       = &AnalysisError{Kind: KindNoReviewsFound}
	ErrAggregationUndefined = &AnalysisError{Kind: KindAggregationUndefined}
	ErrExportFailure        = &AnalysisError{Kind: KindExportFailure}
	ErrConfigInvalid        = &AnalysisError{Kind: KindConfigInvalid}
	ErrHistoryFailure       = &AnalysisError{Kind: KindHistoryFailure}
	ErrInvalidInput         = &AnalysisError{Kind: KindInvalidInput}
)

// AnalysisError is the error type returned at component boundaries.
// It carries a kind and supports wrapping via Unwrap.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return string(e.Kind)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Message == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AnalysisError of the same kind.
func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(kind ErrorKind, message string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Message: message, Err: err}
}
