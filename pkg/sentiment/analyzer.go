// Package sentiment scores review text for polarity and subjectivity and
// maps the scores onto labels.
package sentiment

import (
	"strings"
	"unicode"

	"github.com/dtnitsch/review-sentiment/models"
)

// negationFactor is applied to the polarity of a negated word.
const negationFactor = -0.5

// Scorer returns a tagged sentiment result for arbitrary text.
type Scorer interface {
	Score(text string) models.SentimentResult
}

// LanguageGate names the language of text the lexicon could not score.
// Check returns supported=true when the language can't be determined.
type LanguageGate interface {
	Check(text string) (language string, supported bool)
}

// Analyzer is a lexicon based Scorer. Each known word in the text is an
// assessment; the text's polarity and subjectivity are the assessment means.
type Analyzer struct {
	lexicon *Lexicon
	gate    LanguageGate
}

type Option func(*Analyzer)

// WithLanguageGate reports unscoreable text in an unsupported language as
// ReasonLanguage instead of ReasonNoSentiment. Text the lexicon can score
// is never rejected by the gate.
func WithLanguageGate(g LanguageGate) Option {
	return func(a *Analyzer) {
		a.gate = g
	}
}

func NewAnalyzer(lexicon *Lexicon, opts ...Option) *Analyzer {
	a := &Analyzer{lexicon: lexicon}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Score implements Scorer. Text scoring exactly (0, 0) is Unsupported:
// ReasonLanguage when the gate rejects its language, otherwise
// ReasonNoSentiment.
func (a *Analyzer) Score(text string) models.SentimentResult {
	polarity, subjectivity := a.Assess(text)
	if polarity != 0 || subjectivity != 0 {
		return models.Scored(polarity, subjectivity)
	}

	if a.gate != nil {
		if lang, ok := a.gate.Check(text); !ok {
			return models.Unsupported(models.ReasonLanguage, lang)
		}
	}
	return models.Unsupported(models.ReasonNoSentiment, "")
}

type assessment struct {
	polarity     float64
	subjectivity float64
}

// Assess returns the raw (polarity, subjectivity) pair for text.
// Text without any lexicon words returns (0, 0).
func (a *Analyzer) Assess(text string) (float64, float64) {
	tokens := tokenize(text)

	var found []assessment
	for i, tok := range tokens {
		entry, ok := a.lexicon.lookup(tok)
		if !ok {
			continue
		}

		p, s := entry.Polarity, entry.Subjectivity
		if i > 0 {
			if intensity, ok := a.lexicon.intensity(tokens[i-1]); ok {
				p *= intensity
				s *= intensity
			}
		}
		if a.negated(tokens, i) {
			p *= negationFactor
		}
		found = append(found, assessment{polarity: p, subjectivity: s})
	}

	if len(found) == 0 {
		return 0, 0
	}

	var pSum, sSum float64
	for _, f := range found {
		pSum += f.polarity
		sSum += f.subjectivity
	}
	n := float64(len(found))
	return clamp(pSum/n, -1, 1), clamp(sSum/n, 0, 1)
}

// fillers may sit between a negation and the word it negates.
var fillers = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "that": {}, "as": {},
}

// negated looks back up to two tokens, skipping intensifiers and
// articles, for a negation word.
func (a *Analyzer) negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		tok := tokens[j]
		if a.lexicon.isNegation(tok) {
			return true
		}
		if _, ok := a.lexicon.intensity(tok); ok {
			continue
		}
		if _, ok := fillers[tok]; ok {
			continue
		}
		return false
	}
	return false
}

// tokenize lowercases text and splits it into words. Apostrophes inside
// words are kept so contractions like "isn't" stay whole.
func tokenize(text string) []string {
	text = strings.ToLower(strings.NewReplacer("’", "'", "‘", "'").Replace(text))
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
