package sentiment

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Entry is the sentiment carried by a single word.
type Entry struct {
	Polarity     float64 `yaml:"polarity"`
	Subjectivity float64 `yaml:"subjectivity"`
}

// Lexicon maps words to sentiment, plus the modifier words that
// intensify or negate the next assessment.
type Lexicon struct {
	Words        map[string]Entry   `yaml:"words"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Negations    []string           `yaml:"negations"`

	negations map[string]struct{}
}

var (
	defaultOnce    sync.Once
	defaultLexicon *Lexicon
	defaultErr     error
)

// DefaultLexicon returns the embedded English lexicon, parsed once.
func DefaultLexicon() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLexicon, defaultErr = ParseLexicon(defaultLexiconYAML)
	})
	return defaultLexicon, defaultErr
}

// LoadLexicon reads a YAML lexicon from r.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon parses and validates a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}

	words := make(map[string]Entry, len(lex.Words))
	for w, e := range lex.Words {
		if e.Polarity < -1 || e.Polarity > 1 {
			return nil, fmt.Errorf("lexicon word %q: polarity %v out of [-1, 1]", w, e.Polarity)
		}
		if e.Subjectivity < 0 || e.Subjectivity > 1 {
			return nil, fmt.Errorf("lexicon word %q: subjectivity %v out of [0, 1]", w, e.Subjectivity)
		}
		words[strings.ToLower(w)] = e
	}
	lex.Words = words

	intensifiers := make(map[string]float64, len(lex.Intensifiers))
	for w, i := range lex.Intensifiers {
		if i <= 0 {
			return nil, fmt.Errorf("lexicon intensifier %q: intensity must be positive", w)
		}
		intensifiers[strings.ToLower(w)] = i
	}
	lex.Intensifiers = intensifiers

	lex.negations = make(map[string]struct{}, len(lex.Negations))
	for _, n := range lex.Negations {
		lex.negations[strings.ToLower(n)] = struct{}{}
	}

	return &lex, nil
}

func (l *Lexicon) lookup(word string) (Entry, bool) {
	e, ok := l.Words[word]
	return e, ok
}

func (l *Lexicon) intensity(word string) (float64, bool) {
	i, ok := l.Intensifiers[word]
	return i, ok
}

func (l *Lexicon) isNegation(word string) bool {
	_, ok := l.negations[word]
	return ok
}
