// Package langdetect decides whether review text is in a language the
// sentiment lexicon covers.
package langdetect

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// candidates are the languages the detector chooses between. Keeping the
// set small keeps model loading cheap and short reviews decidable.
var candidates = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
}

// Detector implements sentiment.LanguageGate on top of lingua.
type Detector struct {
	detector  lingua.LanguageDetector
	supported map[lingua.Language]struct{}
}

// New builds a detector. supported holds ISO 639-1 codes ("en").
// minRelativeDistance makes lingua return "unknown" for ambiguous text
// instead of guessing; unknown text is treated as supported.
func New(supported []string, minRelativeDistance float64) (*Detector, error) {
	langs := make(map[lingua.Language]struct{}, len(supported))
	for _, code := range supported {
		lang, err := languageForCode(code)
		if err != nil {
			return nil, err
		}
		langs[lang] = struct{}{}
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(candidates...).
		WithMinimumRelativeDistance(minRelativeDistance).
		Build()

	return &Detector{detector: detector, supported: langs}, nil
}

// Check returns the detected ISO 639-1 code (lowercase) and whether it is
// supported. Undetectable text returns ("", true).
func (d *Detector) Check(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", true
	}
	_, supported := d.supported[lang]
	return strings.ToLower(lang.IsoCode639_1().String()), supported
}

func languageForCode(code string) (lingua.Language, error) {
	want := strings.ToUpper(strings.TrimSpace(code))
	for _, lang := range candidates {
		if lang.IsoCode639_1().String() == want {
			return lang, nil
		}
	}
	return lingua.Unknown, fmt.Errorf("unsupported language code %q", code)
}
