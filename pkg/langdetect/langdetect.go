// Package langdetect identifies the language of a document as an ISO 639-1 code.
package langdetect

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector maps text to a lowercase ISO 639-1 code. ok is false when no
// language could be identified.
type Detector interface {
	Detect(text string) (code string, ok bool)
}

// Lingua wraps a lingua-go detector.
type Lingua struct {
	detector lingua.LanguageDetector
}

// NewLingua builds a detector over the given candidate codes, or over every
// language lingua knows when codes is empty. At least two candidates are
// required so a non-supported language can still be told apart.
func NewLingua(codes []string) (*Lingua, error) {
	builder := lingua.NewLanguageDetectorBuilder()
	if len(codes) == 0 {
		return &Lingua{detector: builder.FromAllLanguages().Build()}, nil
	}

	languages, err := Languages(codes)
	if err != nil {
		return nil, err
	}
	if len(languages) < 2 {
		return nil, fmt.Errorf("language detection needs at least 2 candidate languages, got %d", len(languages))
	}
	return &Lingua{detector: builder.FromLanguages(languages...).Build()}, nil
}

// Detect implements Detector.
func (l *Lingua) Detect(text string) (string, bool) {
	language, exists := l.detector.DetectLanguageOf(text)
	if !exists {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}

// Languages resolves ISO 639-1 codes to lingua languages.
func Languages(codes []string) ([]lingua.Language, error) {
	byCode := make(map[string]lingua.Language)
	for _, language := range lingua.AllLanguages() {
		byCode[strings.ToLower(language.IsoCode639_1().String())] = language
	}

	out := make([]lingua.Language, 0, len(codes))
	seen := make(map[lingua.Language]struct{}, len(codes))
	for _, code := range codes {
		language, ok := byCode[strings.ToLower(strings.TrimSpace(code))]
		if !ok {
			return nil, fmt.Errorf("unknown language code %q", code)
		}
		if _, dup := seen[language]; dup {
			continue
		}
		seen[language] = struct{}{}
		out = append(out, language)
	}
	return out, nil
}

// Gate reports whether a detected code is in the supported set.
type Gate struct {
	supported map[string]struct{}
}

// NewGate builds a gate over lowercase ISO 639-1 codes.
func NewGate(codes []string) Gate {
	g := Gate{supported: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		g.supported[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	return g
}

// Allows reports whether code passes the gate.
func (g Gate) Allows(code string) bool {
	_, ok := g.supported[code]
	return ok
}
