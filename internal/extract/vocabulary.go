package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode selects how vocabulary terms are located in text.
type MatchMode string

const (
	// MatchSubstring reports a term whenever its lowercase form occurs anywhere
	// in the lowercase text, so "java" also matches inside "javascript".
	MatchSubstring MatchMode = "substring"
	// MatchWord only reports terms that occur as whole words or phrases.
	MatchWord MatchMode = "word"
)

// ParseMatchMode converts a configuration value into a MatchMode. An empty
// value selects MatchSubstring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchWord:
		return MatchWord, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (expected %q or %q)", s, MatchSubstring, MatchWord)
	}
}

var (
	nonWordChars = regexp.MustCompile(`[^a-z0-9+#]+`)
	multiSpace   = regexp.MustCompile(`\s+`)
)

// Vocabulary is an ordered, duplicate free list of canonical terms. It is
// immutable after construction.
type Vocabulary struct {
	name    string
	terms   []string
	lowered []string
	words   []string
}

// NewVocabulary builds a vocabulary keeping the first spelling of terms that
// differ only by case. Blank terms are skipped; an empty result is an error.
func NewVocabulary(name string, terms []string) (*Vocabulary, error) {
	v := &Vocabulary{name: name}
	seen := make(map[string]struct{}, len(terms))

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		lower := strings.ToLower(term)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}

		v.terms = append(v.terms, term)
		v.lowered = append(v.lowered, lower)
		v.words = append(v.words, wordForm(lower))
	}

	if len(v.terms) == 0 {
		return nil, fmt.Errorf("%s vocabulary is empty", name)
	}

	return v, nil
}

// MustVocabulary is like NewVocabulary but panics on error. It is meant for
// the built-in tables.
func MustVocabulary(name string, terms []string) *Vocabulary {
	v, err := NewVocabulary(name, terms)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vocabulary) Name() string { return v.name }

func (v *Vocabulary) Len() int { return len(v.terms) }

// Terms returns a copy of the canonical terms in vocabulary order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Match returns the canonical terms found in text, in vocabulary order.
func (v *Vocabulary) Match(text string, mode MatchMode) []string {
	found := make([]string, 0)

	if mode == MatchWord {
		hay := " " + wordForm(strings.ToLower(text)) + " "
		for i, phrase := range v.words {
			if phrase != "" && strings.Contains(hay, " "+phrase+" ") {
				found = append(found, v.terms[i])
			}
		}
		return found
	}

	lower := strings.ToLower(text)
	for i, term := range v.lowered {
		if strings.Contains(lower, term) {
			found = append(found, v.terms[i])
		}
	}
	return found
}

func wordForm(s string) string {
	s = nonWordChars.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
