package textproc

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer reduces a lowercase word to its dictionary base form. Unknown
// words are returned unchanged.
type Lemmatizer interface {
	Lemma(word string) string
}

// LemmaFunc adapts an ordinary function to the Lemmatizer interface.
type LemmaFunc func(word string) string

func (f LemmaFunc) Lemma(word string) string { return f(word) }

// Identity keeps words as they are.
var Identity = LemmaFunc(func(word string) string { return word })

// NewDictionaryLemmatizer loads the English lemma dictionary. Loading is
// expensive, so callers build it once and share it; lookups are read-only.
func NewDictionaryLemmatizer() (Lemmatizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return lemmatizer, nil
}
