package textproc

import (
	"strings"
	"unicode"
)

// maxLemmaPasses bounds the walk to a lemma fixed point.
const maxLemmaPasses = 4

// Normalizer turns raw document text into lowercase, letters-only, stopword
// free, lemmatized tokens joined by single spaces. It holds only read-only
// tables and is safe for concurrent use.
type Normalizer struct {
	stopwords  Stopwords
	lemmatizer Lemmatizer
}

func NewNormalizer(stopwords Stopwords, lemmatizer Lemmatizer) *Normalizer {
	if stopwords == nil {
		stopwords = NewStopwords()
	}
	if lemmatizer == nil {
		lemmatizer = Identity
	}
	return &Normalizer{stopwords: stopwords, lemmatizer: lemmatizer}
}

// Normalize applies lowercase, letter filtering, tokenization, stopword
// removal and lemmatization in that order. Digits and punctuation are gone
// afterwards, so anything that needs them must look at the raw text.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := Clean(raw)

	words := strings.Fields(cleaned)
	out := make([]string, 0, len(words))
	for _, word := range words {
		if n.stopwords.Contains(word) {
			continue
		}

		lemma := n.lemma(word)
		// a lemma may itself be a function word ("others" -> "other")
		if n.stopwords.Contains(lemma) {
			continue
		}
		out = append(out, lemma)
	}

	return strings.Join(out, " ")
}

// lemma resolves the word to a fixed point so that normalizing normalized
// text changes nothing. Results outside [a-z]+ are rejected.
func (n *Normalizer) lemma(word string) string {
	current := word
	for range maxLemmaPasses {
		next := strings.ToLower(n.lemmatizer.Lemma(current))
		if next == current || !isLetters(next) {
			return current
		}
		current = next
	}
	return current
}

// Clean lowercases s and drops everything that is neither an ASCII lowercase
// letter nor whitespace.
func Clean(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
