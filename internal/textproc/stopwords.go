package textproc

import (
	"bufio"
	"strings"

	_ "embed"
)

//go:embed stopwords.txt
var englishStopwords string

// Stopwords is a closed, read-only set of function words.
type Stopwords map[string]struct{}

// NewStopwords builds a set from the given words, lowercasing and trimming them.
func NewStopwords(words ...string) Stopwords {
	set := make(Stopwords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// EnglishStopwords returns the reference English stopword list.
func EnglishStopwords() Stopwords {
	words := make([]string, 0, 180)
	scanner := bufio.NewScanner(strings.NewReader(englishStopwords))
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	return NewStopwords(words...)
}

func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

func (s Stopwords) Len() int { return len(s) }
