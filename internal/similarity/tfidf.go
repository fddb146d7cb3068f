// Package similarity scores the lexical overlap of two normalized documents
// with TF-IDF weighted cosine similarity.
//
// The vector space is built from exactly the two documents being compared, so
// scores are only meaningful for that pair.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// minTermLength is the shortest token that counts as a term.
const minTermLength = 2

// ErrNotFinite is returned when the computation produced NaN or infinity.
var ErrNotFinite = errors.New("similarity is not a finite number")

// Terms splits normalized text into vectorizer terms.
func Terms(text string) []string {
	fields := strings.Fields(text)
	terms := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}

// Score returns the cosine similarity of the TF-IDF vectors of a and b as a
// percentage in [0, 100]. When either document has no terms the result is 0.
func Score(a, b string) (float64, error) {
	countsA := termCounts(Terms(a))
	countsB := termCounts(Terms(b))
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0, nil
	}

	const documents = 2
	idf := func(term string) float64 {
		df := 0
		if _, ok := countsA[term]; ok {
			df++
		}
		if _, ok := countsB[term]; ok {
			df++
		}
		// smoothed: as if one extra document contained every term once
		return math.Log(float64(1+documents)/float64(1+df)) + 1
	}

	var dot, normA, normB float64
	for term, tfA := range countsA {
		w := float64(tfA) * idf(term)
		normA += w * w
		if tfB, ok := countsB[term]; ok {
			dot += w * float64(tfB) * idf(term)
		}
	}
	for term, tfB := range countsB {
		w := float64(tfB) * idf(term)
		normB += w * w
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(cosine) || math.IsInf(cosine, 0) {
		return 0, fmt.Errorf("cosine of %d and %d terms: %w", len(countsA), len(countsB), ErrNotFinite)
	}

	return math.Min(math.Max(cosine, 0), 1) * 100, nil
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}
