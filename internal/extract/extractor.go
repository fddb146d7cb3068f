package extract

import (
	"regexp"
	"strconv"
)

// Extractor finds vocabulary terms in text. Skills and education use the same
// extractor with different vocabularies. It never fails: no match is an empty
// result.
type Extractor struct {
	vocabulary *Vocabulary
	mode       MatchMode
}

func NewExtractor(vocabulary *Vocabulary, mode MatchMode) *Extractor {
	if mode == "" {
		mode = MatchSubstring
	}
	return &Extractor{vocabulary: vocabulary, mode: mode}
}

func (e *Extractor) Extract(text string) []string {
	return e.vocabulary.Match(text, e.mode)
}

func (e *Extractor) Vocabulary() *Vocabulary { return e.vocabulary }

func (e *Extractor) Mode() MatchMode { return e.mode }

var experiencePattern = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*(?:of)?\s*experience`)

// ExperienceYears returns the largest N found in phrases like "5 years of
// experience" or "3yrs experience", or 0 when there is none. It needs raw
// text: normalization removes the digits.
func ExperienceYears(raw string) int {
	maxYears := 0
	for _, match := range experiencePattern.FindAllStringSubmatch(raw, -1) {
		years, err := strconv.Atoi(match[1])
		if err != nil {
			// overflowing numbers are not a plausible requirement
			continue
		}
		if years > maxYears {
			maxYears = years
		}
	}
	return maxYears
}
