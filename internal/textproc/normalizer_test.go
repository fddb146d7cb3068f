package textproc

import (
	"strings"
	"testing"
	"unicode"
)

var stubLemmas = map[string]string{
	"running":    "run",
	"developers": "developer",
	"skills":     "skill",
	"others":     "other",
	"data":       "datum",
	"weird":      "We-ird",
}

func stubNormalizer() *Normalizer {
	return NewNormalizer(EnglishStopwords(), LemmaFunc(func(word string) string {
		if lemma, ok := stubLemmas[word]; ok {
			return lemma
		}
		return word
	}))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	n := stubNormalizer()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "lowercases and drops stopwords",
			input:  "The Python developers and the SQL",
			expect: "python developer sql",
		},
		{
			name:   "strips digits and punctuation",
			input:  "5 years' experience, C++ & Node.js!",
			expect: "years experience c nodejs",
		},
		{
			name:   "lemmatizes",
			input:  "Running skills",
			expect: "run skill",
		},
		{
			name:   "drops lemmas that are stopwords",
			input:  "others",
			expect: "",
		},
		{
			name:   "keeps word when lemma is not letters only",
			input:  "weird",
			expect: "weird",
		},
		{
			name:   "collapses whitespace",
			input:  "  python\t\n  go  ",
			expect: "python go",
		},
		{
			name:   "empty after cleaning",
			input:  "123 !!! 456",
			expect: "",
		},
		{
			name:   "empty input",
			input:  "",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := n.Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	n := stubNormalizer()
	inputs := []string{
		"Senior Python developers with 5+ years of experience in Machine Learning.",
		"Running data pipelines; others were not!",
		"",
		"THE AND OF",
	}

	for _, input := range inputs {
		once := n.Normalize(input)
		twice := n.Normalize(once)
		if once != twice {
			t.Fatalf("normalization is not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeHasNoDigitsOrStopwords(t *testing.T) {
	t.Parallel()

	stopwords := EnglishStopwords()
	n := NewNormalizer(stopwords, Identity)

	out := n.Normalize("I have 3 years of experience with the AWS cloud and it's 2024 now.")
	for _, r := range out {
		if unicode.IsDigit(r) {
			t.Fatalf("unexpected digit in %q", out)
		}
	}
	for _, word := range strings.Fields(out) {
		if stopwords.Contains(word) {
			t.Fatalf("unexpected stopword %q in %q", word, out)
		}
	}
	if out != "years experience aws cloud" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewNormalizerDefaults(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, nil)
	if got := n.Normalize("The Data"); got != "the data" {
		t.Fatalf("expected %q, got %q", "the data", got)
	}
}

func TestLemmaFixedPoint(t *testing.T) {
	t.Parallel()

	chain := map[string]string{"aaa": "aa", "aa": "a", "a": "a"}
	n := NewNormalizer(NewStopwords(), LemmaFunc(func(word string) string {
		if next, ok := chain[word]; ok {
			return next
		}
		return word
	}))

	if got := n.Normalize("aaa"); got != "a" {
		t.Fatalf("expected fixed point a, got %q", got)
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	if got := Clean("Node.js, C++ & Go-lang 1.24"); got != "nodejs c  golang " {
		t.Fatalf("unexpected cleaned text %q", got)
	}
}
