package report

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestComposeSkills(t *testing.T) {
	t.Parallel()

	r, err := NewComposer().Compose(Inputs{
		ResumeSkills: []string{"Python", "Java"},
		JobSkills:    []string{"Python", "SQL"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(r.MatchingSkills, []string{"Python"}) {
		t.Fatalf("unexpected matching skills %v", r.MatchingSkills)
	}
	if !reflect.DeepEqual(r.MissingSkills, []string{"SQL"}) {
		t.Fatalf("unexpected missing skills %v", r.MissingSkills)
	}
	if !reflect.DeepEqual(r.ExtraSkills, []string{"Java"}) {
		t.Fatalf("unexpected extra skills %v", r.ExtraSkills)
	}
	if r.SkillsMatchPercentage != 50 {
		t.Fatalf("expected 50, got %v", r.SkillsMatchPercentage)
	}
}

func TestComposeEmptyJobSets(t *testing.T) {
	t.Parallel()

	r, err := NewComposer().Compose(Inputs{
		ResumeSkills:    []string{"Python"},
		ResumeEducation: []string{"bachelor"},
		ResumeYears:     8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, v := range map[string]float64{
		"skills":     r.SkillsMatchPercentage,
		"education":  r.EducationMatchPercentage,
		"experience": r.ExperienceMatchPercentage,
	} {
		if v != 0 || math.IsNaN(v) {
			t.Fatalf("%s: expected 0, got %v", name, v)
		}
	}

	if r.MatchingSkills == nil || r.MissingSkills == nil || len(r.MatchingSkills) != 0 || len(r.MissingSkills) != 0 {
		t.Fatalf("expected empty non-nil lists, got %#v / %#v", r.MatchingSkills, r.MissingSkills)
	}
	if !reflect.DeepEqual(r.ExtraSkills, []string{"Python"}) {
		t.Fatalf("unexpected extra skills %v", r.ExtraSkills)
	}
}

func TestComposeExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		composer *Composer
		resume   int
		job      int
		expect   float64
	}{
		{name: "capped at 100", composer: NewComposer(), resume: 6, job: 4, expect: 100},
		{name: "partial", composer: NewComposer(), resume: 2, job: 4, expect: 50},
		{name: "no resume experience", composer: NewComposer(), resume: 0, job: 3, expect: 0},
		{name: "zero required is zero by default", composer: NewComposer(), resume: 5, job: 0, expect: 0},
		{name: "zero required satisfied when enabled", composer: NewComposer(WithZeroExperienceSatisfied(true)), resume: 0, job: 0, expect: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, err := tt.composer.Compose(Inputs{ResumeYears: tt.resume, JobYears: tt.job})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.ExperienceMatchPercentage != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, r.ExperienceMatchPercentage)
			}
		})
	}
}

func TestComposeEducationUsesSets(t *testing.T) {
	t.Parallel()

	r, err := NewComposer().Compose(Inputs{
		ResumeEducation: []string{"bachelor", "bachelor", "msc"},
		JobEducation:    []string{"bachelor", "master", "bachelor"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.EducationMatchPercentage != 50 {
		t.Fatalf("expected 50, got %v", r.EducationMatchPercentage)
	}
}

func TestComposePreviews(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("python ", 100)
	r, err := NewComposer().Compose(Inputs{ResumeText: long, JobDescriptionText: "sql"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.ResumeSummary) != DefaultPreviewLength {
		t.Fatalf("expected %d characters, got %d", DefaultPreviewLength, len(r.ResumeSummary))
	}
	if r.JobDescriptionSummary != "sql" {
		t.Fatalf("unexpected summary %q", r.JobDescriptionSummary)
	}
	if r.AnalysisDetails != AnalysisDetails {
		t.Fatalf("unexpected details %q", r.AnalysisDetails)
	}

	r, err = NewComposer(WithPreviewLength(6), WithPreviewLength(-1)).Compose(Inputs{ResumeText: long})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ResumeSummary != "python" {
		t.Fatalf("unexpected summary %q", r.ResumeSummary)
	}
}

func TestComposeRejectsInvalidInputs(t *testing.T) {
	t.Parallel()

	if _, err := NewComposer().Compose(Inputs{Similarity: math.NaN()}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for NaN similarity, got %v", err)
	}
	if _, err := NewComposer().Compose(Inputs{Similarity: 101}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for 101, got %v", err)
	}
	if _, err := NewComposer().Compose(Inputs{JobYears: -1}); err == nil {
		t.Fatalf("expected error for negative years")
	}
}
