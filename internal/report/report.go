package report

import (
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"

	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	// DefaultPreviewLength is the number of characters kept in the summaries.
	DefaultPreviewLength = 300
	// AnalysisDetails is attached to every report.
	AnalysisDetails = "Further analysis can be done on experience and education matching."
)

// ErrOutOfRange is returned when a computed percentage leaves [0, 100].
var ErrOutOfRange = errors.New("percentage out of range")

// MatchReport is the result of comparing one resume with one job description.
// Field names are the wire contract.
type MatchReport struct {
	OverallMatchPercentage    float64  `json:"overall_match_percentage" yaml:"overall_match_percentage" mapstructure:"overall_match_percentage"`
	SkillsMatchPercentage     float64  `json:"skills_match_percentage" yaml:"skills_match_percentage" mapstructure:"skills_match_percentage"`
	EducationMatchPercentage  float64  `json:"education_match_percentage" yaml:"education_match_percentage" mapstructure:"education_match_percentage"`
	ExperienceMatchPercentage float64  `json:"experience_match_percentage" yaml:"experience_match_percentage" mapstructure:"experience_match_percentage"`
	MatchingSkills            []string `json:"matching_skills" yaml:"matching_skills" mapstructure:"matching_skills"`
	MissingSkills             []string `json:"missing_skills" yaml:"missing_skills" mapstructure:"missing_skills"`
	ExtraSkills               []string `json:"extra_skills" yaml:"extra_skills" mapstructure:"extra_skills"`
	JobDescriptionSummary     string   `json:"job_description_summary" yaml:"job_description_summary" mapstructure:"job_description_summary"`
	ResumeSummary             string   `json:"resume_summary" yaml:"resume_summary" mapstructure:"resume_summary"`
	AnalysisDetails           string   `json:"analysis_details" yaml:"analysis_details" mapstructure:"analysis_details"`
}

// Inputs carries everything the composer needs. Texts are the normalized
// documents.
type Inputs struct {
	ResumeText         string
	JobDescriptionText string

	Similarity float64

	ResumeSkills []string
	JobSkills    []string

	ResumeEducation []string
	JobEducation    []string

	ResumeYears int
	JobYears    int
}

// Composer turns extractor and scorer outputs into a MatchReport.
type Composer struct {
	previewLength int
	// zeroExperienceSatisfied scores a "0 years required" job as fully
	// matched instead of the compatible 0%.
	zeroExperienceSatisfied bool
}

type Option func(*Composer)

func WithPreviewLength(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.previewLength = n
		}
	}
}

func WithZeroExperienceSatisfied(enabled bool) Option {
	return func(c *Composer) {
		c.zeroExperienceSatisfied = enabled
	}
}

func NewComposer(opts ...Option) *Composer {
	c := &Composer{previewLength: DefaultPreviewLength}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the report. It only fails when the inputs are inconsistent
// enough to push a percentage out of [0, 100].
func (c *Composer) Compose(in Inputs) (*MatchReport, error) {
	if in.ResumeYears < 0 || in.JobYears < 0 {
		return nil, fmt.Errorf("negative experience years (resume %d, job %d)", in.ResumeYears, in.JobYears)
	}

	resumeSkills := unique(in.ResumeSkills)
	jobSkills := unique(in.JobSkills)

	matching := intersect(resumeSkills, jobSkills)
	missing := difference(jobSkills, resumeSkills)
	extra := difference(resumeSkills, jobSkills)

	jobEducation := unique(in.JobEducation)
	educationMatched := intersect(unique(in.ResumeEducation), jobEducation)

	r := &MatchReport{
		OverallMatchPercentage:    in.Similarity,
		SkillsMatchPercentage:     ratio(len(matching), len(jobSkills)),
		EducationMatchPercentage:  ratio(len(educationMatched), len(jobEducation)),
		ExperienceMatchPercentage: c.experience(in.ResumeYears, in.JobYears),
		MatchingSkills:            matching,
		MissingSkills:             missing,
		ExtraSkills:               extra,
		JobDescriptionSummary:     utils.Prefix(in.JobDescriptionText, c.previewLength),
		ResumeSummary:             utils.Prefix(in.ResumeText, c.previewLength),
		AnalysisDetails:           AnalysisDetails,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Composer) experience(resumeYears, jobYears int) float64 {
	if jobYears == 0 {
		if c.zeroExperienceSatisfied {
			return 100
		}
		return 0
	}
	return min(float64(resumeYears)/float64(jobYears), 1) * 100
}

// Validate checks that every percentage lies in [0, 100].
func (r *MatchReport) Validate() error {
	percentages := map[string]float64{
		"overall_match_percentage":    r.OverallMatchPercentage,
		"skills_match_percentage":     r.SkillsMatchPercentage,
		"education_match_percentage":  r.EducationMatchPercentage,
		"experience_match_percentage": r.ExperienceMatchPercentage,
	}
	for name, value := range percentages {
		// NaN fails both comparisons
		if !(value >= 0 && value <= 100) {
			return fmt.Errorf("%s = %v: %w", name, value, ErrOutOfRange)
		}
	}
	return nil
}

// ratio returns part/whole as a percentage, or 0 when whole is empty.
func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func intersect(a, b []string) []string {
	return slice.FindAll(a, func(s string) bool { return slice.Contains(b, s) })
}

func difference(a, b []string) []string {
	return slice.FindAll(a, func(s string) bool { return !slice.Contains(b, s) })
}

func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
