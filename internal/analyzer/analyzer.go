// Package analyzer runs the resume matching pipeline: ingestion,
// normalization, field extraction, similarity scoring and report
// composition.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/report"
	"github.com/spigell/resume-matcher/internal/similarity"
	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	RoleResume         = "resume"
	RoleJobDescription = "job description"

	defaultConcurrency = 4
	maxLogLength       = 120
)

// DocumentIngestor extracts raw text from a source.
type DocumentIngestor interface {
	Extract(ctx context.Context, src ingest.Source) (string, error)
}

// TextNormalizer produces normalized token text.
type TextNormalizer interface {
	Normalize(raw string) string
}

// KeywordExtractor returns the vocabulary terms present in text.
type KeywordExtractor interface {
	Extract(text string) []string
}

// ScoreFunc computes the similarity percentage of two normalized texts.
type ScoreFunc func(a, b string) (float64, error)

// YearsFunc extracts required or offered experience years from raw text.
type YearsFunc func(raw string) int

// Document is one ingested text. It is not modified after Load returns.
type Document struct {
	Raw        string
	Normalized string
}

// Input describes one analysis request. Exactly one of JobDescription and
// JobDescriptionText is expected; the document wins when both are set.
type Input struct {
	// ID correlates log entries. A random one is generated when empty.
	ID                 string
	Resume             *ingest.Source
	JobDescription     *ingest.Source
	JobDescriptionText string
}

type Config struct {
	// Concurrency bounds parallel analyses in AnalyzeBatch.
	Concurrency int
}

// Deps aggregates the read-only collaborators of the pipeline. They are
// built once and shared by all analyses.
type Deps struct {
	Ingestor   DocumentIngestor
	Normalizer TextNormalizer
	Skills     KeywordExtractor
	Education  KeywordExtractor
	Experience YearsFunc
	Score      ScoreFunc
	Composer   *report.Composer
	Logger     *zap.Logger
}

// Analyzer holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	ingestor    DocumentIngestor
	normalizer  TextNormalizer
	skills      KeywordExtractor
	education   KeywordExtractor
	experience  YearsFunc
	score       ScoreFunc
	composer    *report.Composer
	concurrency int
	logger      *zap.Logger
}

func New(cfg *Config, deps *Deps) (*Analyzer, error) {
	if deps == nil {
		return nil, fmt.Errorf("deps are not initialized: analyzer is not usable")
	}
	if deps.Ingestor == nil {
		return nil, fmt.Errorf("document ingestor is required")
	}
	if deps.Normalizer == nil {
		return nil, fmt.Errorf("text normalizer is required")
	}
	if deps.Skills == nil || deps.Education == nil {
		return nil, fmt.Errorf("skills and education extractors are required")
	}

	a := &Analyzer{
		ingestor:    deps.Ingestor,
		normalizer:  deps.Normalizer,
		skills:      deps.Skills,
		education:   deps.Education,
		experience:  deps.Experience,
		score:       deps.Score,
		composer:    deps.Composer,
		concurrency: defaultConcurrency,
		logger:      logger.WithFields(deps.Logger),
	}

	if a.experience == nil {
		return nil, fmt.Errorf("experience extractor is required")
	}
	if a.score == nil {
		a.score = similarity.Score
	}
	if a.composer == nil {
		a.composer = report.NewComposer()
	}
	if cfg != nil && cfg.Concurrency > 0 {
		a.concurrency = cfg.Concurrency
	}

	return a, nil
}

// Analyze compares one resume with one job description.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*report.MatchReport, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := logger.WithAnalysis(a.logger, id)
	started := time.Now()

	resume, err := a.load(ctx, log, RoleResume, *in.Resume)
	if err != nil {
		return nil, err
	}

	jd, err := a.loadJobDescription(ctx, log, in)
	if err != nil {
		return nil, err
	}

	r, err := a.compare(log, resume, jd)
	if err != nil {
		log.Warn("scoring failed", zap.Error(err))
		return nil, err
	}

	log.Info("analysis completed",
		zap.Float64("overall_match_percentage", r.OverallMatchPercentage),
		zap.Float64("skills_match_percentage", r.SkillsMatchPercentage),
		zap.Duration("took", time.Since(started)),
	)

	return r, nil
}

func validate(in Input) error {
	if !present(in.Resume) {
		return &MissingInputError{Input: RoleResume + " document"}
	}
	if !present(in.JobDescription) && strings.TrimSpace(in.JobDescriptionText) == "" {
		return &MissingInputError{Input: RoleJobDescription + " document or text"}
	}

	return nil
}

func present(src *ingest.Source) bool {
	return src != nil && (src.Data != nil || strings.TrimSpace(src.URI) != "")
}

func (a *Analyzer) loadJobDescription(ctx context.Context, log *zap.Logger, in Input) (Document, error) {
	if present(in.JobDescription) {
		if strings.TrimSpace(in.JobDescriptionText) != "" {
			log.Warn("both job description document and text are given; using the document")
		}
		return a.load(ctx, log, RoleJobDescription, *in.JobDescription)
	}

	return a.FromText(in.JobDescriptionText), nil
}

// Load ingests and normalizes a document. The source is named after role so
// that extraction failures report which document broke.
func (a *Analyzer) Load(ctx context.Context, role string, src ingest.Source) (Document, error) {
	return a.load(ctx, a.logger, role, src)
}

func (a *Analyzer) load(ctx context.Context, log *zap.Logger, role string, src ingest.Source) (Document, error) {
	src.Name = role

	raw, err := a.ingestor.Extract(ctx, src)
	if err != nil {
		return Document{}, err
	}

	doc := a.FromText(raw)
	logger.WithDocument(log, role, "").Debug("document normalized",
		zap.Int("raw_length", len(doc.Raw)),
		zap.Int("normalized_length", len(doc.Normalized)),
		zap.String("normalized_preview", utils.TruncateForLog(doc.Normalized, maxLogLength)),
	)

	return doc, nil
}

// FromText wraps already extracted text.
func (a *Analyzer) FromText(raw string) Document {
	return Document{Raw: raw, Normalized: a.normalizer.Normalize(raw)}
}

// Compare runs extraction, scoring and composition over two loaded
// documents. Extractors see the raw text so that digits and punctuated
// terms such as "C++" survive; similarity uses the normalized text.
func (a *Analyzer) Compare(resume, jd Document) (*report.MatchReport, error) {
	return a.compare(a.logger, resume, jd)
}

func (a *Analyzer) compare(log *zap.Logger, resume, jd Document) (r *report.MatchReport, err error) {
	stage := "similarity"
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = &ScoringError{Stage: stage, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	score, err := a.score(resume.Normalized, jd.Normalized)
	if err != nil {
		return nil, &ScoringError{Stage: stage, Err: err}
	}

	stage = "extraction"
	in := report.Inputs{
		ResumeText:         resume.Normalized,
		JobDescriptionText: jd.Normalized,
		Similarity:         score,
		ResumeSkills:       a.skills.Extract(resume.Raw),
		JobSkills:          a.skills.Extract(jd.Raw),
		ResumeEducation:    a.education.Extract(resume.Raw),
		JobEducation:       a.education.Extract(jd.Raw),
		ResumeYears:        a.experience(resume.Raw),
		JobYears:           a.experience(jd.Raw),
	}

	log.Debug("fields extracted",
		zap.Strings("resume_skills", in.ResumeSkills),
		zap.Strings("job_skills", in.JobSkills),
		zap.Strings("resume_education", in.ResumeEducation),
		zap.Strings("job_education", in.JobEducation),
		zap.Int("resume_years", in.ResumeYears),
		zap.Int("job_years", in.JobYears),
		zap.Float64("similarity", score),
	)

	stage = "composition"
	r, err = a.composer.Compose(in)
	if err != nil {
		return nil, &ScoringError{Stage: stage, Err: err}
	}

	return r, nil
}
