package analyzer

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/report"
)

// Job is one job description of a batch, given as a document or as text.
type Job struct {
	// Label names the job in results, e.g. the file name.
	Label  string
	Source *ingest.Source
	Text   string
}

// Result is the outcome for one job of a batch.
type Result struct {
	Label  string
	Report *report.MatchReport
	Err    error
}

// AnalyzeBatch compares one resume against many job descriptions. The resume
// is ingested once; jobs run in parallel and fail independently. Results keep
// the order of jobs.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, resume *ingest.Source, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i].Label = job.Label
	}

	if !present(resume) {
		return fillErr(results, &MissingInputError{Input: RoleResume + " document"})
	}

	doc, err := a.Load(ctx, RoleResume, *resume)
	if err != nil {
		return fillErr(results, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			results[i].Report, results[i].Err = a.analyzeJob(gctx, doc, job)
			return nil
		})
	}

	// workers never return errors; failures live in results
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	a.logger.Info("batch completed", zap.Int("jobs", len(jobs)), zap.Int("failed", failed))

	return results
}

func (a *Analyzer) analyzeJob(ctx context.Context, resume Document, job Job) (*report.MatchReport, error) {
	var jd Document
	switch {
	case job.Source != nil:
		if !present(job.Source) {
			return nil, &MissingInputError{Input: RoleJobDescription + " document or text"}
		}
		loaded, err := a.Load(ctx, RoleJobDescription, *job.Source)
		if err != nil {
			return nil, err
		}
		jd = loaded
	case strings.TrimSpace(job.Text) != "":
		jd = a.FromText(job.Text)
	default:
		return nil, &MissingInputError{Input: RoleJobDescription + " document or text"}
	}

	return a.Compare(resume, jd)
}

func fillErr(results []Result, err error) []Result {
	for i := range results {
		results[i].Err = err
	}
	return results
}
