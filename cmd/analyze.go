package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/report"
)

const (
	PromptShowReport      = "Show report"
	PromptSkillsBreakdown = "Show skills breakdown"
	PromptReportToFile    = "Dump report to file"
	PromptExit            = "Exit"

	jobTextLabel = "job description text"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action?",
	Items: []string{PromptShowReport, PromptSkillsBreakdown, PromptReportToFile, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:          "analyze",
	Short:        "Compare a resume with one or more job descriptions",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume document: a local path or s3://bucket/key")
	analyzeCmd.Flags().StringArray("jd", nil, "job description document: a local path or s3://bucket/key. Repeat to compare against several.")
	analyzeCmd.Flags().String("jd-text", "", "job description as plain text")
	analyzeCmd.Flags().String("jd-text-file", "", "file holding the job description as plain text")
	analyzeCmd.Flags().StringP("output", "o", string(report.FormatJSON), "report format: json or yaml")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "ask what to do with the report after the analysis")

	analyzeCmd.MarkFlagsMutuallyExclusive("jd-text", "jd-text-file")
}

// ExitError carries the process exit code of a finished command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for an error returned by Execute.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return 1
}

func statusExitCode(status report.Status) int {
	switch status {
	case report.StatusOK:
		return 0
	case report.StatusMissingInput:
		return 2
	case report.StatusExtractionFailed:
		return 3
	default:
		return 4
	}
}

// request is the analysis asked for on the command line. A non-empty batch
// replaces jd and jdText.
type request struct {
	resume *ingest.Source
	jd     *ingest.Source
	jdText string
	batch  []analyzer.Job
}

func (r *request) usesS3() bool {
	sources := []*ingest.Source{r.resume, r.jd}
	for _, job := range r.batch {
		sources = append(sources, job.Source)
	}
	for _, src := range sources {
		if src != nil && strings.HasPrefix(strings.ToLower(src.URI), "s3://") {
			return true
		}
	}
	return false
}

func analyze(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	output, _ := cmd.Flags().GetString("output")
	format, err := report.ParseFormat(output)
	if err != nil {
		return err
	}

	req, err := readRequest(cmd)
	if err != nil {
		return err
	}

	a, err := newAnalyzer(ctx, config, logger, req.usesS3())
	if err != nil {
		logger.Fatal("building the analyzer", zap.Error(err))
	}

	out := cmd.OutOrStdout()

	if len(req.batch) > 0 {
		return analyzeBatch(ctx, a, req, format, out, logger)
	}

	id := uuid.NewString()
	r, err := a.Analyze(ctx, analyzer.Input{
		ID:                 id,
		Resume:             req.resume,
		JobDescription:     req.jd,
		JobDescriptionText: req.jdText,
	})
	if err != nil {
		failure := analyzer.Classify(err)
		logger.Error("analysis failed",
			zap.String("analysis_id", id),
			zap.String("status", string(failure.Status)),
			zap.Error(err),
		)
		if err := report.Encode(out, format, report.FailureEnvelope(failure)); err != nil {
			return err
		}
		return &ExitError{Code: statusExitCode(failure.Status), Err: failure}
	}

	envelope, err := report.SuccessEnvelope(id, r)
	if err != nil {
		return err
	}

	if err := report.Encode(out, format, envelope); err != nil {
		return err
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		return nil
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return nil
		}

		if err := handleAction(action, logger, out, format, envelope, r); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func handleAction(action string, logger *zap.Logger, out io.Writer, format report.Format, envelope map[string]any, r *report.MatchReport) error {
	switch action {
	case PromptShowReport:
		return report.Encode(out, format, envelope)
	case PromptSkillsBreakdown:
		pretty, _ := json.MarshalIndent(newSkillsBreakdown(r), "", "  ")
		logger.Info(string(pretty), zap.Float64("skills_match_percentage", r.SkillsMatchPercentage))
		return nil
	case PromptReportToFile:
		filename, err := report.DumpToTmpFile(envelope, format)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

type skillsBreakdown struct {
	Matching []string `json:"matching"`
	Missing  []string `json:"missing"`
	Extra    []string `json:"extra"`
}

func newSkillsBreakdown(r *report.MatchReport) skillsBreakdown {
	return skillsBreakdown{
		Matching: r.MatchingSkills,
		Missing:  r.MissingSkills,
		Extra:    r.ExtraSkills,
	}
}

func analyzeBatch(ctx context.Context, a *analyzer.Analyzer, req *request, format report.Format, out io.Writer, logger *zap.Logger) error {
	results := a.AnalyzeBatch(ctx, req.resume, req.batch)

	envelopes := make([]map[string]any, 0, len(results))
	code, failed := 0, 0
	for _, res := range results {
		var envelope map[string]any
		if res.Err != nil {
			failure := analyzer.Classify(res.Err)
			logger.Warn("job analysis failed",
				zap.String("job_description", res.Label),
				zap.String("status", string(failure.Status)),
				zap.Error(res.Err),
			)
			envelope = report.FailureEnvelope(failure)
			code = max(code, statusExitCode(failure.Status))
			failed++
		} else {
			var err error
			envelope, err = report.SuccessEnvelope(uuid.NewString(), res.Report)
			if err != nil {
				return err
			}
		}
		envelope["job_description"] = res.Label
		envelopes = append(envelopes, envelope)
	}

	if err := report.Encode(out, format, envelopes); err != nil {
		return err
	}

	if failed > 0 {
		return &ExitError{Code: code, Err: fmt.Errorf("%d of %d analyses failed", failed, len(results))}
	}
	return nil
}

func readRequest(cmd *cobra.Command) (*request, error) {
	flags := cmd.Flags()

	resume, _ := flags.GetString("resume")
	jds, _ := flags.GetStringArray("jd")
	text, _ := flags.GetString("jd-text")
	textFile, _ := flags.GetString("jd-text-file")

	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return nil, fmt.Errorf("reading job description text file: %w", err)
		}
		text = string(data)
	}

	return newRequest(resume, jds, text), nil
}

func newRequest(resume string, jds []string, text string) *request {
	req := &request{resume: sourceFor(resume), jdText: text}

	switch len(jds) {
	case 0:
	case 1:
		req.jd = sourceFor(jds[0])
	default:
		for _, jd := range jds {
			req.batch = append(req.batch, analyzer.Job{Label: jd, Source: sourceFor(jd)})
		}
		if strings.TrimSpace(text) != "" {
			req.batch = append(req.batch, analyzer.Job{Label: jobTextLabel, Text: text})
		}
		req.jdText = ""
	}

	return req
}

func sourceFor(uri string) *ingest.Source {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil
	}
	return &ingest.Source{URI: uri}
}
