package analyzer

import (
	"errors"
	"fmt"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/report"
)

const internalErrorMessage = "internal error"

// MissingInputError is returned before any work starts when a required
// document is absent.
type MissingInputError struct {
	// Input describes what is missing, e.g. "resume document".
	Input string
}

func (e *MissingInputError) Error() string {
	return e.Input + " is required"
}

// ScoringError wraps unexpected failures while vectorizing or composing the
// report.
type ScoringError struct {
	Stage string
	Err   error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring failed at %s: %v", e.Stage, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

// Classify translates any analysis error into the structured failure
// reported to callers.
func Classify(err error) report.Failure {
	var missing *MissingInputError
	if errors.As(err, &missing) {
		return report.Failure{Status: report.StatusMissingInput, Message: missing.Error()}
	}

	var extraction *ingest.ExtractionError
	if errors.As(err, &extraction) {
		return report.Failure{
			Status:  report.StatusExtractionFailed,
			Message: fmt.Sprintf("error extracting text from %s document", extraction.Document),
		}
	}

	return report.Failure{Status: report.StatusInternalError, Message: internalErrorMessage}
}
