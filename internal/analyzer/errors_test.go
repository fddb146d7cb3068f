package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/report"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  report.Status
		message string
	}{
		{
			name:    "missing resume",
			err:     &MissingInputError{Input: "resume document"},
			status:  report.StatusMissingInput,
			message: "resume document is required",
		},
		{
			name:    "wrapped extraction",
			err:     fmt.Errorf("load: %w", &ingest.ExtractionError{Document: RoleResume, Err: ingest.ErrNoText}),
			status:  report.StatusExtractionFailed,
			message: "error extracting text from resume document",
		},
		{
			name:    "scoring",
			err:     &ScoringError{Stage: "similarity", Err: errors.New("boom")},
			status:  report.StatusInternalError,
			message: "internal error",
		},
		{
			name:    "context",
			err:     context.Canceled,
			status:  report.StatusInternalError,
			message: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tt.err)
			if got.Status != tt.status {
				t.Fatalf("expected status %s, got %s", tt.status, got.Status)
			}
			if got.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, got.Message)
			}
		})
	}
}

func TestScoringErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &ScoringError{Stage: "composition", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("expected ScoringError to unwrap to its cause")
	}
	if err.Error() != "scoring failed at composition: cause" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
