package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// SuccessMessage is reported with every completed analysis.
const SuccessMessage = "Analysis completed successfully"

// Status classifies the outcome of an analysis request.
type Status string

const (
	StatusOK               Status = "ok"
	StatusMissingInput     Status = "missing_input"
	StatusExtractionFailed Status = "extraction_failed"
	StatusInternalError    Status = "internal_error"
)

// Code maps the status to an HTTP style code.
func (s Status) Code() int {
	switch s {
	case StatusOK:
		return 200
	case StatusMissingInput:
		return 400
	case StatusExtractionFailed:
		return 422
	default:
		return 500
	}
}

// Failure is the structured failure result surfaced to callers.
type Failure struct {
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Status, f.Message)
}

// SuccessEnvelope flattens the report fields into a response next to the
// success flag, message and analysis id.
func SuccessEnvelope(analysisID string, r *MatchReport) (map[string]any, error) {
	if r == nil {
		return nil, fmt.Errorf("report is required")
	}

	envelope := make(map[string]any)
	if err := mapstructure.Decode(*r, &envelope); err != nil {
		return nil, fmt.Errorf("flatten report: %w", err)
	}

	envelope["success"] = true
	envelope["message"] = SuccessMessage
	if analysisID != "" {
		envelope["analysis_id"] = analysisID
	}

	return envelope, nil
}

// FailureEnvelope renders a failure the same way as SuccessEnvelope does for
// reports.
func FailureEnvelope(f Failure) map[string]any {
	return map[string]any{
		"success": false,
		"status":  string(f.Status),
		"message": f.Message,
	}
}

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Encode writes v to w in the requested format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// DumpToTmpFile writes v to a new temporary file and returns its name.
func DumpToTmpFile(v any, format Format) (string, error) {
	ext := "json"
	if format == FormatYAML {
		ext = "yaml"
	}

	file, err := os.CreateTemp("", "match_report_*."+ext)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Encode(file, format, v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
