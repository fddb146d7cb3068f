package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldDocument is the structured log field key for the document role
	// ("resume" or "job description").
	FieldDocument = "document"
	// FieldFormat is the structured log field key for the detected document format.
	FieldFormat = "format"
	// FieldAnalysisID is the structured log field key correlating one analysis.
	FieldAnalysisID = "analysis_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields returns the fields describing a document role and its format.
// Empty values are ignored to keep log entries compact when information is missing.
func DocumentFields(document, format string) []zap.Field {
	return StringFields(
		StringField{Key: FieldDocument, Value: document},
		StringField{Key: FieldFormat, Value: format},
	)
}

// WithDocument attaches the document fields to the provided logger.
func WithDocument(logger *zap.Logger, document, format string) *zap.Logger {
	return WithFields(logger, DocumentFields(document, format)...)
}

// WithAnalysis attaches the analysis correlation id to the provided logger.
func WithAnalysis(logger *zap.Logger, id string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldAnalysisID, Value: id})...)
}
