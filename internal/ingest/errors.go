package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrNoText means the source parsed but yielded only whitespace.
	ErrNoText = errors.New("no text extracted")
	// ErrUnsupportedFormat means no extractor handles the source.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrTooLarge means the source exceeds MaxDocumentSize.
	ErrTooLarge = errors.New("document is too large")
)

// ExtractionError reports a document that produced no usable text. It is a
// hard failure: callers must not continue with empty text.
type ExtractionError struct {
	// Document is the role of the document, e.g. "resume".
	Document string
	// Source is the location the document was read from, if any.
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("extracting text from %s: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("extracting text from %s %q: %v", e.Document, e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
