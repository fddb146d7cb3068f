// Package ingest produces the raw text of resumes and job descriptions from
// local files, object storage or in-memory bytes.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/utils"
)

const previewLogLength = 120

// Source identifies one document. Data takes precedence over URI.
type Source struct {
	// Name is the document role used in errors and logs.
	Name string
	URI  string
	Data []byte
	// MIME is the declared content type, if known.
	MIME string
}

// Ingestor fetches sources and extracts their text.
type Ingestor struct {
	fetchers   map[string]Fetcher
	extractors map[Format]TextExtractor
	logger     *zap.Logger
}

type Option func(*Ingestor)

// WithFetcher registers a fetcher for a URI scheme such as "s3".
func WithFetcher(scheme string, f Fetcher) Option {
	return func(i *Ingestor) {
		i.fetchers[strings.ToLower(scheme)] = f
	}
}

// WithExtractor replaces the extractor of a format.
func WithExtractor(format Format, e TextExtractor) Option {
	return func(i *Ingestor) {
		i.extractors[format] = e
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(i *Ingestor) {
		i.logger = l
	}
}

// New returns an ingestor reading local files as PDF, DOCX or plain text.
func New(opts ...Option) *Ingestor {
	i := &Ingestor{
		fetchers: map[string]Fetcher{
			"file": FileFetcher{},
		},
		extractors: map[Format]TextExtractor{
			FormatPDF:  PDFExtractor{},
			FormatDOCX: DOCXExtractor{},
			FormatText: PlainTextExtractor{},
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = logger.WithFields(i.logger)
	return i
}

// Extract returns the text of src with every page or section followed by a
// newline. Any failure, including a whitespace-only result, is returned as
// *ExtractionError.
func (i *Ingestor) Extract(ctx context.Context, src Source) (string, error) {
	fail := func(err error) error {
		return &ExtractionError{Document: src.Name, Source: src.URI, Err: err}
	}

	data := src.Data
	if data == nil {
		if src.URI == "" {
			return "", fail(fmt.Errorf("source has neither data nor uri"))
		}

		fetcher, ok := i.fetchers[scheme(src.URI)]
		if !ok {
			return "", fail(fmt.Errorf("no fetcher for scheme %q", scheme(src.URI)))
		}

		var err error
		data, err = fetcher.Fetch(ctx, src.URI)
		if err != nil {
			return "", fail(err)
		}
	}

	format := DetectFormat(src.URI, src.MIME, data)
	log := logger.WithDocument(i.logger, src.Name, string(format))

	extractor, ok := i.extractors[format]
	if !ok {
		return "", fail(fmt.Errorf("%w (mime %q, uri %q)", ErrUnsupportedFormat, src.MIME, src.URI))
	}

	chunks, err := safeExtract(extractor, data)
	if err != nil {
		return "", fail(err)
	}

	var b strings.Builder
	for _, chunk := range chunks {
		b.WriteString(chunk)
		b.WriteString("\n")
	}
	text := b.String()

	if strings.TrimSpace(text) == "" {
		log.Debug("document contains no text", zap.Int("chunks", len(chunks)), zap.Int("bytes", len(data)))
		return "", fail(ErrNoText)
	}

	log.Debug("document extracted",
		zap.Int("bytes", len(data)),
		zap.Int("chunks", len(chunks)),
		zap.Int("characters", utf8.RuneCountInString(text)),
		zap.String("preview", utils.TruncateForLog(text, previewLogLength)),
	)

	return text, nil
}

// safeExtract turns parser panics on malformed input into errors.
func safeExtract(e TextExtractor, data []byte) (chunks []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			chunks = nil
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return e.Extract(data)
}
