package ingest

import (
	"bytes"
	"net/http"
	"path"
	"strings"
)

// Format is a supported document encoding.
type Format string

const (
	FormatUnknown Format = ""
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatText    Format = "text"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// DetectFormat picks a format from the declared MIME type, then the file
// extension of name, then the leading bytes of data.
func DetectFormat(name, mime string, data []byte) Format {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch {
	case mime == mimePDF:
		return FormatPDF
	case mime == mimeDOCX:
		return FormatDOCX
	case strings.HasPrefix(mime, "text/"):
		return FormatText
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".txt", ".text", ".md":
		return FormatText
	}

	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return FormatPDF
	case bytes.HasPrefix(data, zipMagic):
		return FormatDOCX
	case len(data) > 0 && strings.HasPrefix(http.DetectContentType(data), "text/plain"):
		return FormatText
	}

	return FormatUnknown
}
