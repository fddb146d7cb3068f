package ingest

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// TextExtractor turns document bytes into text chunks, one per page or
// section, in source order.
type TextExtractor interface {
	Extract(data []byte) ([]string, error)
}

// ExtractorFunc adapts a function to TextExtractor.
type ExtractorFunc func(data []byte) ([]string, error)

func (f ExtractorFunc) Extract(data []byte) ([]string, error) { return f(data) }

// PDFExtractor reads the plain text of every page.
type PDFExtractor struct{}

func (PDFExtractor) Extract(data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}

var (
	docxBreak = regexp.MustCompile(`<w:(?:br|cr)\b[^>]*/>`)
	docxTab   = regexp.MustCompile(`<w:tab\b[^>]*/>`)
	xmlTag    = regexp.MustCompile(`<[^>]*>`)
)

// DOCXExtractor reads the main document part, one chunk per paragraph.
type DOCXExtractor struct{}

func (DOCXExtractor) Extract(data []byte) ([]string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return docxParagraphs(doc.Editable().GetContent()), nil
}

func docxParagraphs(content string) []string {
	content = docxBreak.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")

	parts := strings.Split(content, "</w:p>")
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		text := html.UnescapeString(xmlTag.ReplaceAllString(part, ""))
		if strings.TrimSpace(text) == "" {
			continue
		}
		paragraphs = append(paragraphs, text)
	}
	return paragraphs
}

// PlainTextExtractor accepts UTF-8 text as a single chunk. Invalid byte
// sequences are replaced.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(data []byte) ([]string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	return []string{text}, nil
}
