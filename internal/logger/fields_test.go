package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  document  ", Value: "  resume  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "document" || fields[0].String != "resume" {
		t.Fatalf("unexpected document field: %+v", fields[0])
	}

	empty := StringFields()
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestDocumentFields(t *testing.T) {
	fields := DocumentFields("  resume  ", "pdf")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if fields[0].Key != FieldDocument || fields[0].String != "resume" {
		t.Fatalf("unexpected document field: %+v", fields[0])
	}

	if fields[1].Key != FieldFormat || fields[1].String != "pdf" {
		t.Fatalf("unexpected format field: %+v", fields[1])
	}

	empty := DocumentFields("", "")
	if len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithDocumentAndAnalysis(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithAnalysis(WithDocument(logger, "job description", "docx"), "a-1")
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldDocument] != "job description" {
		t.Fatalf("expected document field, got %q", ctx[FieldDocument])
	}

	if ctx[FieldFormat] != "docx" {
		t.Fatalf("expected format field to be docx, got %q", ctx[FieldFormat])
	}

	if ctx[FieldAnalysisID] != "a-1" {
		t.Fatalf("expected analysis id a-1, got %q", ctx[FieldAnalysisID])
	}

	enriched = WithDocument(nil, "resume", "pdf")
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	enriched.Info("another log")
}
