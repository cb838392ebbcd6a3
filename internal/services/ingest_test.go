package services

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"anatomyguru/script-evaluator/internal/models"
)

// fakePDFParser lets the decision table be exercised without real PDF bytes.
type fakePDFParser struct {
	text  string
	err   error
	calls int
}

func (f *fakePDFParser) ExtractText(data []byte) (*PDFContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &PDFContent{Text: f.text, PageCount: 1}, nil
}

// buildDocx assembles a minimal WordprocessingML archive in memory.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	part, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := part.Write([]byte(sb.String())); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestIngestDocxAlwaysText(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{}, 5*1024*1024)

	docx := buildDocx(t, "Q1 answer about the brachial plexus", "Q2 not attempted")
	doc, err := svc.Ingest("script.docx", docxMimeType, docx, nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if !doc.IsText() {
		t.Fatal("docx must produce text form")
	}
	if doc.Base64 != "" {
		t.Error("docx document must not carry base64 content")
	}
	if !doc.IsDocx {
		t.Error("IsDocx should be true")
	}
	if !strings.Contains(doc.Text, "brachial plexus") {
		t.Errorf("extracted text missing content: %q", doc.Text)
	}
}

func TestIngestDocxExtractionFailureIsFatal(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{}, 5*1024*1024)

	_, err := svc.Ingest("broken.docx", docxMimeType, []byte("not a zip archive, definitely"), nil)
	if err == nil {
		t.Fatal("expected error for corrupt docx")
	}
	if !errors.Is(err, models.ErrExtractionFailed) {
		t.Errorf("error = %v, want ErrExtractionFailed", err)
	}
}

func TestIngestDocxWithoutTextIsFatal(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{}, 5*1024*1024)

	// Structurally valid archive, but word/document.xml has no text runs.
	_, err := svc.Ingest("blank.docx", docxMimeType, buildDocx(t), nil)
	if err == nil {
		t.Fatal("expected error for a docx without text content")
	}
	if !errors.Is(err, models.ErrExtractionFailed) {
		t.Errorf("error = %v, want ErrExtractionFailed", err)
	}
	if !strings.Contains(err.Error(), "no text content") {
		t.Errorf("error should name the real cause: %v", err)
	}
}

func TestIngestPDFFormSelection(t *testing.T) {
	longText := strings.Repeat("anatomical content ", 10) // > 100 chars

	tests := []struct {
		name     string
		parser   *fakePDFParser
		wantText bool
	}{
		{"text layer above threshold", &fakePDFParser{text: longText}, true},
		{"text layer below threshold", &fakePDFParser{text: "short"}, false},
		{"extraction fails", &fakePDFParser{err: errors.New("no text content found in PDF")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewIngestService(tt.parser, 5*1024*1024)
			data := []byte("%PDF-1.4 fake body")

			doc, err := svc.Ingest("script.pdf", pdfMimeType, data, nil)
			if err != nil {
				t.Fatalf("Ingest() error = %v", err)
			}

			if doc.IsText() != tt.wantText {
				t.Fatalf("IsText() = %v, want %v", doc.IsText(), tt.wantText)
			}
			if tt.wantText {
				if doc.Text != tt.parser.text {
					t.Errorf("text = %q, want parser output", doc.Text)
				}
				return
			}

			// Binary fallback: round-trip law and preserved MIME type.
			if doc.MimeType != pdfMimeType {
				t.Errorf("mimeType = %q, want %q", doc.MimeType, pdfMimeType)
			}
			decoded, err := base64.StdEncoding.DecodeString(doc.Base64)
			if err != nil {
				t.Fatalf("base64 decode: %v", err)
			}
			if !bytes.Equal(decoded, data) {
				t.Error("decode(base64(bytes)) != bytes")
			}
		})
	}
}

func TestIngestImageBinaryRoundTrip(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{}, 5*1024*1024)

	doc, err := svc.Ingest("scan.png", "image/png", pngBytes, nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if doc.IsText() {
		t.Fatal("image must produce binary form")
	}
	if doc.MimeType != "image/png" {
		t.Errorf("mimeType = %q, want image/png", doc.MimeType)
	}
	decoded, err := base64.StdEncoding.DecodeString(doc.Base64)
	if err != nil {
		t.Fatalf("base64 decode: %v", err)
	}
	if !bytes.Equal(decoded, pngBytes) {
		t.Error("decode(base64(bytes)) != bytes")
	}
}

func TestIngestSniffsMissingMimeType(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{}, 5*1024*1024)

	doc, err := svc.Ingest("scan", "", pngBytes, nil)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if doc.MimeType != "image/png" {
		t.Errorf("sniffed mimeType = %q, want image/png", doc.MimeType)
	}
}

func TestIngestSizeGuardRunsFirst(t *testing.T) {
	parser := &fakePDFParser{text: "irrelevant"}
	svc := NewIngestService(parser, 1024)

	oversized := bytes.Repeat([]byte("a"), 1024)
	doc, err := svc.Ingest("huge.pdf", pdfMimeType, oversized, nil)
	if err == nil {
		t.Fatal("expected size-limit error")
	}
	if !errors.Is(err, models.ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
	if models.ClassifyError(err) != models.KindPayloadTooLarge {
		t.Errorf("kind = %q, want payload_too_large", models.ClassifyError(err))
	}
	if doc != nil {
		t.Error("no document should be produced for an oversized file")
	}
	if parser.calls != 0 {
		t.Error("size guard must run before any extraction work")
	}
}

func TestIngestEmptyFile(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{}, 5*1024*1024)

	_, err := svc.Ingest("empty.png", "image/png", nil, nil)
	if !errors.Is(err, models.ErrUnreadableFile) {
		t.Errorf("error = %v, want ErrUnreadableFile", err)
	}
}

func TestIngestProgressLabels(t *testing.T) {
	svc := NewIngestService(&fakePDFParser{err: errors.New("scanned")}, 5*1024*1024)

	var labels []string
	_, err := svc.Ingest("scan.pdf", pdfMimeType, []byte("%PDF-1.4"), func(label string) {
		labels = append(labels, label)
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if len(labels) < 2 {
		t.Errorf("expected progress labels for extraction and fallback, got %v", labels)
	}
}
