package services

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestExtractDocxText(t *testing.T) {
	docx := buildDocx(t, "First paragraph.", "Second paragraph.")

	text, err := ExtractDocxText(docx)
	if err != nil {
		t.Fatalf("ExtractDocxText() error = %v", err)
	}

	if !strings.Contains(text, "First paragraph.") || !strings.Contains(text, "Second paragraph.") {
		t.Errorf("extracted text missing paragraphs: %q", text)
	}
	if !strings.Contains(text, "First paragraph.\nSecond paragraph.") {
		t.Errorf("paragraphs should be separated by newlines: %q", text)
	}
}

func TestExtractDocxTextCorruptArchive(t *testing.T) {
	if _, err := ExtractDocxText([]byte("this is not a zip")); err == nil {
		t.Error("expected error for a corrupt archive")
	}
}

func TestExtractDocxTextMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	part, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	part.Write([]byte("<styles/>"))
	zw.Close()

	if _, err := ExtractDocxText(buf.Bytes()); err == nil {
		t.Error("expected error when word/document.xml is absent")
	}
}
