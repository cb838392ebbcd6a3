package services

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"anatomyguru/script-evaluator/internal/models"
)

const (
	docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	pdfMimeType  = "application/pdf"

	// minPDFTextLength is the threshold below which an extracted PDF text
	// layer is treated as negligible (scanned/image-only document) and the
	// file falls back to binary form.
	minPDFTextLength = 100
)

// ProgressFunc receives advisory human-readable progress labels during
// ingestion. Display only; never required for correctness.
type ProgressFunc func(label string)

type IngestService interface {
	Ingest(name, declaredMime string, data []byte, progress ProgressFunc) (*models.IngestedDocument, error)
}

type ingestService struct {
	pdfParser   PDFParserService
	maxFileSize int64
}

func NewIngestService(pdfParser PDFParserService, maxFileSize int64) IngestService {
	return &ingestService{
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
	}
}

// Ingest converts one uploaded file into its normalized form.
//
// Decision order:
//  1. DOCX (by extension or declared MIME): extract raw text. Always text
//     form; extraction failure is fatal for the document, no fallback.
//  2. PDF: attempt a page-by-page text-layer extraction. Text form when the
//     result exceeds the minimum length, binary fallback otherwise.
//  3. Everything else (images, fallen-through PDFs): base64 binary form.
//
// The size guard runs before any extraction or encoding work.
func (s *ingestService) Ingest(name, declaredMime string, data []byte, progress ProgressFunc) (*models.IngestedDocument, error) {
	if progress == nil {
		progress = func(string) {}
	}

	if int64(len(data)) >= s.maxFileSize {
		return nil, fmt.Errorf("%w: %q is %d bytes, limit is %d bytes — please upload documents under %dMB",
			models.ErrFileTooLarge, name, len(data), s.maxFileSize, s.maxFileSize/(1024*1024))
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", models.ErrUnreadableFile, name)
	}

	switch {
	case isDocx(name, declaredMime):
		progress(fmt.Sprintf("Extracting text from %s...", name))
		text, err := ExtractDocxText(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrExtractionFailed, name, err)
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: %s: no text content found in document", models.ErrExtractionFailed, name)
		}
		return &models.IngestedDocument{
			Text:   text,
			Name:   name,
			IsDocx: true,
		}, nil

	case isPDF(name, declaredMime):
		progress(fmt.Sprintf("Reading PDF text layer of %s...", name))
		content, err := s.pdfParser.ExtractText(data)
		if err == nil && len(strings.TrimSpace(content.Text)) > minPDFTextLength {
			return &models.IngestedDocument{
				Text: content.Text,
				Name: name,
			}, nil
		}
		// Scanned or image-only PDF: fall through to the binary form.
		progress(fmt.Sprintf("No usable text layer in %s, sending as binary...", name))
		return s.binaryDocument(name, pdfMimeType, data), nil

	default:
		progress(fmt.Sprintf("Encoding %s for transmission...", name))
		return s.binaryDocument(name, declaredMime, data), nil
	}
}

func (s *ingestService) binaryDocument(name, declaredMime string, data []byte) *models.IngestedDocument {
	mime := declaredMime
	if mime == "" || mime == "application/octet-stream" {
		mime = mimetype.Detect(data).String()
	}

	return &models.IngestedDocument{
		Base64:   base64.StdEncoding.EncodeToString(data),
		MimeType: mime,
		Name:     name,
	}
}

func isDocx(name, mime string) bool {
	return strings.EqualFold(filepath.Ext(name), ".docx") || mime == docxMimeType
}

func isPDF(name, mime string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf") || mime == pdfMimeType
}
