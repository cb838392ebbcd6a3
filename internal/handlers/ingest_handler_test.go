package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"anatomyguru/script-evaluator/internal/models"
	"anatomyguru/script-evaluator/internal/services"
)

func newIngestApp(maxFileSize int64) *fiber.App {
	ingestService := services.NewIngestService(services.NewPDFParserService(), maxFileSize)
	app := fiber.New(fiber.Config{BodyLimit: 32 * 1024 * 1024})
	app.Post("/api/v1/ingest", NewIngestHandler(ingestService, maxFileSize).HandleIngest)
	return app
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestIngestImageUpload(t *testing.T) {
	app := newIngestApp(5 * 1024 * 1024)

	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	body, contentType := multipartBody(t, "source", "scan.png", png)

	req := httptest.NewRequest("POST", "/api/v1/ingest", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(result.Documents))
	}

	doc := result.Documents[0]
	if doc.ID == "" {
		t.Error("ingested document should carry an ID")
	}
	if doc.Field != "source" {
		t.Errorf("field = %q, want source", doc.Field)
	}
	if doc.Document.Base64 == "" || doc.Document.IsText() {
		t.Errorf("image upload should be binary form: %+v", doc.Document)
	}
}

func TestIngestOversizedFile(t *testing.T) {
	app := newIngestApp(5 * 1024 * 1024)

	// 6 MB upload against the 5 MB ceiling.
	oversized := bytes.Repeat([]byte("x"), 6*1024*1024)
	body, contentType := multipartBody(t, "source", "huge.png", oversized)

	req := httptest.NewRequest("POST", "/api/v1/ingest", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var errBody models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Kind != models.KindPayloadTooLarge {
		t.Errorf("kind = %q, want payload_too_large", errBody.Kind)
	}
	if errBody.Hint == "" {
		t.Error("size errors should carry a remediation hint")
	}
}

func TestIngestNoFiles(t *testing.T) {
	app := newIngestApp(5 * 1024 * 1024)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("unused", "value")
	writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/ingest", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
