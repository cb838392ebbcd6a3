package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"anatomyguru/script-evaluator/internal/models"
	"anatomyguru/script-evaluator/internal/services"
)

// ingestFields are the accepted multipart field names, processed in this
// order so the source document is always ingested before the faculty notes.
var ingestFields = []string{"source", "faculty_notes"}

type IngestHandler struct {
	ingestService services.IngestService
	maxFileSize   int64
}

func NewIngestHandler(ingestService services.IngestService, maxFileSize int64) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		maxFileSize:   maxFileSize,
	}
}

// HandleIngest normalizes the uploaded files into text or base64 form.
// Nothing is persisted: the client holds the resulting documents and sends
// them back on the evaluate call.
func (h *IngestHandler) HandleIngest(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "failed to parse multipart form",
			Kind:  models.KindUnknown,
		})
	}

	var (
		results  []models.IngestedFileResult
		progress []string
	)
	record := func(label string) { progress = append(progress, label) }

	for _, field := range ingestFields {
		files, exists := form.File[field]
		if !exists || len(files) == 0 {
			continue
		}
		fileHeader := files[0]

		// Cheap size check before the file is even read.
		if fileHeader.Size >= h.maxFileSize {
			err := fmt.Errorf("%w: %q is %d bytes, limit is %d bytes",
				models.ErrFileTooLarge, fileHeader.Filename, fileHeader.Size, h.maxFileSize)
			return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(err))
		}

		data, err := readMultipartFile(fileHeader)
		if err != nil {
			wrapped := fmt.Errorf("%w: %q: %v", models.ErrUnreadableFile, fileHeader.Filename, err)
			return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(wrapped))
		}

		doc, err := h.ingestService.Ingest(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, record)
		if err != nil {
			status := fiber.StatusBadRequest
			if models.ClassifyError(err) == models.KindUnknown {
				status = fiber.StatusInternalServerError
			}
			return c.Status(status).JSON(models.NewErrorResponse(err))
		}

		results = append(results, models.IngestedFileResult{
			ID:       uuid.New().String(),
			Field:    field,
			Document: doc,
		})
	}

	if len(results) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "No valid files uploaded. Please upload 'source' and/or 'faculty_notes'.",
			Kind:  models.KindUnknown,
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.IngestResponse{
		Message:   "Files ingested successfully",
		Documents: results,
		Progress:  progress,
	})
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
