package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"anatomyguru/script-evaluator/internal/models"
	"anatomyguru/script-evaluator/internal/services"
)

// EvaluateHandler is the gateway: the only component that talks to the
// provider. One stateless invocation per analyze action, no retries at this
// layer, no idempotency.
type EvaluateHandler struct {
	gemini services.GeminiService
}

// NewEvaluateHandler accepts a nil service when the provider credential is
// absent; requests then fail with a configuration error instead of crashing
// at startup.
func NewEvaluateHandler(gemini services.GeminiService) *EvaluateHandler {
	return &EvaluateHandler{gemini: gemini}
}

func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "Method Not Allowed",
		})
	}

	if h.gemini == nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(models.NewErrorResponse(models.ErrMissingCredential))
	}

	var req models.EvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request payload",
			Kind:  models.KindUnknown,
		})
	}

	if req.SourceDoc == nil || req.DirtyFeedbackDoc == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Both 'sourceDoc' and 'dirtyFeedbackDoc' are required",
			Kind:  models.KindUnknown,
		})
	}

	if err := req.SourceDoc.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "sourceDoc: " + err.Error(),
			Kind:  models.KindIngestion,
		})
	}
	if err := req.DirtyFeedbackDoc.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "dirtyFeedbackDoc: " + err.Error(),
			Kind:  models.KindIngestion,
		})
	}

	reportJSON, err := h.gemini.GenerateReport(c.Context(), req.SourceDoc, req.DirtyFeedbackDoc)
	if err != nil {
		log.Printf("❌ Evaluation failed: %v\n", err)
		status := fiber.StatusInternalServerError
		if models.ClassifyError(err) == models.KindIngestion {
			// Bad document content, not a provider or server fault.
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.NewErrorResponse(err))
	}

	// Relay the provider's JSON unmodified; the gateway never parses or
	// re-validates a successful response.
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	return c.Status(fiber.StatusOK).SendString(reportJSON)
}
