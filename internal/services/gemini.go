package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"anatomyguru/script-evaluator/internal/config"
	"anatomyguru/script-evaluator/internal/models"
)

type GeminiService interface {
	// GenerateReport performs the single provider call and returns the raw
	// JSON text exactly as the model produced it.
	GenerateReport(ctx context.Context, source, notes *models.IngestedDocument) (string, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxTokens   int32
	maxAttempts int
}

func NewGeminiService(cfg config.GeminiConfig) (GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, models.ErrMissingCredential
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &geminiService{
		client:      client,
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxOutputTokens,
		maxAttempts: maxAttempts,
	}, nil
}

// GenerateReport implements GeminiService.
func (g *geminiService) GenerateReport(ctx context.Context, source, notes *models.IngestedDocument) (string, error) {
	// A build failure means bad document content; keep its ingestion
	// classification instead of blaming the provider.
	contents, err := BuildUserContents(source, notes)
	if err != nil {
		return "", err
	}

	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   g.maxTokens,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ReportSchema(),
	}

	// One attempt by default; RETRY_MAX_ATTEMPTS > 1 opts into a bounded
	// retry for transient provider failures.
	var lastErr error
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, genConfig)
		if err == nil {
			text := resp.Text()
			if text == "" {
				return "", fmt.Errorf("%w: no text content in response", models.ErrProviderFailure)
			}
			return text, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", models.ErrProviderFailure, ctx.Err())
		default:
		}

		if attempt < g.maxAttempts {
			log.Printf("⚠️ Gemini attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("%w: %v", models.ErrProviderFailure, lastErr)
}
