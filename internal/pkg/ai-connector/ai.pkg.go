package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"topup-store/internal/pkg/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrNotConfigured = errors.New("gemini client is not initialized")

type PromptResult struct {
	Response     string
	TokenUsed    int
	ResponseTime int // in milliseconds
}

type AiClient struct {
	geminiClient *genai.Client
	geminiModel  string
}

type Config struct {
	GeminiAPIKey string
	GeminiModel  string
}

// NewAiClient returns a client that is disabled when no key or model is configured.
func NewAiClient(ctx context.Context, cfg *Config) (*AiClient, error) {
	aiClient := &AiClient{}

	if cfg.GeminiAPIKey == "" || cfg.GeminiModel == "" {
		logger.Info.Println("Gemini not configured, receipt review disabled")
		return aiClient, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	aiClient.geminiClient = client
	aiClient.geminiModel = cfg.GeminiModel
	return aiClient, nil
}

func (a *AiClient) Enabled() bool {
	return a != nil && a.geminiClient != nil
}

func (a *AiClient) ModelName() string {
	return a.geminiModel
}

// imageFormat maps a content type to the format name genai.ImageData expects.
func imageFormat(contentType string) string {
	ct := strings.ToLower(contentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	format := strings.TrimPrefix(strings.TrimSpace(ct), "image/")
	if format == "jpg" || format == "" {
		return "jpeg"
	}
	return format
}

// PromptWithImageAndSchema sends a prompt plus one image and asks for JSON matching schema.
func (a *AiClient) PromptWithImageAndSchema(ctx context.Context, prompt string, image []byte, contentType string, schema *genai.Schema) (*PromptResult, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}

	model := a.geminiClient.GenerativeModel(a.geminiModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema

	startTime := time.Now()
	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(imageFormat(contentType), image),
	)
	responseTime := int(time.Since(startTime).Milliseconds())
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API with image and schema: %w", err)
	}

	text, err := firstText(resp)
	if err != nil {
		return nil, err
	}

	tokenUsed := 0
	if resp.UsageMetadata != nil {
		tokenUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &PromptResult{
		Response:     text,
		TokenUsed:    tokenUsed,
		ResponseTime: responseTime,
	}, nil
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("received empty or invalid response structure from Gemini")
	}
	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return string(textPart), nil
}

func (a *AiClient) Close() error {
	if a.geminiClient != nil {
		return a.geminiClient.Close()
	}
	return nil
}
