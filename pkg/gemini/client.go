// Package gemini wraps the Google Gemini API behind a small text-completion
// client. Every call carries its own API key because users may bring their
// own key instead of the platform one.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

// ErrNoAPIKey indicates that neither the user nor the platform has a
// Gemini API key configured.
var ErrNoAPIKey = errors.New("llm api key not configured")

const systemInstruction = "You are an expert educational content analyzer and lesson plan generator."

// Client issues text completions against a fixed Gemini model.
type Client struct {
	model string
}

// NewClient creates a completion client for the given model name,
// e.g. "gemini-2.0-flash".
func NewClient(model string) *Client {
	return &Client{model: model}
}

// Complete sends prompt to the model and returns the concatenated text of
// the first candidate. operation is a short label ("extract", "generate",
// "probe") used for metrics and logging only.
func (c *Client) Complete(ctx context.Context, operation, apiKey, prompt string) (string, error) {
	start := time.Now()

	if strings.TrimSpace(apiKey) == "" {
		c.record(operation, "no_key", start)
		return "", ErrNoAPIKey
	}

	// The SDK binds the key at client construction, so a fresh client is
	// needed per call to support per-user keys.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		c.record(operation, "error", start, zap.Error(err))
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.record(operation, "error", start, zap.Error(err))
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		c.record(operation, "empty", start, zap.Error(err))
		return "", err
	}

	c.record(operation, "success", start, zap.Int("response_chars", len(text)))
	return text, nil
}

func (c *Client) record(operation, status string, start time.Time, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	metrics.LLMRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.LLMRequestTotal.WithLabelValues(operation, status).Inc()
	logger.LogAPICall("gemini", operation, status, duration, fields...)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from model")
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", errors.New("model response has no content")
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("model response has no text parts")
	}

	return sb.String(), nil
}
