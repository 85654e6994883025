// Package extraction calls an OpenAI-compatible chat-completions API to turn
// a free-text campaign description into a structured CampaignRecord. It is
// the only collaborator allowed to fail loudly: a response that does not
// satisfy the record schema is surfaced as ErrSchemaViolation rather than
// silently coerced into a part-empty record.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"utmforge/pkg/client"
	"utmforge/pkg/config"
	"utmforge/pkg/logger"
	"utmforge/pkg/model"
)

var (
	ErrMissingAPIKey   = errors.New("extraction API key is not configured")
	ErrSchemaViolation = errors.New("extraction response does not satisfy the campaign record schema")
)

const (
	completionsPath = "/v1/chat/completions"

	systemPrompt = `You are an expert marketing URL operations assistant.
Convert the user's natural language campaign description into structured UTM parameters.

Rules:
- website_url: Extract the destination URL. If missing scheme, assume https://.
- source (utm_source): Required. Lowercase.
- medium (utm_medium): Required. Lowercase.
- name (utm_campaign): Required (or id). Convert spaces to underscores. Keep lowercase unless specified.
- id (utm_id): Optional.
- term (utm_term): Optional.
- content (utm_content): Optional.

Return JSON only matching the schema.`
)

type Client struct {
	http        *client.HttpClient
	apiKey      string
	model       string
	temperature float64
	maxAttempts int
	validate    *validator.Validate
	log         *logger.Logger
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:        client.NewHttpClient(cfg.OpenAIBaseURL, cfg.ExtractionTimeout),
		apiKey:      cfg.OpenAIAPIKey,
		model:       cfg.OpenAIModel,
		temperature: cfg.OpenAITemperature,
		maxAttempts: cfg.ExtractionRetries,
		validate:    validator.New(),
		log:         cfg.Log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

func recordSchema() map[string]any {
	optional := map[string]any{"type": []string{"string", "null"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"website_url": map[string]any{"type": "string"},
			"source":      map[string]any{"type": "string"},
			"medium":      map[string]any{"type": "string"},
			"name":        optional,
			"id":          optional,
			"term":        optional,
			"content":     optional,
		},
		"required":             []string{"website_url", "source", "medium", "name", "id", "term", "content"},
		"additionalProperties": false,
	}
}

// Extract turns a free-text campaign description into a CampaignRecord.
// Transport failures and throttling are retried with exponential backoff;
// schema violations are permanent and wrap ErrSchemaViolation.
func (c *Client) Extract(ctx context.Context, prompt string) (*model.CampaignRecord, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		ResponseFormat: &responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   "campaign_parameters",
				Strict: true,
				Schema: recordSchema(),
			},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		record, retryable, err := c.attempt(ctx, request)
		if err == nil {
			return record, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}

		c.log.Warn("Extraction attempt failed",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err,
		)

		if attempt < c.maxAttempts {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("extraction failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, request chatRequest) (*model.CampaignRecord, bool, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	resp, err := c.http.POSTWithHeaders(ctx, completionsPath, request, headers)
	if err != nil {
		return nil, true, fmt.Errorf("completions request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := gjson.GetBytes(resp.Body, "error.message").String()
		if apiErr == "" {
			apiErr = http.StatusText(resp.StatusCode)
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return nil, retryable, fmt.Errorf("completions API returned %d: %s", resp.StatusCode, apiErr)
	}

	content := gjson.GetBytes(resp.Body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return nil, false, fmt.Errorf("%w: response contains no message content", ErrSchemaViolation)
	}

	record, err := c.decodeRecord(content.String())
	if err != nil {
		return nil, false, err
	}
	return record, false, nil
}

func (c *Client) decodeRecord(content string) (*model.CampaignRecord, error) {
	var record model.CampaignRecord
	if err := json.Unmarshal([]byte(content), &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	if err := c.validate.Struct(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	return &record, nil
}

// sleepBackoff waits 2s, 4s, 8s... capped at 10s, honoring cancellation.
func sleepBackoff(ctx context.Context, attempt int) error {
	wait := time.Duration(1<<attempt) * time.Second
	if wait > 10*time.Second {
		wait = 10 * time.Second
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
