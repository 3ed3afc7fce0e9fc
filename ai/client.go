// Package ai implements the two delegated decision calls (order summary and
// audible-notification advice) on top of the Gemini API. Both are best-effort
// enrichments: callers must treat every error here as non-fatal.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type Client struct {
	genai *genai.Client
	model string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Client{genai: c, model: model}, nil
}

// generateJSON sends the prompt and constrains the response to the given JSON
// schema, returning the raw JSON text.
func (c *Client) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
