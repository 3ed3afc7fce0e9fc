package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"qr-dine/models"

	"google.golang.org/genai"
)

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {
			Type:        genai.TypeString,
			Description: "A concise summary of the order details.",
		},
	},
	Required: []string{"summary"},
}

func buildSummaryPrompt(items []models.OrderItem) string {
	var b strings.Builder
	b.WriteString(`You are a helpful assistant summarizing restaurant orders for the chef.

Create a concise summary of the order details for the chef, including the quantity and name of each item, and any special requests.

Order Items:
`)
	for _, it := range items {
		fmt.Fprintf(&b, "- %dx %s", it.Quantity, it.Name)
		if it.SpecialRequests != "" {
			fmt.Fprintf(&b, " (%s)", it.SpecialRequests)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Summarize implements services.SummaryGenerator.
func (c *Client) Summarize(ctx context.Context, items []models.OrderItem) (string, error) {
	text, err := c.generateJSON(ctx, buildSummaryPrompt(items), summarySchema)
	if err != nil {
		return "", err
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}
	return out.Summary, nil
}
