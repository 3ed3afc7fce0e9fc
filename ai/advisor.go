package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"qr-dine/services"

	"google.golang.org/genai"
)

var advisorSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"triggerNotification": {
			Type:        genai.TypeBoolean,
			Description: "Whether or not an audible notification should be triggered for the new order.",
		},
		"reason": {
			Type:        genai.TypeString,
			Description: "The reason for triggering or not triggering the audible notification.",
		},
	},
	Required: []string{"triggerNotification", "reason"},
}

func buildAdvisorPrompt(in services.AdvisorInput) string {
	var b strings.Builder
	b.WriteString(`You are a restaurant management expert advising a kitchen on when to trigger audible notifications for new orders.

Consider the following factors to determine if an audible notification is necessary:

- orderQueueLength: The number of orders currently in the queue.
- timeOfDay: The current time of day.
- dayOfWeek: The current day of the week.

During peak hours (e.g., lunch and dinner rushes) or when the order queue is long, it is more important to trigger notifications to ensure no orders are missed.
Outside of peak hours or when the queue is short, notifications may be less critical.

Based on these factors, decide whether to trigger an audible notification for a new order. Explain your reasoning.

`)
	fmt.Fprintf(&b, "Current order queue length: %d\n", in.OrderQueueLength)
	fmt.Fprintf(&b, "Current time of day: %s\n", in.TimeOfDay)
	fmt.Fprintf(&b, "Current day of week: %s\n", in.DayOfWeek)
	return b.String()
}

// Advise implements services.NotificationAdvisor.
func (c *Client) Advise(ctx context.Context, in services.AdvisorInput) (services.AdvisorDecision, error) {
	text, err := c.generateJSON(ctx, buildAdvisorPrompt(in), advisorSchema)
	if err != nil {
		return services.AdvisorDecision{}, err
	}
	var decision services.AdvisorDecision
	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		return services.AdvisorDecision{}, fmt.Errorf("decode advisor response: %w", err)
	}
	return decision, nil
}
