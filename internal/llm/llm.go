// Package llm refines meeting types that the keyword rules could not
// place. It is optional: without an API key, or on any error, records
// keep the type the rules assigned.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"cabsbot/internal/consolidate"
)

// Classifier calls the Anthropic API to map booking purposes onto the
// known meeting types.
type Classifier struct {
	APIKey string
	Model  string
}

const systemPrompt = `You classify corporate room bookings. For each booking purpose you are given,
pick exactly one meeting type from this list:

- Client Meeting
- Group Meeting
- Non-Client Meeting
- General Meeting
- Training Session
- Other

Respond with a JSON array only. Each element: {"id": <number>, "type": "<meeting type>"}.
Use "Other" when unsure.`

type decision struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

var validTypes = map[string]consolidate.MeetingType{
	string(consolidate.MeetingClient):    consolidate.MeetingClient,
	string(consolidate.MeetingGroup):     consolidate.MeetingGroup,
	string(consolidate.MeetingNonClient): consolidate.MeetingNonClient,
	string(consolidate.MeetingGeneral):   consolidate.MeetingGeneral,
	string(consolidate.MeetingTraining):  consolidate.MeetingTraining,
	string(consolidate.MeetingOther):     consolidate.MeetingOther,
}

// RefineMeetingTypes sends every record still typed "Other" to the
// model and applies the answers in place. Errors are logged and the
// records are left unchanged.
func (c *Classifier) RefineMeetingTypes(ctx context.Context, records []consolidate.MasterMeetingRecord) {
	if c == nil || c.APIKey == "" {
		return
	}

	var idx []int
	var lines []string
	for i, rec := range records {
		if rec.MeetingType != consolidate.MeetingOther || rec.Purpose == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%d: %s", len(idx), rec.Purpose))
		idx = append(idx, i)
	}
	if len(idx) == 0 {
		return
	}

	raw, err := c.call(ctx, strings.Join(lines, "\n"))
	if err != nil {
		log.Printf("llm: meeting type refinement skipped: %v", err)
		return
	}

	var decisions []decision
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &decisions); err != nil {
		log.Printf("llm: unparseable response: %v", err)
		return
	}
	for _, d := range decisions {
		if d.ID < 0 || d.ID >= len(idx) {
			continue
		}
		if mt, ok := validTypes[d.Type]; ok && mt != consolidate.MeetingOther {
			records[idx[d.ID]].MeetingType = mt
		}
	}
}

func (c *Classifier) call(ctx context.Context, userPrompt string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(c.APIKey))

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.Model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}

// extractJSONArray tolerates models that wrap the array in code fences
// or prose.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
