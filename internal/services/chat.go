package services

import (
	"context"
	"encoding/json"
	"strings"
)

// ChatResponse is one chat turn's result. UpdatedReport is a partial
// structural delta of the original analysis and may be empty.
type ChatResponse struct {
	ChatbotResponse string
	UpdatedReport   map[string]any
	Provider        Provider
}

type ChatModifier interface {
	Modify(ctx context.Context, userRequest, originalAnalysis string) (*ChatResponse, error)
}

type chatModifier struct {
	requester AnalysisRequester
	prompts   *PromptBuilder
}

func NewChatModifier(requester AnalysisRequester) ChatModifier {
	return &chatModifier{
		requester: requester,
		prompts:   NewPromptBuilder(),
	}
}

// Modify implements ChatModifier. The full original analysis is resent as
// opaque context on every turn. A reply that does not honor the JSON
// contract is still served: the raw text becomes the conversational
// response and the report delta stays empty. Only a total provider outage
// fails the turn.
func (c *chatModifier) Modify(ctx context.Context, userRequest, originalAnalysis string) (*ChatResponse, error) {
	prompt := c.prompts.BuildChatModifyPrompt(userRequest, originalAnalysis)

	result, err := c.requester.CompleteWithFallback(ctx, prompt, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ChatbotResponse string         `json:"chatbotResponse"`
		UpdatedReport   map[string]any `json:"updatedReport"`
	}

	if err := json.Unmarshal([]byte(ExtractJSON(result.Text)), &parsed); err != nil {
		return &ChatResponse{
			ChatbotResponse: strings.TrimSpace(result.Text),
			UpdatedReport:   map[string]any{},
			Provider:        result.Provider,
		}, nil
	}

	if parsed.UpdatedReport == nil {
		parsed.UpdatedReport = map[string]any{}
	}

	return &ChatResponse{
		ChatbotResponse: parsed.ChatbotResponse,
		UpdatedReport:   parsed.UpdatedReport,
		Provider:        result.Provider,
	}, nil
}

// ExtractJSON tries to extract JSON from text that might contain markdown
// or other formatting.
func ExtractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
