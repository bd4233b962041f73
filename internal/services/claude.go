package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type ClaudeService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type claudeService struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewClaudeService(apiKey string, maxTokens int) ClaudeService {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &claudeService{
		client:    client,
		model:     anthropic.ModelClaude3_7SonnetLatest,
		maxTokens: int64(maxTokens),
	}
}

// Complete implements ClaudeService.
func (c *claudeService) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	responseText := textFromContent(response.Content)
	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	return responseText, nil
}

// textFromContent joins the text of every text block in the response.
// Thinking and tool-use blocks in between are skipped, not treated as
// missing text.
func textFromContent(blocks []anthropic.ContentBlockUnion) string {
	var builder strings.Builder
	for _, block := range blocks {
		if block.Type != "text" {
			continue
		}
		builder.WriteString(block.Text)
	}
	return builder.String()
}
