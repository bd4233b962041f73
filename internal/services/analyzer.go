package services

import (
	"context"
	"log"
)

// Provider identifies which LLM vendor produced a response.
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// AnalysisResult is the tagged success result of the fallback chain: the
// vendor-agnostic analysis text plus the provider that produced it.
type AnalysisResult struct {
	Text     string
	Provider Provider
}

type AnalysisRequester interface {
	RequestAnalysis(ctx context.Context, payload *ProfilePayload) (*AnalysisResult, error)
	CompleteWithFallback(ctx context.Context, primaryPrompt, fallbackPrompt string) (*AnalysisResult, error)
}

type analysisRequester struct {
	claude  ClaudeService
	openai  OpenAIService
	prompts *PromptBuilder
}

func NewAnalysisRequester(claude ClaudeService, openai OpenAIService) AnalysisRequester {
	return &analysisRequester{
		claude:  claude,
		openai:  openai,
		prompts: NewPromptBuilder(),
	}
}

// RequestAnalysis implements AnalysisRequester. The fallback prompt adds
// an explicit JSON constraint line for OpenAI, matching the payload shape
// the primary provider receives.
func (a *analysisRequester) RequestAnalysis(ctx context.Context, payload *ProfilePayload) (*AnalysisResult, error) {
	prompt := a.prompts.BuildProfileAnalysisPrompt(payload)
	fallbackPrompt := prompt + "\n\nRespond in JSON if the requested format cannot be produced."
	return a.CompleteWithFallback(ctx, prompt, fallbackPrompt)
}

// CompleteWithFallback runs the explicit two-step provider sequence:
// exactly one attempt against Claude, then exactly one attempt against
// OpenAI. No retries within a provider; the end user can retry the whole
// request. Both errors are carried when both attempts fail.
func (a *analysisRequester) CompleteWithFallback(ctx context.Context, primaryPrompt, fallbackPrompt string) (*AnalysisResult, error) {
	text, primaryErr := a.claude.Complete(ctx, primaryPrompt)
	if primaryErr == nil {
		return &AnalysisResult{Text: text, Provider: ProviderClaude}, nil
	}

	log.Printf("⚠️  Claude attempt failed: %v. Falling back to OpenAI...\n", primaryErr)

	text, fallbackErr := a.openai.Complete(ctx, fallbackPrompt)
	if fallbackErr == nil {
		return &AnalysisResult{Text: text, Provider: ProviderOpenAI}, nil
	}

	log.Printf("❌ OpenAI fallback failed: %v\n", fallbackErr)

	return nil, &AnalysisUnavailableError{
		PrimaryErr:  primaryErr,
		FallbackErr: fallbackErr,
	}
}
