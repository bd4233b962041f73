package handlers

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prolens/profile-analyzer/internal/services"
)

type stubChatModifier struct {
	response *services.ChatResponse
	err      error
}

func (s *stubChatModifier) Modify(_ context.Context, _, _ string) (*services.ChatResponse, error) {
	return s.response, s.err
}

func newChatApp(modifier services.ChatModifier) *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/profiles/chat-modify", NewChatHandler(modifier).HandleChatModify)
	return app
}

func TestHandleChatModify_MissingFields(t *testing.T) {
	app := newChatApp(&stubChatModifier{})

	for _, body := range []string{
		`{}`,
		`{"userRequest": "shorten it"}`,
		`{"originalAnalysis": "text"}`,
	} {
		req := httptest.NewRequest("POST", "/api/v1/profiles/chat-modify", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body %s", body)
	}
}

func TestHandleChatModify_Success(t *testing.T) {
	app := newChatApp(&stubChatModifier{response: &services.ChatResponse{
		ChatbotResponse: "Sounds good!",
		UpdatedReport:   map[string]any{},
	}})

	req := httptest.NewRequest("POST", "/api/v1/profiles/chat-modify",
		strings.NewReader(`{"userRequest": "shorten it", "originalAnalysis": "the analysis"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Sounds good!", body["chatbotResponse"])
	assert.Equal(t, map[string]any{}, body["updatedReport"])
}

func TestHandleChatModify_BothProvidersDown(t *testing.T) {
	app := newChatApp(&stubChatModifier{err: &services.AnalysisUnavailableError{
		PrimaryErr:  errors.New("claude unreachable"),
		FallbackErr: errors.New("openai unreachable"),
	}})

	req := httptest.NewRequest("POST", "/api/v1/profiles/chat-modify",
		strings.NewReader(`{"userRequest": "anything", "originalAnalysis": "the analysis"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Both AI providers are unavailable", body["message"])
}
