package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"prolens/profile-analyzer/internal/models"
	"prolens/profile-analyzer/internal/services"
)

type ChatHandler struct {
	chatModifier services.ChatModifier
}

func NewChatHandler(chatModifier services.ChatModifier) *ChatHandler {
	return &ChatHandler{
		chatModifier: chatModifier,
	}
}

// HandleChatModify handles POST /profiles/chat-modify. Each turn resends
// the full original analysis as context; nothing is persisted between
// turns.
func (h *ChatHandler) HandleChatModify(c *fiber.Ctx) error {
	var req models.ChatModifyRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request payload",
		})
	}

	if req.UserRequest == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "userRequest is required",
		})
	}

	if req.OriginalAnalysis == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "originalAnalysis is required",
		})
	}

	response, err := h.chatModifier.Modify(c.Context(), req.UserRequest, req.OriginalAnalysis)
	if err != nil {
		var unavailableErr *services.AnalysisUnavailableError
		if errors.As(err, &unavailableErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Both AI providers are unavailable",
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(models.ChatModifyResponse{
		Success:         true,
		ChatbotResponse: response.ChatbotResponse,
		UpdatedReport:   response.UpdatedReport,
	})
}
