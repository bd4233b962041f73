package handlers

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prolens/profile-analyzer/internal/models"
	"prolens/profile-analyzer/internal/repositories"
)

type AdminHandler struct {
	sessionRepo repositories.SessionRepository
	adminKey    string
	sessionTTL  time.Duration
}

func NewAdminHandler(sessionRepo repositories.SessionRepository, adminKey string, sessionTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		sessionRepo: sessionRepo,
		adminKey:    adminKey,
		sessionTTL:  sessionTTL,
	}
}

// HandleCreateSession handles POST /admin/sessions.
func (h *AdminHandler) HandleCreateSession(c *fiber.Ctx) error {
	var req models.AdminSessionRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request payload",
		})
	}

	if h.adminKey == "" || subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(h.adminKey)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid admin key",
		})
	}

	adminID := req.AdminID
	if adminID == "" {
		adminID = "admin"
	}

	session := &models.AdminSession{
		ID:        uuid.New(),
		Token:     uuid.New().String(),
		AdminID:   adminID,
		ExpiresAt: time.Now().Add(h.sessionTTL),
		CreatedAt: time.Now(),
	}

	if err := h.sessionRepo.Create(session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.AdminSessionResponse{
		Success:   true,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}

// HandleDeleteSession handles DELETE /admin/sessions. The token being
// revoked is the one presented in X-Admin-Token.
func (h *AdminHandler) HandleDeleteSession(c *fiber.Ctx) error {
	token := c.Get("X-Admin-Token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Admin token required",
		})
	}

	if err := h.sessionRepo.DeleteByToken(token); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Session not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Session revoked",
	})
}

// RequireSession is the middleware guarding admin-only routes. Expired
// sessions are rejected even before the sweeper removes them.
func (h *AdminHandler) RequireSession(c *fiber.Ctx) error {
	token := c.Get("X-Admin-Token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Admin token required",
		})
	}

	session, err := h.sessionRepo.FindByToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid admin token",
		})
	}

	if session.Expired() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Admin session expired",
		})
	}

	return c.Next()
}
