package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"prolens/profile-analyzer/internal/models"
)

type SessionRepository interface {
	Create(session *models.AdminSession) error
	FindByToken(token string) (*models.AdminSession, error)
	DeleteByToken(token string) error
	DeleteExpired() (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.AdminSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByToken implements SessionRepository.
func (r *sessionRepository) FindByToken(token string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := r.db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// DeleteByToken implements SessionRepository.
func (r *sessionRepository) DeleteByToken(token string) error {
	result := r.db.Where("token = ?", token).Delete(&models.AdminSession{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

// DeleteExpired implements SessionRepository.
func (r *sessionRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.AdminSession{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}
