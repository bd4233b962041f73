package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prolens/profile-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindLatestByProfileID(profileID uuid.UUID) (*models.Analysis, error)
	DeleteByProfileID(profileID uuid.UUID) error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// FindLatestByProfileID implements AnalysisRepository.
func (r *analysisRepository) FindLatestByProfileID(profileID uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		First(&analysis).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	return &analysis, nil
}

// DeleteByProfileID implements AnalysisRepository.
func (r *analysisRepository) DeleteByProfileID(profileID uuid.UUID) error {
	if err := r.db.Where("profile_id = ?", profileID).Delete(&models.Analysis{}).Error; err != nil {
		return fmt.Errorf("failed to delete analyses: %w", err)
	}
	return nil
}
