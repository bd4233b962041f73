package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"prolens/profile-analyzer/internal/models"
)

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByUserID(userID string) (*models.Profile, error)
	FindAll() ([]models.Profile, error)
	Update(profile *models.Profile) error
	DeleteByUserID(userID string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create implements ProfileRepository.
func (r *profileRepository) Create(profile *models.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByUserID implements ProfileRepository.
func (r *profileRepository) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// FindAll implements ProfileRepository.
func (r *profileRepository) FindAll() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Update implements ProfileRepository.
func (r *profileRepository) Update(profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	result := r.db.Model(&models.Profile{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"name":       profile.Name,
			"headline":   profile.Headline,
			"summary":    profile.Summary,
			"sections":   profile.Sections,
			"raw_text":   profile.RawText,
			"source":     profile.Source,
			"updated_at": profile.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}

// DeleteByUserID implements ProfileRepository.
func (r *profileRepository) DeleteByUserID(userID string) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Profile{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}

	return nil
}
