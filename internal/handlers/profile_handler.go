package handlers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"prolens/profile-analyzer/internal/models"
	"prolens/profile-analyzer/internal/repositories"
	"prolens/profile-analyzer/internal/services"
)

type ProfileHandler struct {
	profileRepo  repositories.ProfileRepository
	analysisRepo repositories.AnalysisRepository
	indexer      services.ProfileIndexer
}

func NewProfileHandler(
	profileRepo repositories.ProfileRepository,
	analysisRepo repositories.AnalysisRepository,
	indexer services.ProfileIndexer,
) *ProfileHandler {
	return &ProfileHandler{
		profileRepo:  profileRepo,
		analysisRepo: analysisRepo,
		indexer:      indexer,
	}
}

// HandleGetProfile handles GET /profiles/:userId.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	profile, err := h.profileRepo.FindByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	data := &models.ProfileData{
		UserID:   profile.UserID,
		Name:     profile.Name,
		Headline: profile.Headline,
		Summary:  profile.Summary,
	}

	if profile.Sections != "" {
		var sections services.SectionMap
		if err := json.Unmarshal([]byte(profile.Sections), &sections); err == nil {
			data.Sections = sections
		}
	}

	response := models.ProfileResponse{
		Success: true,
		Profile: data,
	}

	if analysis, err := h.analysisRepo.FindLatestByProfileID(profile.ID); err == nil {
		response.LatestAnalysis = analysis
	}

	return c.JSON(response)
}

// HandleDeleteProfile handles DELETE /profiles/:userId. Admin-guarded.
func (h *ProfileHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	profile, err := h.profileRepo.FindByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	if err := h.analysisRepo.DeleteByProfileID(profile.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete analyses",
		})
	}

	if err := h.profileRepo.DeleteByUserID(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete profile",
		})
	}

	if err := h.indexer.RemoveProfile(c.Context(), userID); err != nil {
		log.Printf("⚠️  Failed to remove profile %s from index: %v\n", userID, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile deleted",
	})
}

// HandleSimilarProfiles handles GET /profiles/:userId/similar.
func (h *ProfileHandler) HandleSimilarProfiles(c *fiber.Ctx) error {
	userID := c.Params("userId")
	limit := c.QueryInt("limit", 5)

	profile, err := h.profileRepo.FindByUserID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	if profile.Summary == "" {
		return c.JSON(models.SimilarProfilesResponse{
			Success:  true,
			Profiles: []services.SimilarProfile{},
		})
	}

	profiles, err := h.indexer.SimilarProfiles(c.Context(), userID, profile.Summary, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Similarity search failed",
		})
	}

	if profiles == nil {
		profiles = []services.SimilarProfile{}
	}

	return c.JSON(models.SimilarProfilesResponse{
		Success:  true,
		Profiles: profiles,
	})
}
