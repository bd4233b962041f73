package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"prolens/profile-analyzer/internal/models"
	"prolens/profile-analyzer/internal/repositories"
	"prolens/profile-analyzer/internal/services"
)

type AnalyzeHandler struct {
	profileRepo  repositories.ProfileRepository
	analysisRepo repositories.AnalysisRepository
	storage      services.StorageService
	extractor    services.TextExtractor
	segmenter    services.SectionSegmenter
	requester    services.AnalysisRequester
	indexer      services.ProfileIndexer
	maxFileSize  int64
}

func NewAnalyzeHandler(
	profileRepo repositories.ProfileRepository,
	analysisRepo repositories.AnalysisRepository,
	storage services.StorageService,
	extractor services.TextExtractor,
	segmenter services.SectionSegmenter,
	requester services.AnalysisRequester,
	indexer services.ProfileIndexer,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		profileRepo:  profileRepo,
		analysisRepo: analysisRepo,
		storage:      storage,
		extractor:    extractor,
		segmenter:    segmenter,
		requester:    requester,
		indexer:      indexer,
		maxFileSize:  maxFileSize,
	}
}

// HandleAnalyzeProfile handles POST /profiles/analyze-profile. The request
// carries either an uploaded profile export or structured form fields,
// never both shapes at once.
func (h *AnalyzeHandler) HandleAnalyzeProfile(c *fiber.Ctx) error {
	userID := c.FormValue("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "userId is required",
		})
	}

	payload, err := h.buildPayload(c, userID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	log.Printf("🤖 Requesting profile analysis for user %s...\n", userID)

	result, err := h.requester.RequestAnalysis(c.Context(), payload)
	if err != nil {
		return h.errorResponse(c, err)
	}

	report := services.ParseReport(result.Text)

	profile, err := h.saveProfile(userID, payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("failed to save profile: %v", err),
		})
	}

	if err := h.saveAnalysis(profile, report, result); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("failed to save analysis: %v", err),
		})
	}

	// Best-effort similarity indexing; never fails the request.
	if profile.Summary != "" {
		if err := h.indexer.IndexProfile(c.Context(), userID, profile.Summary); err != nil {
			log.Printf("⚠️  Failed to index profile %s: %v\n", userID, err)
		}
	}

	profileData := buildProfileData(userID, payload)

	// A response we could not slice into a single section is served as a
	// distinguishable state, not an empty report.
	if len(report.Sections) == 0 {
		return c.JSON(models.AnalyzeResponse{
			Success:     true,
			Message:     "unable to load analysis",
			ProfileData: profileData,
			AIAnalysis:  nil,
			RawAnalysis: result.Text,
			Provider:    string(result.Provider),
		})
	}

	return c.JSON(models.AnalyzeResponse{
		Success:     true,
		Message:     "Profile analyzed successfully",
		ProfileData: profileData,
		AIAnalysis:  report,
		Provider:    string(result.Provider),
	})
}

func (h *AnalyzeHandler) buildPayload(c *fiber.Ctx, userID string) (*services.ProfilePayload, error) {
	file, err := c.FormFile("file")
	if err == nil && file != nil {
		if file.Size > h.maxFileSize {
			return nil, &requestError{
				status:  fiber.StatusBadRequest,
				message: fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
			}
		}

		upload, err := h.storage.SaveUpload(file, userID)
		if err != nil {
			return nil, err
		}

		rawText, extractErr := h.extractor.ExtractText(upload.FilePath, upload.Extension)

		// Uploads only exist to be read once. Remove the file whether or
		// not extraction succeeded.
		if err := h.storage.DeleteFile(upload.FilePath); err != nil {
			log.Printf("⚠️ Failed to remove processed upload %s: %v", upload.FilePath, err)
		}

		if extractErr != nil {
			return nil, extractErr
		}

		return &services.ProfilePayload{
			Segments: h.segmenter.Segment(rawText),
			RawText:  rawText,
		}, nil
	}

	form := &services.ProfileForm{
		Name:       c.FormValue("name"),
		Headline:   c.FormValue("headline"),
		About:      c.FormValue("about"),
		Experience: c.FormValue("experience"),
		Education:  c.FormValue("education"),
		Skills:     c.FormValue("skills"),
	}

	if form.Empty() {
		return nil, &requestError{
			status:  fiber.StatusBadRequest,
			message: "either a file or profile fields are required",
		}
	}

	return &services.ProfilePayload{Form: form}, nil
}

func (h *AnalyzeHandler) saveProfile(userID string, payload *services.ProfilePayload) (*models.Profile, error) {
	profile := &models.Profile{
		UserID: userID,
	}

	if payload.Form != nil {
		profile.Name = payload.Form.Name
		profile.Headline = payload.Form.Headline
		profile.Summary = payload.Form.About
		profile.Source = models.SourceForm

		sections := services.SectionMap{
			"about":      optional(payload.Form.About),
			"experience": optional(payload.Form.Experience),
			"education":  optional(payload.Form.Education),
			"skills":     optional(payload.Form.Skills),
		}
		if data, err := json.Marshal(sections); err == nil {
			profile.Sections = string(data)
		}
	} else {
		profile.Name = payload.Segments.Name
		profile.Headline = payload.Segments.Headline
		profile.Summary = payload.Segments.Summary
		profile.RawText = payload.RawText
		profile.Source = models.SourceUpload

		if data, err := json.Marshal(payload.Segments.Sections); err == nil {
			profile.Sections = string(data)
		}
	}

	existing, err := h.profileRepo.FindByUserID(userID)
	if err != nil {
		profile.ID = uuid.New()
		profile.CreatedAt = time.Now()
		profile.UpdatedAt = time.Now()
		if err := h.profileRepo.Create(profile); err != nil {
			return nil, err
		}
		return profile, nil
	}

	profile.ID = existing.ID
	if err := h.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (h *AnalyzeHandler) saveAnalysis(profile *models.Profile, report *services.AnalysisReport, result *services.AnalysisResult) error {
	sectionData, _ := json.Marshal(report.Sections)
	spellingData, _ := json.Marshal(report.SpellingGrammar)

	analysis := &models.Analysis{
		ID:              uuid.New(),
		ProfileID:       profile.ID,
		CareerGoal:      report.CareerGoal,
		OverallFeedback: report.OverallFeedback,
		WritingStyle:    report.WritingStyle,
		SkillAnalysis:   report.SkillAnalysis,
		SectionFeedback: string(sectionData),
		SpellingGrammar: string(spellingData),
		OverallScore:    report.OverallScore,
		Provider:        string(result.Provider),
		RawResponse:     result.Text,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	return h.analysisRepo.Create(analysis)
}

func (h *AnalyzeHandler) errorResponse(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(reqErr.status).JSON(fiber.Map{
			"success": false,
			"message": reqErr.message,
		})
	}

	var formatErr *services.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": formatErr.Error(),
		})
	}

	var extractErr *services.ExtractionError
	if errors.As(err, &extractErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": extractErr.Error(),
		})
	}

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

func buildProfileData(userID string, payload *services.ProfilePayload) *models.ProfileData {
	if payload.Form != nil {
		return &models.ProfileData{
			UserID:   userID,
			Name:     payload.Form.Name,
			Headline: payload.Form.Headline,
			Summary:  payload.Form.About,
		}
	}

	return &models.ProfileData{
		UserID:   userID,
		Name:     payload.Segments.Name,
		Headline: payload.Segments.Headline,
		Summary:  payload.Segments.Summary,
		Sections: payload.Segments.Sections,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// requestError carries an HTTP status for validation failures raised
// inside the pipeline helpers.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}
