package models

import "prolens/profile-analyzer/internal/services"

type ProfileData struct {
	UserID   string              `json:"userId"`
	Name     string              `json:"name"`
	Headline string              `json:"headline"`
	Summary  string              `json:"summary"`
	Sections services.SectionMap `json:"sections,omitempty"`
}

type AnalyzeResponse struct {
	Success     bool                     `json:"success"`
	Message     string                   `json:"message"`
	ProfileData *ProfileData             `json:"profileData,omitempty"`
	AIAnalysis  *services.AnalysisReport `json:"aiAnalysis"`
	RawAnalysis string                   `json:"rawAnalysis,omitempty"`
	Provider    string                   `json:"provider,omitempty"`
}

type ChatModifyRequest struct {
	UserRequest      string `json:"userRequest" validate:"required"`
	OriginalAnalysis string `json:"originalAnalysis" validate:"required"`
}

type ChatModifyResponse struct {
	Success         bool           `json:"success"`
	ChatbotResponse string         `json:"chatbotResponse"`
	UpdatedReport   map[string]any `json:"updatedReport"`
}

type ProfileResponse struct {
	Success        bool         `json:"success"`
	Profile        *ProfileData `json:"profile"`
	LatestAnalysis *Analysis    `json:"latestAnalysis,omitempty"`
}

type SimilarProfilesResponse struct {
	Success  bool                      `json:"success"`
	Profiles []services.SimilarProfile `json:"profiles"`
}

type AdminSessionRequest struct {
	AdminKey string `json:"adminKey" validate:"required"`
	AdminID  string `json:"adminId"`
}

type AdminSessionResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
