package models

import (
	"time"

	"github.com/google/uuid"
)

type Analysis struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID       uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	CareerGoal      string    `gorm:"type:text" json:"career_goal"`
	OverallFeedback string    `gorm:"type:text" json:"overall_feedback"`
	WritingStyle    string    `gorm:"type:text" json:"writing_style"`
	SkillAnalysis   string    `gorm:"type:text" json:"skill_analysis"`
	SectionFeedback string    `gorm:"type:jsonb;default:'[]'" json:"section_feedback"`
	SpellingGrammar string    `gorm:"type:jsonb;default:'[]'" json:"spelling_grammar"`
	OverallScore    int       `gorm:"not null;default:0" json:"overall_score"`
	Provider        string    `gorm:"type:text" json:"provider"`
	RawResponse     string    `gorm:"type:text" json:"-"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Profile Profile `gorm:"foreignKey:ProfileID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
