package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:text;uniqueIndex;not null" json:"user_id"`
	Name      string    `gorm:"type:text" json:"name"`
	Headline  string    `gorm:"type:text" json:"headline"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Sections  string    `gorm:"type:jsonb;default:'{}'" json:"sections"`
	RawText   string    `gorm:"type:text" json:"-"`
	Source    string    `gorm:"type:text" json:"source"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Source values for a Profile record.
const (
	SourceUpload = "upload"
	SourceForm   = "form"
)
