package models

import (
	"time"

	"github.com/google/uuid"
)

type AdminSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Token     string    `gorm:"type:text;uniqueIndex;not null" json:"token"`
	AdminID   string    `gorm:"type:text;not null" json:"admin_id"`
	ExpiresAt time.Time `gorm:"type:timestamp;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

func (s *AdminSession) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
