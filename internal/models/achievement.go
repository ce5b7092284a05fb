package models

import (
	"time"

	"github.com/google/uuid"
)

type RecognitionLevel string

const (
	LevelInternational RecognitionLevel = "international"
	LevelRepublic      RecognitionLevel = "republic"
	LevelRegional      RecognitionLevel = "regional"
	LevelUniversity    RecognitionLevel = "university"
)

type Achievement struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	Name        string           `gorm:"type:text;not null" json:"name"`
	Description *string          `gorm:"type:text" json:"description,omitempty"`
	Position    string           `gorm:"type:text" json:"position"`
	Date        string           `gorm:"type:text" json:"date"`
	Level       RecognitionLevel `gorm:"type:text;not null" json:"level"`
	Link        *string          `gorm:"type:text" json:"link,omitempty"`
	CreatedAt   time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

type Certificate struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	Name      string           `gorm:"type:text;not null" json:"name"`
	FileURL   string           `gorm:"type:text" json:"file_url"`
	FilePath  *string          `gorm:"type:text" json:"-"`
	Level     RecognitionLevel `gorm:"type:text;not null" json:"level"`
	CreatedAt time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Certificate) TableName() string {
	return "certificates"
}
