package models

import (
	"time"

	"github.com/google/uuid"
)

type Faculty struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (Faculty) TableName() string {
	return "faculties"
}

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

type News struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Slug          string    `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Title         string    `gorm:"type:text;not null" json:"title"`
	Content       string    `gorm:"type:text" json:"content"`
	CoverImageURL *string   `gorm:"type:text" json:"cover_image_url,omitempty"`
	AuthorID      uuid.UUID `gorm:"type:uuid" json:"author_id"`
	AuthorName    string    `gorm:"type:text" json:"author_name"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (News) TableName() string {
	return "news"
}
