package models

import (
	"time"

	"github.com/google/uuid"
)

type OwnerType string

const (
	OwnerTypeStudent      OwnerType = "student"
	OwnerTypeOrganization OwnerType = "organization"
)

type ProjectStatus string

const (
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	OwnerType     OwnerType     `gorm:"type:text;not null" json:"owner_type"`
	OwnerName     string        `gorm:"type:text" json:"owner_name"`
	Title         string        `gorm:"type:text;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	Role          string        `gorm:"type:text" json:"role"`
	Link          *string       `gorm:"type:text" json:"link,omitempty"`
	MediaLink     *string       `gorm:"type:text" json:"media_link,omitempty"`
	TeamMemberIDs UUIDList      `gorm:"type:jsonb;default:'[]'" json:"team_member_ids"`
	Status        ProjectStatus `gorm:"type:text;not null;default:'ongoing'" json:"status"`
	CreatedAt     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
