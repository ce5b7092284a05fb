package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
)

// Invitation is an organization asking a student to join a project.
type Invitation struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	StudentID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"student_id"`
	ProjectID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"project_id"`
	Status         RequestStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// Application is a student asking to join an organization's project.
type Application struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	StudentID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"student_id"`
	ProjectID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"project_id"`
	Status         RequestStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
