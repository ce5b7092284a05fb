package models

import (
	"time"

	"github.com/google/uuid"
)

type ScoreJobStatus string

const (
	ScoreJobQueued     ScoreJobStatus = "queued"
	ScoreJobProcessing ScoreJobStatus = "processing"
	ScoreJobCompleted  ScoreJobStatus = "completed"
	ScoreJobFailed     ScoreJobStatus = "failed"
)

// ScoreJob is a queued talent-score recomputation for one student.
type ScoreJob struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	Status       ScoreJobStatus `gorm:"not null;default:'queued'" json:"status"`
	TalentScore  *float64       `gorm:"type:decimal(5,2)" json:"talent_score,omitempty"`
	Reasoning    *string        `gorm:"type:text" json:"reasoning,omitempty"`
	ErrorMessage *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

func (ScoreJob) TableName() string {
	return "score_jobs"
}
