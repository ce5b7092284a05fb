package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type ScoreJobRepository interface {
	Create(job *models.ScoreJob) error
	FindByID(id uuid.UUID) (*models.ScoreJob, error)
	FindPendingJobs(limit int) ([]models.ScoreJob, error)
	HasActiveJob(studentID uuid.UUID) (bool, error)
	UpdateStatus(id uuid.UUID, status models.ScoreJobStatus) error
	UpdateResult(id uuid.UUID, score float64, reasoning string) error
	UpdateError(id uuid.UUID, errorMsg string) error
}

type scoreJobRepository struct {
	db *gorm.DB
}

func NewScoreJobRepository(db *gorm.DB) ScoreJobRepository {
	return &scoreJobRepository{db: db}
}

func (r *scoreJobRepository) Create(job *models.ScoreJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create score job: %w", err)
	}
	return nil
}

func (r *scoreJobRepository) FindByID(id uuid.UUID) (*models.ScoreJob, error) {
	var job models.ScoreJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("score job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find score job: %w", err)
	}
	return &job, nil
}

func (r *scoreJobRepository) FindPendingJobs(limit int) ([]models.ScoreJob, error) {
	var jobs []models.ScoreJob
	err := r.db.
		Where("status = ?", models.ScoreJobQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return jobs, nil
}

// HasActiveJob reports whether a recompute for this student is already
// queued or running, so duplicate triggers coalesce instead of racing.
func (r *scoreJobRepository) HasActiveJob(studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ScoreJob{}).
		Where("student_id = ? AND status IN ?", studentID,
			[]models.ScoreJobStatus{models.ScoreJobQueued, models.ScoreJobProcessing}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check active jobs: %w", err)
	}
	return count > 0, nil
}

func (r *scoreJobRepository) UpdateStatus(id uuid.UUID, status models.ScoreJobStatus) error {
	result := r.db.Model(&models.ScoreJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("score job %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *scoreJobRepository) UpdateResult(id uuid.UUID, score float64, reasoning string) error {
	result := r.db.Model(&models.ScoreJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.ScoreJobCompleted,
			"talent_score": score,
			"reasoning":    reasoning,
			"updated_at":   time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("score job %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *scoreJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ScoreJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.ScoreJobFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("score job %s: %w", id, ErrNotFound)
	}
	return nil
}
