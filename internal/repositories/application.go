package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByProject(projectID uuid.UUID) ([]models.Application, error)
	FindByStudent(studentID uuid.UUID) ([]models.Application, error)
	HasPending(studentID, projectID uuid.UUID) (bool, error)
	UpdateStatus(id uuid.UUID, status models.RequestStatus) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(application *models.Application) error {
	if err := r.db.Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &application, nil
}

func (r *applicationRepository) FindByProject(projectID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

func (r *applicationRepository) FindByStudent(studentID uuid.UUID) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// HasPending prevents a student from applying twice to the same opening.
func (r *applicationRepository) HasPending(studentID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("student_id = ? AND project_id = ? AND status = ?",
			studentID, projectID, models.RequestStatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check applications: %w", err)
	}
	return count > 0, nil
}

func (r *applicationRepository) UpdateStatus(id uuid.UUID, status models.RequestStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
