package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uuid.UUID) (*models.Project, error)
	FindByOwner(ownerID uuid.UUID, ownerType models.OwnerType) ([]models.Project, error)
	FindOpenings() ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return &project, nil
}

func (r *projectRepository) FindByOwner(ownerID uuid.UUID, ownerType models.OwnerType) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// FindOpenings lists organization projects students can apply to.
func (r *projectRepository) FindOpenings() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("owner_type = ? AND status = ?", models.OwnerTypeOrganization, models.ProjectStatusOngoing).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list openings: %w", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(project *models.Project) error {
	project.UpdatedAt = time.Now()
	if err := r.db.Save(project).Error; err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (r *projectRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}
