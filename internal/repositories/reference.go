package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

// Faculties and categories are admin-curated lookup tables with identical
// shapes, so they share one repository.

type ReferenceRepository interface {
	CreateFaculty(faculty *models.Faculty) error
	FindFaculties() ([]models.Faculty, error)
	DeleteFaculty(id uuid.UUID) error

	CreateCategory(category *models.Category) error
	FindCategories() ([]models.Category, error)
	DeleteCategory(id uuid.UUID) error
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) CreateFaculty(faculty *models.Faculty) error {
	if err := r.db.Create(faculty).Error; err != nil {
		return fmt.Errorf("failed to create faculty: %w", err)
	}
	return nil
}

func (r *referenceRepository) FindFaculties() ([]models.Faculty, error) {
	var faculties []models.Faculty
	if err := r.db.Order("name ASC").Find(&faculties).Error; err != nil {
		return nil, fmt.Errorf("failed to list faculties: %w", err)
	}
	return faculties, nil
}

func (r *referenceRepository) DeleteFaculty(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Faculty{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete faculty: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("faculty %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *referenceRepository) CreateCategory(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *referenceRepository) FindCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *referenceRepository) DeleteCategory(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}
