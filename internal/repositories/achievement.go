package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type AchievementRepository interface {
	Create(achievement *models.Achievement) error
	FindByID(id uuid.UUID) (*models.Achievement, error)
	FindByStudent(studentID uuid.UUID) ([]models.Achievement, error)
	Delete(id uuid.UUID) error
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(achievement *models.Achievement) error {
	if err := r.db.Create(achievement).Error; err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}
	return nil
}

func (r *achievementRepository) FindByID(id uuid.UUID) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.db.Where("id = ?", id).First(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("achievement %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find achievement: %w", err)
	}
	return &achievement, nil
}

func (r *achievementRepository) FindByStudent(studentID uuid.UUID) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

func (r *achievementRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Achievement{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete achievement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("achievement %s: %w", id, ErrNotFound)
	}
	return nil
}
