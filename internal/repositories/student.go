package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

// ErrNotFound marks a missing record so services can tell "absent" from
// "failed" without string matching.
var ErrNotFound = errors.New("record not found")

type StudentFilter struct {
	Status   string
	Faculty  string
	Category string
}

type StudentRepository interface {
	Create(student *models.Student) error
	FindByID(id uuid.UUID) (*models.Student, error)
	FindAll(filter StudentFilter) ([]models.Student, error)
	FindWithStories() ([]models.Student, error)
	FindRankings(limit int) ([]models.Student, error)
	Update(student *models.Student) error
	UpdateStatus(id uuid.UUID, status models.StudentStatus) error
	UpdateScore(id uuid.UUID, score float64, reasoning string) error
	Delete(id uuid.UUID) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *models.Student) error {
	if err := r.db.Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) FindByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return &student, nil
}

func (r *studentRepository) FindAll(filter StudentFilter) ([]models.Student, error) {
	query := r.db.Model(&models.Student{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Faculty != "" {
		query = query.Where("faculty = ?", filter.Faculty)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var students []models.Student
	if err := query.Order("created_at ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) FindWithStories() ([]models.Student, error) {
	var students []models.Student
	err := r.db.
		Where("status = ?", models.StudentStatusApproved).
		Where("success_story IS NOT NULL AND success_story <> ''").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list success stories: %w", err)
	}
	return students, nil
}

func (r *studentRepository) FindRankings(limit int) ([]models.Student, error) {
	var students []models.Student
	err := r.db.
		Where("status = ?", models.StudentStatusApproved).
		Order("talent_score DESC").
		Limit(limit).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	return students, nil
}

func (r *studentRepository) Update(student *models.Student) error {
	student.UpdatedAt = time.Now()
	if err := r.db.Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

func (r *studentRepository) UpdateStatus(id uuid.UUID, status models.StudentStatus) error {
	result := r.db.Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateScore is the persistence step of the scoring pipeline. It returns
// the write result so callers decide whether to await or enqueue; nothing
// here is fire-and-forget.
func (r *studentRepository) UpdateScore(id uuid.UUID, score float64, reasoning string) error {
	result := r.db.Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"talent_score":    score,
			"score_reasoning": reasoning,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *studentRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Student{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete student: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return nil
}
