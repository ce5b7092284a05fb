package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type CertificateRepository interface {
	Create(certificate *models.Certificate) error
	FindByID(id uuid.UUID) (*models.Certificate, error)
	FindByStudent(studentID uuid.UUID) ([]models.Certificate, error)
	Delete(id uuid.UUID) error
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Create(certificate *models.Certificate) error {
	if err := r.db.Create(certificate).Error; err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

func (r *certificateRepository) FindByID(id uuid.UUID) (*models.Certificate, error) {
	var certificate models.Certificate
	if err := r.db.Where("id = ?", id).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("certificate %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find certificate: %w", err)
	}
	return &certificate, nil
}

func (r *certificateRepository) FindByStudent(studentID uuid.UUID) ([]models.Certificate, error) {
	var certificates []models.Certificate
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&certificates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certificates, nil
}

func (r *certificateRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Certificate{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete certificate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("certificate %s: %w", id, ErrNotFound)
	}
	return nil
}
