package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type OrganizationRepository interface {
	Create(org *models.Organization) error
	FindByID(id uuid.UUID) (*models.Organization, error)
	FindAll(status string) ([]models.Organization, error)
	Update(org *models.Organization) error
	UpdateStatus(id uuid.UUID, status models.OrganizationStatus) error
	UpdateMembers(id uuid.UUID, memberIDs models.UUIDList) error
	Delete(id uuid.UUID) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *models.Organization) error {
	if err := r.db.Create(org).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *organizationRepository) FindByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("id = ?", id).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("organization %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return &org, nil
}

func (r *organizationRepository) FindAll(status string) ([]models.Organization, error) {
	query := r.db.Model(&models.Organization{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orgs []models.Organization
	if err := query.Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

func (r *organizationRepository) Update(org *models.Organization) error {
	org.UpdatedAt = time.Now()
	if err := r.db.Save(org).Error; err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	return nil
}

func (r *organizationRepository) UpdateStatus(id uuid.UUID, status models.OrganizationStatus) error {
	result := r.db.Model(&models.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("organization %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *organizationRepository) UpdateMembers(id uuid.UUID, memberIDs models.UUIDList) error {
	result := r.db.Model(&models.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"member_ids": memberIDs,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update members: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("organization %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *organizationRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Organization{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("organization %s: %w", id, ErrNotFound)
	}
	return nil
}
