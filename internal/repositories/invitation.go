package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type InvitationRepository interface {
	Create(invitation *models.Invitation) error
	FindByID(id uuid.UUID) (*models.Invitation, error)
	FindByStudent(studentID uuid.UUID) ([]models.Invitation, error)
	FindByOrganization(orgID uuid.UUID) ([]models.Invitation, error)
	UpdateStatus(id uuid.UUID, status models.RequestStatus) error
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(invitation *models.Invitation) error {
	if err := r.db.Create(invitation).Error; err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *invitationRepository) FindByID(id uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Where("id = ?", id).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invitation %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByStudent(studentID uuid.UUID) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

func (r *invitationRepository) FindByOrganization(orgID uuid.UUID) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

func (r *invitationRepository) UpdateStatus(id uuid.UUID, status models.RequestStatus) error {
	result := r.db.Model(&models.Invitation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("invitation %s: %w", id, ErrNotFound)
	}
	return nil
}
