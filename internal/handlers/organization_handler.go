package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

type OrganizationHandler struct {
	orgRepo     repositories.OrganizationRepository
	studentRepo repositories.StudentRepository
}

func NewOrganizationHandler(
	orgRepo repositories.OrganizationRepository,
	studentRepo repositories.StudentRepository,
) *OrganizationHandler {
	return &OrganizationHandler{
		orgRepo:     orgRepo,
		studentRepo: studentRepo,
	}
}

func canManageOrganization(actor *Actor, orgID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.Role == RoleAdmin || (actor.Role == RoleOrganization && actor.ID == orgID)
}

// HandleList handles GET /organizations
func (h *OrganizationHandler) HandleList(c *fiber.Ctx) error {
	orgs, err := h.orgRepo.FindAll(c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list organizations",
		})
	}

	return c.JSON(fiber.Map{"organizations": orgs})
}

// HandleGet handles GET /organizations/:id
func (h *OrganizationHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	org, err := h.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Organization not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load organization",
		})
	}

	return c.JSON(org)
}

// HandleCreate handles POST /organizations
func (h *OrganizationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Email == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and name are required",
		})
	}

	org := &models.Organization{
		ID:          uuid.New(),
		Email:       req.Email,
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Faculty:     req.Faculty,
		MemberIDs:   models.UUIDList{},
		Status:      models.OrganizationStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.orgRepo.Create(org); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create organization",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

// HandleUpdate handles PUT /organizations/:id
func (h *OrganizationHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	if !canManageOrganization(ActorFrom(c), id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	org, err := h.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Organization not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load organization",
		})
	}

	var req models.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name != "" {
		org.Name = req.Name
	}
	if req.Description != "" {
		org.Description = req.Description
	}
	if req.LogoURL != nil {
		org.LogoURL = req.LogoURL
	}
	if req.Faculty != nil {
		org.Faculty = req.Faculty
	}

	if err := h.orgRepo.Update(org); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update organization",
		})
	}

	return c.JSON(org)
}

// HandleUpdateStatus handles PATCH /organizations/:id/status (admin only)
func (h *OrganizationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status := models.OrganizationStatus(req.Status)
	switch status {
	case models.OrganizationStatusPending, models.OrganizationStatusApproved, models.OrganizationStatusArchived:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
		})
	}

	if err := h.orgRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Organization not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "status": string(status)})
}

// HandleDelete handles DELETE /organizations/:id (admin only)
func (h *OrganizationHandler) HandleDelete(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	if err := h.orgRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Organization not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete organization",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddMember handles POST /organizations/:id/members/:studentId
func (h *OrganizationHandler) HandleAddMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	if !canManageOrganization(ActorFrom(c), id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	if _, err := h.studentRepo.FindByID(studentID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	org, err := h.orgRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Organization not found",
		})
	}

	if org.MemberIDs.Contains(studentID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Student is already a member",
		})
	}

	members := append(org.MemberIDs, studentID)
	if err := h.orgRepo.UpdateMembers(id, members); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add member",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "member_ids": members})
}

// HandleRemoveMember handles DELETE /organizations/:id/members/:studentId
func (h *OrganizationHandler) HandleRemoveMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	if !canManageOrganization(ActorFrom(c), id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	org, err := h.orgRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Organization not found",
		})
	}

	members := models.UUIDList{}
	for _, member := range org.MemberIDs {
		if member != studentID {
			members = append(members, member)
		}
	}

	if err := h.orgRepo.UpdateMembers(id, members); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove member",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "member_ids": members})
}
