package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

// ApplicationHandler serves both directions of project staffing:
// applications (student → opening) and invitations (organization → student).
type ApplicationHandler struct {
	applicationRepo repositories.ApplicationRepository
	invitationRepo  repositories.InvitationRepository
	projectRepo     repositories.ProjectRepository
	studentRepo     repositories.StudentRepository
}

func NewApplicationHandler(
	applicationRepo repositories.ApplicationRepository,
	invitationRepo repositories.InvitationRepository,
	projectRepo repositories.ProjectRepository,
	studentRepo repositories.StudentRepository,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationRepo: applicationRepo,
		invitationRepo:  invitationRepo,
		projectRepo:     projectRepo,
		studentRepo:     studentRepo,
	}
}

// HandleApply handles POST /projects/:id/applications (student applies)
func (h *ApplicationHandler) HandleApply(c *fiber.Ctx) error {
	actor := RequireRole(c, RoleStudent)
	if actor == nil {
		return nil
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}
	if project.OwnerType != models.OwnerTypeOrganization {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Applications are only accepted for organization openings",
		})
	}
	if project.Status != models.ProjectStatusOngoing {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Project is no longer open",
		})
	}

	pending, err := h.applicationRepo.HasPending(actor.ID, projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check applications",
		})
	}
	if pending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An application for this project is already pending",
		})
	}

	application := &models.Application{
		ID:             uuid.New(),
		OrganizationID: project.OwnerID,
		StudentID:      actor.ID,
		ProjectID:      projectID,
		Status:         models.RequestStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.applicationRepo.Create(application); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

// HandleListProjectApplications handles GET /projects/:id/applications
func (h *ApplicationHandler) HandleListProjectApplications(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	if !canManageOrganization(ActorFrom(c), project.OwnerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	applications, err := h.applicationRepo.FindByProject(projectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	return c.JSON(fiber.Map{"applications": applications})
}

// HandleRespondApplication handles PATCH /applications/:id (organization decides)
func (h *ApplicationHandler) HandleRespondApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	application, err := h.applicationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load application",
		})
	}

	if !canManageOrganization(ActorFrom(c), application.OrganizationID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	status, ok := parseRequestStatus(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be accepted or declined",
		})
	}

	if err := h.applicationRepo.UpdateStatus(id, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update application",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "status": string(status)})
}

// HandleInvite handles POST /projects/:id/invitations/:studentId
func (h *ApplicationHandler) HandleInvite(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	if project.OwnerType != models.OwnerTypeOrganization || !canManageOrganization(ActorFrom(c), project.OwnerID) {
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

	invitation := &models.Invitation{
		ID:             uuid.New(),
		OrganizationID: project.OwnerID,
		StudentID:      studentID,
		ProjectID:      projectID,
		Status:         models.RequestStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.invitationRepo.Create(invitation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create invitation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(invitation)
}

// HandleListStudentInvitations handles GET /students/:id/invitations
func (h *ApplicationHandler) HandleListStudentInvitations(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	if !canManageStudent(ActorFrom(c), studentID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	invitations, err := h.invitationRepo.FindByStudent(studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list invitations",
		})
	}

	return c.JSON(fiber.Map{"invitations": invitations})
}

// HandleRespondInvitation handles PATCH /invitations/:id (student decides)
func (h *ApplicationHandler) HandleRespondInvitation(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invitation ID format",
		})
	}

	invitation, err := h.invitationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invitation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load invitation",
		})
	}

	if !canManageStudent(ActorFrom(c), invitation.StudentID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	status, ok := parseRequestStatus(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be accepted or declined",
		})
	}

	if err := h.invitationRepo.UpdateStatus(id, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update invitation",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "status": string(status)})
}

func parseRequestStatus(c *fiber.Ctx) (models.RequestStatus, bool) {
	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return "", false
	}

	status := models.RequestStatus(req.Status)
	if status != models.RequestStatusAccepted && status != models.RequestStatusDeclined {
		return "", false
	}
	return status, true
}
