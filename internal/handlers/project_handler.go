package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

// ProjectHandler serves organization project openings and the semantic
// student matching on top of them.
type ProjectHandler struct {
	projectRepo repositories.ProjectRepository
	orgRepo     repositories.OrganizationRepository
	matcher     services.MatcherService
}

func NewProjectHandler(
	projectRepo repositories.ProjectRepository,
	orgRepo repositories.OrganizationRepository,
	matcher services.MatcherService,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		orgRepo:     orgRepo,
		matcher:     matcher,
	}
}

// HandleListOpenings handles GET /projects
func (h *ProjectHandler) HandleListOpenings(c *fiber.Ctx) error {
	projects, err := h.projectRepo.FindOpenings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list openings",
		})
	}

	return c.JSON(fiber.Map{"projects": projects})
}

// HandleGet handles GET /projects/:id
func (h *ProjectHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load project",
		})
	}

	return c.JSON(project)
}

// HandleCreate handles POST /organizations/:id/projects
func (h *ProjectHandler) HandleCreate(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid organization ID format",
		})
	}

	if !canManageOrganization(ActorFrom(c), orgID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	org, err := h.orgRepo.FindByID(orgID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Organization not found",
		})
	}

	var req models.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	project := &models.Project{
		ID:            uuid.New(),
		OwnerID:       org.ID,
		OwnerType:     models.OwnerTypeOrganization,
		OwnerName:     org.Name,
		Title:         req.Title,
		Description:   req.Description,
		Role:          req.Role,
		Link:          req.Link,
		MediaLink:     req.MediaLink,
		TeamMemberIDs: models.UUIDList{},
		Status:        models.ProjectStatusOngoing,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.projectRepo.Create(project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdate handles PUT /projects/:id
func (h *ProjectHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load project",
		})
	}

	if project.OwnerType != models.OwnerTypeOrganization || !canManageOrganization(ActorFrom(c), project.OwnerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	var req models.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Role != "" {
		project.Role = req.Role
	}
	if req.Link != nil {
		project.Link = req.Link
	}
	if req.MediaLink != nil {
		project.MediaLink = req.MediaLink
	}
	if status := models.ProjectStatus(req.Status); status == models.ProjectStatusOngoing || status == models.ProjectStatusCompleted {
		project.Status = status
	}

	if err := h.projectRepo.Update(project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update project",
		})
	}

	return c.JSON(project)
}

// HandleDelete handles DELETE /projects/:id
func (h *ProjectHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load project",
		})
	}

	if project.OwnerType != models.OwnerTypeOrganization || !canManageOrganization(ActorFrom(c), project.OwnerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	if err := h.projectRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete project",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleMatches handles POST /projects/:id/matches. Returns the students whose
// indexed profiles are closest to the opening text.
func (h *ProjectHandler) HandleMatches(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load project",
		})
	}

	if project.OwnerType != models.OwnerTypeOrganization || !canManageOrganization(ActorFrom(c), project.OwnerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	// Body is optional; defaults apply when absent
	var req models.MatchRequest
	_ = c.BodyParser(&req)

	queryText := services.NewPromptBuilder().BuildMatchQuery(project.Title, project.Description, project.Role)

	faculty := ""
	if req.Faculty != nil {
		faculty = *req.Faculty
	}

	matches, err := h.matcher.MatchStudents(c.Context(), queryText, faculty, req.Limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to match students",
		})
	}

	return c.JSON(fiber.Map{"matches": matches})
}
