package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

// ProfileHandler serves the child collections of a student profile:
// projects, achievements and certificates. Every mutation queues a talent
// score recompute; duplicate triggers coalesce in the worker.
type ProfileHandler struct {
	studentRepo     repositories.StudentRepository
	projectRepo     repositories.ProjectRepository
	achievementRepo repositories.AchievementRepository
	certificateRepo repositories.CertificateRepository
	worker          services.Worker
}

func NewProfileHandler(
	studentRepo repositories.StudentRepository,
	projectRepo repositories.ProjectRepository,
	achievementRepo repositories.AchievementRepository,
	certificateRepo repositories.CertificateRepository,
	worker services.Worker,
) *ProfileHandler {
	return &ProfileHandler{
		studentRepo:     studentRepo,
		projectRepo:     projectRepo,
		achievementRepo: achievementRepo,
		certificateRepo: certificateRepo,
		worker:          worker,
	}
}

func (h *ProfileHandler) studentFromParams(c *fiber.Ctx) (*models.Student, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	student, err := h.studentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load student",
		})
	}

	return student, nil
}

func (h *ProfileHandler) enqueueRecompute(studentID uuid.UUID) {
	if _, err := h.worker.EnqueueStudent(studentID); err != nil {
		log.Printf("⚠️  Failed to enqueue score recompute for %s: %v\n", studentID, err)
	}
}

// HandleListProjects handles GET /students/:id/projects
func (h *ProfileHandler) HandleListProjects(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	projects, err := h.projectRepo.FindByOwner(student.ID, models.OwnerTypeStudent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list projects",
		})
	}

	return c.JSON(fiber.Map{"projects": projects})
}

// HandleCreateProject handles POST /students/:id/projects
func (h *ProfileHandler) HandleCreateProject(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	if !canManageStudent(ActorFrom(c), student.ID) {
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
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	status := models.ProjectStatus(req.Status)
	if status != models.ProjectStatusCompleted {
		status = models.ProjectStatusOngoing
	}

	project := &models.Project{
		ID:            uuid.New(),
		OwnerID:       student.ID,
		OwnerType:     models.OwnerTypeStudent,
		OwnerName:     student.FirstName + " " + student.LastName,
		Title:         req.Title,
		Description:   req.Description,
		Role:          req.Role,
		Link:          req.Link,
		MediaLink:     req.MediaLink,
		TeamMemberIDs: models.UUIDList{},
		Status:        status,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.projectRepo.Create(project); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create project",
		})
	}

	h.enqueueRecompute(student.ID)

	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleDeleteProject handles DELETE /students/:id/projects/:projectId
func (h *ProfileHandler) HandleDeleteProject(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	if !canManageStudent(ActorFrom(c), student.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	projectID, err := uuid.Parse(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID format",
		})
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil || project.OwnerID != student.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	if err := h.projectRepo.Delete(projectID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete project",
		})
	}

	h.enqueueRecompute(student.ID)

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListAchievements handles GET /students/:id/achievements
func (h *ProfileHandler) HandleListAchievements(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	achievements, err := h.achievementRepo.FindByStudent(student.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list achievements",
		})
	}

	return c.JSON(fiber.Map{"achievements": achievements})
}

// HandleCreateAchievement handles POST /students/:id/achievements
func (h *ProfileHandler) HandleCreateAchievement(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	if !canManageStudent(ActorFrom(c), student.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	var req models.CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	level, ok := parseLevel(req.Level)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid level value",
		})
	}

	achievement := &models.Achievement{
		ID:          uuid.New(),
		StudentID:   student.ID,
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
		Date:        req.Date,
		Level:       level,
		Link:        req.Link,
		CreatedAt:   time.Now(),
	}

	if err := h.achievementRepo.Create(achievement); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create achievement",
		})
	}

	h.enqueueRecompute(student.ID)

	return c.Status(fiber.StatusCreated).JSON(achievement)
}

// HandleDeleteAchievement handles DELETE /students/:id/achievements/:achievementId
func (h *ProfileHandler) HandleDeleteAchievement(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	if !canManageStudent(ActorFrom(c), student.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	achievementID, err := uuid.Parse(c.Params("achievementId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid achievement ID format",
		})
	}

	achievement, err := h.achievementRepo.FindByID(achievementID)
	if err != nil || achievement.StudentID != student.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Achievement not found",
		})
	}

	if err := h.achievementRepo.Delete(achievementID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete achievement",
		})
	}

	h.enqueueRecompute(student.ID)

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListCertificates handles GET /students/:id/certificates
func (h *ProfileHandler) HandleListCertificates(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	certificates, err := h.certificateRepo.FindByStudent(student.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list certificates",
		})
	}

	return c.JSON(fiber.Map{"certificates": certificates})
}

// HandleCreateCertificate handles POST /students/:id/certificates
func (h *ProfileHandler) HandleCreateCertificate(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	if !canManageStudent(ActorFrom(c), student.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	var req models.CreateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	level, ok := parseLevel(req.Level)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid level value",
		})
	}

	certificate := &models.Certificate{
		ID:        uuid.New(),
		StudentID: student.ID,
		Name:      req.Name,
		FileURL:   req.FileURL,
		FilePath:  req.FilePath,
		Level:     level,
		CreatedAt: time.Now(),
	}

	if err := h.certificateRepo.Create(certificate); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create certificate",
		})
	}

	h.enqueueRecompute(student.ID)

	return c.Status(fiber.StatusCreated).JSON(certificate)
}

// HandleDeleteCertificate handles DELETE /students/:id/certificates/:certificateId
func (h *ProfileHandler) HandleDeleteCertificate(c *fiber.Ctx) error {
	student, err := h.studentFromParams(c)
	if student == nil {
		return err
	}

	if !canManageStudent(ActorFrom(c), student.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	certificateID, err := uuid.Parse(c.Params("certificateId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid certificate ID format",
		})
	}

	certificate, err := h.certificateRepo.FindByID(certificateID)
	if err != nil || certificate.StudentID != student.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Certificate not found",
		})
	}

	if err := h.certificateRepo.Delete(certificateID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete certificate",
		})
	}

	h.enqueueRecompute(student.ID)

	return c.SendStatus(fiber.StatusNoContent)
}

func parseLevel(value string) (models.RecognitionLevel, bool) {
	level := models.RecognitionLevel(value)
	switch level {
	case models.LevelInternational, models.LevelRepublic, models.LevelRegional, models.LevelUniversity:
		return level, true
	}
	return "", false
}
