package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

type StudentHandler struct {
	studentRepo repositories.StudentRepository
	aggregator  services.AggregatorService
	matcher     services.MatcherService
}

func NewStudentHandler(
	studentRepo repositories.StudentRepository,
	aggregator services.AggregatorService,
	matcher services.MatcherService,
) *StudentHandler {
	return &StudentHandler{
		studentRepo: studentRepo,
		aggregator:  aggregator,
		matcher:     matcher,
	}
}

// HandleList handles GET /students
func (h *StudentHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.StudentFilter{
		Status:   c.Query("status"),
		Faculty:  c.Query("faculty"),
		Category: c.Query("category"),
	}

	students, err := h.studentRepo.FindAll(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list students",
		})
	}

	return c.JSON(fiber.Map{"students": students})
}

// HandleGet handles GET /students/:id
func (h *StudentHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	student, err := h.studentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load student",
		})
	}

	return c.JSON(student)
}

// HandleGetSnapshot handles GET /students/:id/snapshot
func (h *StudentHandler) HandleGetSnapshot(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	snapshot, err := h.aggregator.Aggregate(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to aggregate profile",
		})
	}
	if snapshot == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	return c.JSON(snapshot)
}

// HandleCreate handles POST /students
func (h *StudentHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Faculty == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email, first_name, last_name and faculty are required",
		})
	}

	skills := req.Skills
	if skills == nil {
		skills = models.SkillList{}
	}

	student := &models.Student{
		ID:            uuid.New(),
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Faculty:       req.Faculty,
		Major:         req.Major,
		CourseYear:    req.CourseYear,
		EducationForm: req.EducationForm,
		GPA:           req.GPA,
		Skills:        skills,
		Category:      req.Category,
		TalentScore:   0,
		Status:        models.StudentStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.studentRepo.Create(student); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create student",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

// HandleUpdate handles PATCH /students/:id
func (h *StudentHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	if !canManageStudent(ActorFrom(c), id) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}

	student, err := h.studentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load student",
		})
	}

	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	applyStudentUpdate(student, &req)

	if err := h.studentRepo.Update(student); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update student",
		})
	}

	// Refresh the semantic index in the background; a stale vector is
	// acceptable, a blocked edit form is not.
	go func(studentID uuid.UUID) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.matcher.IndexStudent(ctx, studentID); err != nil {
			log.Printf("⚠️  Failed to reindex student %s: %v\n", studentID, err)
		}
	}(student.ID)

	return c.JSON(student)
}

// HandleUpdateStatus handles PATCH /students/:id/status (admin only)
func (h *StudentHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status := models.StudentStatus(req.Status)
	switch status {
	case models.StudentStatusPending, models.StudentStatusApproved, models.StudentStatusArchived:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status value",
		})
	}

	if err := h.studentRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "status": string(status)})
}

// HandleDelete handles DELETE /students/:id (admin only)
func (h *StudentHandler) HandleDelete(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	if err := h.studentRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete student",
		})
	}

	go func(studentID uuid.UUID) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.matcher.RemoveStudent(ctx, studentID); err != nil {
			log.Printf("⚠️  Failed to remove student %s from index: %v\n", studentID, err)
		}
	}(id)

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReindex handles POST /students/:id/reindex (admin only). It runs
// synchronously so operators see indexing failures in the response.
func (h *StudentHandler) HandleReindex(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID format",
		})
	}

	if _, err := h.studentRepo.FindByID(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load student",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()
	if err := h.matcher.IndexStudent(ctx, id); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to reindex student",
		})
	}

	return c.JSON(fiber.Map{"id": id.String(), "indexed": true})
}

// HandleRankings handles GET /rankings
func (h *StudentHandler) HandleRankings(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	students, err := h.studentRepo.FindRankings(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load rankings",
		})
	}

	rankings := make([]models.RankingEntry, 0, len(students))
	for _, student := range students {
		rankings = append(rankings, models.RankingEntry{
			StudentID:   student.ID.String(),
			FirstName:   student.FirstName,
			LastName:    student.LastName,
			Faculty:     student.Faculty,
			TalentScore: student.TalentScore,
		})
	}

	return c.JSON(fiber.Map{"rankings": rankings})
}

func applyStudentUpdate(student *models.Student, req *models.UpdateStudentRequest) {
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Faculty != nil {
		student.Faculty = *req.Faculty
	}
	if req.Major != nil {
		student.Major = *req.Major
	}
	if req.CourseYear != nil {
		student.CourseYear = *req.CourseYear
	}
	if req.EducationForm != nil {
		student.EducationForm = *req.EducationForm
	}
	if req.GPA != nil {
		student.GPA = req.GPA
	}
	if req.Skills != nil {
		student.Skills = *req.Skills
	}
	if req.Category != nil {
		student.Category = *req.Category
	}
	if req.SuccessStory != nil {
		student.SuccessStory = req.SuccessStory
	}
	if req.LinkedInURL != nil {
		student.LinkedInURL = req.LinkedInURL
	}
	if req.GithubURL != nil {
		student.GithubURL = req.GithubURL
	}
	if req.BehanceURL != nil {
		student.BehanceURL = req.BehanceURL
	}
	if req.InstagramURL != nil {
		student.InstagramURL = req.InstagramURL
	}
	if req.PortfolioURL != nil {
		student.PortfolioURL = req.PortfolioURL
	}
	if req.GoogleScholarURL != nil {
		student.GoogleScholarURL = req.GoogleScholarURL
	}
	if req.YoutubeURL != nil {
		student.YoutubeURL = req.YoutubeURL
	}
	if req.ProfilePicture != nil {
		student.ProfilePicture = req.ProfilePicture
	}
}
