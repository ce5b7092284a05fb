package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

type ScoreHandler struct {
	scorer  services.ScorerService
	worker  services.Worker
	jobRepo repositories.ScoreJobRepository
}

func NewScoreHandler(
	scorer services.ScorerService,
	worker services.Worker,
	jobRepo repositories.ScoreJobRepository,
) *ScoreHandler {
	return &ScoreHandler{
		scorer:  scorer,
		worker:  worker,
		jobRepo: jobRepo,
	}
}

// HandleRecompute handles POST /students/:id/score, a synchronous recompute.
// Concurrent calls for the same student coalesce onto one model call.
func (h *ScoreHandler) HandleRecompute(c *fiber.Ctx) error {
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

	result, err := h.scorer.RecomputeScore(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to compute talent score",
		})
	}

	return c.JSON(models.ScoreResponse{
		StudentID:   id.String(),
		TalentScore: result.TalentScore,
		Reasoning:   result.Reasoning,
	})
}

// HandleEnqueue handles POST /students/:id/score/jobs, queuing a recompute.
func (h *ScoreHandler) HandleEnqueue(c *fiber.Ctx) error {
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

	job, err := h.worker.EnqueueStudent(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to enqueue score job",
		})
	}

	if job == nil {
		// A job for this student is already queued or running
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "A score recompute is already in progress for this student",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ScoreJobResponse{
		ID:        job.ID.String(),
		StudentID: job.StudentID.String(),
		Status:    string(job.Status),
	})
}

// HandleGetJob handles GET /score-jobs/:id
func (h *ScoreHandler) HandleGetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Score job not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load score job",
		})
	}

	return c.JSON(models.ScoreJobResultResponse{
		ID:           job.ID.String(),
		StudentID:    job.StudentID.String(),
		Status:       string(job.Status),
		TalentScore:  job.TalentScore,
		Reasoning:    job.Reasoning,
		ErrorMessage: job.ErrorMessage,
	})
}
