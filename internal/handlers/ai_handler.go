package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/repositories"
	"ndu/talent-platform/internal/services"
)

type AIHandler struct {
	storyService services.StoryService
	recommender  services.RecommenderService
}

func NewAIHandler(
	storyService services.StoryService,
	recommender services.RecommenderService,
) *AIHandler {
	return &AIHandler{
		storyService: storyService,
		recommender:  recommender,
	}
}

// HandleTopStories handles GET /stories/top
func (h *AIHandler) HandleTopStories(c *fiber.Ctx) error {
	selection, err := h.storyService.SelectTopStories(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to select top stories",
		})
	}

	return c.JSON(selection)
}

// HandleRecommendations handles GET /students/:id/recommendations
func (h *AIHandler) HandleRecommendations(c *fiber.Ctx) error {
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

	recommendations, err := h.recommender.Recommend(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Student not found",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to generate recommendations",
		})
	}

	return c.JSON(fiber.Map{"recommendations": recommendations})
}
