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

type NewsHandler struct {
	newsRepo repositories.NewsRepository
}

func NewNewsHandler(newsRepo repositories.NewsRepository) *NewsHandler {
	return &NewsHandler{newsRepo: newsRepo}
}

// HandleList handles GET /news
func (h *NewsHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	news, err := h.newsRepo.FindAll(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list news",
		})
	}

	return c.JSON(fiber.Map{"news": news})
}

// HandleGetBySlug handles GET /news/:slug
func (h *NewsHandler) HandleGetBySlug(c *fiber.Ctx) error {
	item, err := h.newsRepo.FindBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "News not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load news",
		})
	}

	return c.JSON(item)
}

// HandleCreate handles POST /news (admin)
func (h *NewsHandler) HandleCreate(c *fiber.Ctx) error {
	actor := RequireRole(c, RoleAdmin)
	if actor == nil {
		return nil
	}

	var req models.CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	slug := services.Slugify(req.Title)
	// Slug collisions get a short random suffix instead of failing
	if _, err := h.newsRepo.FindBySlug(slug); err == nil {
		slug = slug + "-" + uuid.New().String()[:8]
	}

	item := &models.News{
		ID:            uuid.New(),
		Slug:          slug,
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		AuthorID:      actor.ID,
		AuthorName:    "Admin",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.newsRepo.Create(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create news",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdate handles PATCH /news/:id (admin)
func (h *NewsHandler) HandleUpdate(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid news ID format",
		})
	}

	item, err := h.newsRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "News not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load news",
		})
	}

	var req models.CreateNewsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Slug stays stable across edits so published links keep working
	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Content != "" {
		item.Content = req.Content
	}
	if req.CoverImageURL != nil {
		item.CoverImageURL = req.CoverImageURL
	}

	if err := h.newsRepo.Update(item); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update news",
		})
	}

	return c.JSON(item)
}

// HandleDelete handles DELETE /news/:id (admin)
func (h *NewsHandler) HandleDelete(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid news ID format",
		})
	}

	if err := h.newsRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "News not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete news",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
