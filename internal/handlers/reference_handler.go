package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/repositories"
)

// ReferenceHandler serves the admin-curated lookup tables.
type ReferenceHandler struct {
	referenceRepo repositories.ReferenceRepository
}

func NewReferenceHandler(referenceRepo repositories.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{referenceRepo: referenceRepo}
}

// HandleListFaculties handles GET /faculties
func (h *ReferenceHandler) HandleListFaculties(c *fiber.Ctx) error {
	faculties, err := h.referenceRepo.FindFaculties()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list faculties",
		})
	}
	return c.JSON(fiber.Map{"faculties": faculties})
}

// HandleCreateFaculty handles POST /faculties (admin)
func (h *ReferenceHandler) HandleCreateFaculty(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	name, ok := parseReferenceName(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	faculty := &models.Faculty{ID: uuid.New(), Name: name}
	if err := h.referenceRepo.CreateFaculty(faculty); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create faculty",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(faculty)
}

// HandleDeleteFaculty handles DELETE /faculties/:id (admin)
func (h *ReferenceHandler) HandleDeleteFaculty(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid faculty ID format",
		})
	}

	if err := h.referenceRepo.DeleteFaculty(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Faculty not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete faculty",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListCategories handles GET /categories
func (h *ReferenceHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.referenceRepo.FindCategories()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list categories",
		})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleCreateCategory handles POST /categories (admin)
func (h *ReferenceHandler) HandleCreateCategory(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	name, ok := parseReferenceName(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	category := &models.Category{ID: uuid.New(), Name: name}
	if err := h.referenceRepo.CreateCategory(category); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDeleteCategory handles DELETE /categories/:id (admin)
func (h *ReferenceHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if actor := RequireRole(c, RoleAdmin); actor == nil {
		return nil
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category ID format",
		})
	}

	if err := h.referenceRepo.DeleteCategory(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseReferenceName(c *fiber.Ctx) (string, bool) {
	var req models.CreateReferenceRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return "", false
	}
	return req.Name, true
}
