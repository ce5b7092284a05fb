package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ndu/talent-platform/internal/models"
	"ndu/talent-platform/internal/services"
)

// UploadHandler stores profile images and certificate documents on disk
// and hands back the public URL the frontend embeds in profiles.
type UploadHandler struct {
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(storageService services.StorageService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload/:type where :type is the upload
// bucket (sekiller for images, senedler for documents).
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	uploadType := c.Params("type")
	if uploadType != services.UploadTypeImages && uploadType != services.UploadTypeDocuments {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unknown upload type: %s", uploadType),
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Send the file in the 'file' form field.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, _, err := h.storageService.SaveFile(file, uploadType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Filename: filename,
		URL:      fmt.Sprintf("/uploads/%s/%s", uploadType, filename),
	})
}
