package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scentfeed/internal/middleware"
	"scentfeed/internal/service"
)

const maxUploadSize = 10 * 1024 * 1024

type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	if file.Size > maxUploadSize {
		return middleware.BadRequest("File size must be less than 10MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	media, err := h.mediaService.Upload(c.Context(), userID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(media)
}

func (h *MediaHandler) GetByID(c *fiber.Ctx) error {
	mediaIDStr := c.Params("mediaId")
	mediaID, err := uuid.Parse(mediaIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid media ID")
	}

	media, err := h.mediaService.GetByID(c.Context(), mediaID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(media)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	mediaIDStr := c.Params("mediaId")
	mediaID, err := uuid.Parse(mediaIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid media ID")
	}

	if err := h.mediaService.Delete(c.Context(), userID, mediaID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
