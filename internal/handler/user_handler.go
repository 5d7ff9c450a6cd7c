package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scentfeed/internal/domain"
	"scentfeed/internal/middleware"
	"scentfeed/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Context(), userID, &userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetByID also accepts a username in place of the id so profile pages can be
// addressed either way.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	idStr := c.Params("userId")
	viewerID := middleware.GetViewerID(c)

	if userID, err := uuid.Parse(idStr); err == nil {
		profile, err := h.userService.GetProfile(c.Context(), userID, viewerID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(profile)
	}

	profile, err := h.userService.GetProfileByUsername(c.Context(), idStr, viewerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}
