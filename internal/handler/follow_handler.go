package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scentfeed/internal/middleware"
	"scentfeed/internal/service"
)

type FollowHandler struct {
	followService service.FollowService
}

func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	followeeIDStr := c.Params("userId")
	followeeID, err := uuid.Parse(followeeIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	result, err := h.followService.Follow(c.Context(), userID, followeeID)
	if err != nil {
		if err == service.ErrSelfFollow {
			return middleware.BadRequest("Cannot follow yourself")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FollowHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	followeeIDStr := c.Params("userId")
	followeeID, err := uuid.Parse(followeeIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	result, err := h.followService.Unfollow(c.Context(), userID, followeeID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FollowHandler) ListFollowers(c *fiber.Ctx) error {
	userIDStr := c.Params("userId")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	params := getPaginationParams(c)

	result, err := h.followService.ListFollowers(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FollowHandler) ListFollowing(c *fiber.Ctx) error {
	userIDStr := c.Params("userId")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	params := getPaginationParams(c)

	result, err := h.followService.ListFollowing(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
