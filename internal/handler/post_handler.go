package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scentfeed/internal/domain"
	"scentfeed/internal/middleware"
	"scentfeed/internal/service"
)

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreatePostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.Title == "" || input.Body == "" {
		return middleware.BadRequest("Title and body are required")
	}

	post, err := h.postService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) GetByID(c *fiber.Ctx) error {
	postIDStr := c.Params("postId")
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	viewerID := middleware.GetViewerID(c)

	post, err := h.postService.GetByID(c.Context(), postID, viewerID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// List serves the feed. Supports ?q= full-text-ish search over title, body
// and fragrance fields, and ?user_id= to scope to a single author.
func (h *PostHandler) List(c *fiber.Ctx) error {
	params := domain.PostListParams{
		PaginationParams: getPaginationParams(c),
		Query:            c.Query("q"),
	}

	if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return middleware.BadRequest("Invalid user ID")
		}
		params.UserID = &userID
	}

	viewerID := middleware.GetViewerID(c)

	result, err := h.postService.List(c.Context(), viewerID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	postIDStr := c.Params("postId")
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	var input domain.UpdatePostInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	post, err := h.postService.Update(c.Context(), userID, postID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	postIDStr := c.Params("postId")
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	if err := h.postService.Delete(c.Context(), userID, postID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *PostHandler) Like(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	postIDStr := c.Params("postId")
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	result, err := h.postService.Like(c.Context(), userID, postID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	postIDStr := c.Params("postId")
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	result, err := h.postService.Unlike(c.Context(), userID, postID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 10); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
