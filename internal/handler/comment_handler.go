package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"scentfeed/internal/domain"
	"scentfeed/internal/middleware"
	"scentfeed/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByPost returns a page of top-level comments for a post, each carrying
// a preview of its replies.
func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	postIDStr := c.Params("postId")
	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	params := getCommentListParams(c)
	viewerID := middleware.GetViewerID(c)

	result, err := h.commentService.ListByPost(c.Context(), postID, viewerID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) ListReplies(c *fiber.Ctx) error {
	commentIDStr := c.Params("commentId")
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	params := getCommentListParams(c)
	viewerID := middleware.GetViewerID(c)

	result, err := h.commentService.ListReplies(c.Context(), commentID, viewerID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.Text == "" {
		return middleware.BadRequest("Comment text is required")
	}

	comment, err := h.commentService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	commentIDStr := c.Params("commentId")
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input domain.UpdateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if input.Text == "" {
		return middleware.BadRequest("Comment text is required")
	}

	comment, err := h.commentService.Update(c.Context(), userID, commentID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	commentIDStr := c.Params("commentId")
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), userID, commentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *CommentHandler) Like(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	commentIDStr := c.Params("commentId")
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	result, err := h.commentService.Like(c.Context(), userID, commentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CommentHandler) Unlike(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	commentIDStr := c.Params("commentId")
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	result, err := h.commentService.Unlike(c.Context(), userID, commentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func getCommentListParams(c *fiber.Ctx) domain.CommentListParams {
	params := domain.DefaultCommentListParams()
	params.PaginationParams = getPaginationParams(c)

	if sortBy := c.Query("sort_by"); sortBy == string(domain.CommentSortLikes) {
		params.SortBy = domain.CommentSortLikes
	}
	if c.Query("order") == "asc" {
		params.Descending = false
	}
	// Feed views preload up to 3 replies per comment; 0 asks for all of them.
	// Negative values fall back to the default rather than the unlimited 0.
	repliesLimit := c.QueryInt("replies_limit", 3)
	if repliesLimit < 0 {
		repliesLimit = 3
	}
	params.RepliesLimit = repliesLimit

	params.Validate()
	return params
}
