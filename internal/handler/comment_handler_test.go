package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scentfeed/internal/domain"
)

func TestGetCommentListParams(t *testing.T) {
	app := fiber.New()
	var got domain.CommentListParams
	app.Get("/comments", func(c *fiber.Ctx) error {
		got = getCommentListParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	request := func(t *testing.T, target string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	t.Run("Defaults", func(t *testing.T) {
		request(t, "/comments")

		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 10, got.PageSize)
		assert.Equal(t, domain.CommentSortCreatedAt, got.SortBy)
		assert.True(t, got.Descending)
		assert.Equal(t, 3, got.RepliesLimit)
	})

	t.Run("Negative Replies Limit Falls Back To Default", func(t *testing.T) {
		request(t, "/comments?replies_limit=-5")

		assert.Equal(t, 3, got.RepliesLimit)
	})

	t.Run("Zero Replies Limit Means Unlimited", func(t *testing.T) {
		request(t, "/comments?replies_limit=0")

		assert.Equal(t, 0, got.RepliesLimit)
	})

	t.Run("Sort And Order", func(t *testing.T) {
		request(t, "/comments?sort_by=likes&order=asc")

		assert.Equal(t, domain.CommentSortLikes, got.SortBy)
		assert.False(t, got.Descending)
	})

	t.Run("Clamps Page And Size", func(t *testing.T) {
		request(t, "/comments?page=0&page_size=999")

		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 50, got.PageSize)
	})
}
