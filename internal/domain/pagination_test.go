package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	t.Run("Clamps Invalid Values", func(t *testing.T) {
		p := PaginationParams{Page: 0, PageSize: -5}
		p.Validate()
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.PageSize)
	})

	t.Run("Caps Page Size", func(t *testing.T) {
		p := PaginationParams{Page: 2, PageSize: 500}
		p.Validate()
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 50, p.PageSize)
	})
}

func TestPaginationParams_Offset(t *testing.T) {
	p := PaginationParams{Page: 3, PageSize: 10}
	assert.Equal(t, 20, p.Offset())
}

func TestNewPaginatedResponse(t *testing.T) {
	t.Run("Computes Pages And Flags", func(t *testing.T) {
		resp := NewPaginatedResponse([]int{1, 2, 3}, 2, 3, 7)
		assert.Equal(t, 3, resp.TotalPages)
		assert.True(t, resp.HasNext)
		assert.True(t, resp.HasPrev)
	})

	t.Run("Nil Data Becomes Empty Slice", func(t *testing.T) {
		resp := NewPaginatedResponse[int](nil, 1, 10, 0)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 0, resp.TotalPages)
		assert.False(t, resp.HasNext)
		assert.False(t, resp.HasPrev)
	})
}

func TestCommentListParams_Validate(t *testing.T) {
	p := CommentListParams{}
	p.Validate()
	assert.Equal(t, CommentSortCreatedAt, p.SortBy)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)

	p = CommentListParams{SortBy: "bogus", RepliesLimit: -2}
	p.Validate()
	assert.Equal(t, CommentSortCreatedAt, p.SortBy)
	assert.Equal(t, 0, p.RepliesLimit)
}
