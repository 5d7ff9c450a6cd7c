package domain

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID              uuid.UUID  `json:"id" db:"comment_id"`
	PostID          uuid.UUID  `json:"post_id" db:"post_id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id" db:"parent_comment_id"`
	Text            string     `json:"text" db:"content"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	Author *UserSummary `json:"author,omitempty"`
}

// CommentNode is a comment decorated with viewer-relative fields and one
// level of preloaded replies. RepliesCount is the total number of direct
// children, independent of how many are attached under Replies.
type CommentNode struct {
	Comment
	LikesCount    int64         `json:"likes_count"`
	RepliesCount  int64         `json:"replies_count"`
	IsLikedByMe   bool          `json:"is_liked_by_me"`
	CanEdit       bool          `json:"can_edit"`
	CanDelete     bool          `json:"can_delete"`
	Replies       []CommentNode `json:"replies"`
}

type CreateCommentInput struct {
	PostID          uuid.UUID  `json:"post_id" validate:"required"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id"`
	Text            string     `json:"text" validate:"required,min=1,max=2000"`
}

type UpdateCommentInput struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type CommentSort string

const (
	CommentSortCreatedAt CommentSort = "created_at"
	CommentSortLikes     CommentSort = "likes"
)

type CommentListParams struct {
	PaginationParams
	SortBy     CommentSort
	Descending bool
	// RepliesLimit caps how many direct replies are preloaded per comment.
	// Zero means no cap; feed views pass a small number.
	RepliesLimit int
}

func DefaultCommentListParams() CommentListParams {
	return CommentListParams{
		PaginationParams: DefaultPagination(),
		SortBy:           CommentSortCreatedAt,
		Descending:       true,
	}
}

func (p *CommentListParams) Validate() {
	p.PaginationParams.Validate()
	if p.SortBy != CommentSortLikes {
		p.SortBy = CommentSortCreatedAt
	}
	if p.RepliesLimit < 0 {
		p.RepliesLimit = 0
	}
}

// LikeResult reports the state of a like toggle. Changed is false when the
// toggle was a no-op (already liked, or unliking a comment never liked).
type LikeResult struct {
	Liked   bool `json:"liked"`
	Changed bool `json:"changed"`
}
