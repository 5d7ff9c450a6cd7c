package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID             uuid.UUID  `json:"id" db:"post_id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	Title          string     `json:"title" db:"title"`
	Body           string     `json:"body" db:"body"`
	FragranceName  *string    `json:"fragrance_name,omitempty" db:"fragrance_name"`
	FragranceBrand *string    `json:"fragrance_brand,omitempty" db:"fragrance_brand"`
	ImageURL       *string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time `json:"-" db:"deleted_at"`

	Author *UserSummary `json:"author,omitempty"`
}

type PostView struct {
	Post
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLikedByMe   bool  `json:"is_liked_by_me"`
}

type CreatePostInput struct {
	Title          string  `json:"title" validate:"required,min=1,max=200"`
	Body           string  `json:"body" validate:"required,min=1,max=10000"`
	FragranceName  *string `json:"fragrance_name,omitempty"`
	FragranceBrand *string `json:"fragrance_brand,omitempty"`
	ImageURL       *string `json:"image_url,omitempty"`
}

type UpdatePostInput struct {
	Title          *string  `json:"title,omitempty"`
	Body           *string  `json:"body,omitempty"`
	FragranceName  **string `json:"fragrance_name,omitempty"`
	FragranceBrand **string `json:"fragrance_brand,omitempty"`
	ImageURL       **string `json:"image_url,omitempty"`
}

type PostListParams struct {
	PaginationParams
	// Query filters posts by substring match on title, body and fragrance
	// fields. Empty means the plain feed.
	Query  string
	UserID *uuid.UUID
}
