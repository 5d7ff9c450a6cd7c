package domain

import (
	"time"

	"github.com/google/uuid"
)

type Follow struct {
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id" db:"followee_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// FollowResult mirrors LikeResult: Changed is false when the follow/unfollow
// was already in the requested state.
type FollowResult struct {
	Following bool `json:"following"`
	Changed   bool `json:"changed"`
}
