package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"notification_id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	ActorID   uuid.UUID        `json:"actor_id" db:"actor_id"`
	Type      NotificationType `json:"type" db:"type"`
	PostID    *uuid.UUID       `json:"post_id,omitempty" db:"post_id"`
	CommentID *uuid.UUID       `json:"comment_id,omitempty" db:"comment_id"`
	Content   string           `json:"content" db:"content"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifComment NotificationType = "comment"
	NotifLike    NotificationType = "like"
	NotifFollow  NotificationType = "follow"
)
