package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Post         PostRepository
	Comment      CommentRepository
	Follow       FollowRepository
	Notification NotificationRepository
	Media        MediaRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Post:         NewPostRepository(db),
		Comment:      NewCommentRepository(db),
		Follow:       NewFollowRepository(db),
		Notification: NewNotificationRepository(db),
		Media:        NewMediaRepository(db),
		Session:      NewSessionRepository(db),
	}
}
