package handler

import "scentfeed/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Post         *PostHandler
	Comment      *CommentHandler
	Follow       *FollowHandler
	Notification *NotificationHandler
	Media        *MediaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Post:         NewPostHandler(services.Post),
		Comment:      NewCommentHandler(services.Comment),
		Follow:       NewFollowHandler(services.Follow),
		Notification: NewNotificationHandler(services.Notification),
		Media:        NewMediaHandler(services.Media),
	}
}
