package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"scentfeed/internal/config"
	"scentfeed/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Post         PostService
	Comment      CommentService
	Follow       FollowService
	Notification NotificationService
	Email        EmailService
	Media        MediaService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, repos.Session, emailService, cfg)
	userService := NewUserService(repos.User, repos.Follow, repos.Post)
	postService := NewPostService(repos.Post, redis)
	commentService := NewCommentService(repos.Comment, repos.Post, redis)
	followService := NewFollowService(repos.Follow, repos.User)
	notificationService := NewNotificationService(repos.Notification, redis)
	mediaService := NewMediaService(repos.Media, minioClient, cfg)

	commentService.SetNotificationService(notificationService)
	postService.SetNotificationService(notificationService)
	followService.SetNotificationService(notificationService)

	return &Services{
		Auth:         authService,
		User:         userService,
		Post:         postService,
		Comment:      commentService,
		Follow:       followService,
		Notification: notificationService,
		Email:        emailService,
		Media:        mediaService,
	}
}
