package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

const snippetMaxLen = 97

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	NotifyComment(ctx context.Context, recipientID, actorID, postID, commentID uuid.UUID, action, text string) error
	NotifyLike(ctx context.Context, recipientID, actorID uuid.UUID, postID, commentID *uuid.UUID, text string) error
	NotifyFollow(ctx context.Context, recipientID, actorID uuid.UUID) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
}

func NewNotificationService(notifRepo repository.NotificationRepository, redis *redis.Client) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		redis:     redis,
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCountKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, cacheKey, strconv.FormatInt(count, 10), time.Minute).Err()
	}

	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.notifRepo.MarkAsRead(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) NotifyComment(ctx context.Context, recipientID, actorID, postID, commentID uuid.UUID, action, text string) error {
	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    recipientID,
		ActorID:   actorID,
		Type:      domain.NotifComment,
		PostID:    &postID,
		CommentID: &commentID,
		Content:   fmt.Sprintf("%s: %s", action, snippet(text)),
	}
	return s.create(ctx, notif)
}

func (s *notificationService) NotifyLike(ctx context.Context, recipientID, actorID uuid.UUID, postID, commentID *uuid.UUID, text string) error {
	action := "liked your post"
	if commentID != nil {
		action = "liked your comment"
	}

	notif := &domain.Notification{
		ID:        uuid.New(),
		UserID:    recipientID,
		ActorID:   actorID,
		Type:      domain.NotifLike,
		PostID:    postID,
		CommentID: commentID,
		Content:   fmt.Sprintf("%s: %s", action, snippet(text)),
	}
	return s.create(ctx, notif)
}

func (s *notificationService) NotifyFollow(ctx context.Context, recipientID, actorID uuid.UUID) error {
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipientID,
		ActorID: actorID,
		Type:    domain.NotifFollow,
		Content: "started following you",
	}
	return s.create(ctx, notif)
}

func (s *notificationService) create(ctx context.Context, notif *domain.Notification) error {
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, notif.UserID)
	return nil
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, unreadCountKey(userID)).Err()
}

func unreadCountKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

// snippet caps the quoted text at 97 runes, appending an ellipsis when
// truncated.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetMaxLen {
		return text
	}
	return string(runes[:snippetMaxLen]) + "…"
}
