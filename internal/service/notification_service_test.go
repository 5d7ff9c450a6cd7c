package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scentfeed/internal/domain"
)

func TestNotificationService_NotifyComment(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	ctx := context.Background()
	recipientID := uuid.New()
	actorID := uuid.New()
	postID := uuid.New()
	commentID := uuid.New()

	t.Run("Builds Content With Snippet", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == recipientID &&
				n.ActorID == actorID &&
				n.Type == domain.NotifComment &&
				*n.PostID == postID &&
				*n.CommentID == commentID &&
				n.Content == "commented on your post: smells amazing"
		})).Return(nil).Once()

		err := svc.NotifyComment(ctx, recipientID, actorID, postID, commentID, "commented on your post", "smells amazing")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Truncates Long Text", func(t *testing.T) {
		longText := strings.Repeat("x", 200)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Content == "replied to your comment: "+strings.Repeat("x", 97)+"…"
		})).Return(nil).Once()

		err := svc.NotifyComment(ctx, recipientID, actorID, postID, commentID, "replied to your comment", longText)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestNotificationService_NotifyLike(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	ctx := context.Background()
	recipientID := uuid.New()
	actorID := uuid.New()
	postID := uuid.New()
	commentID := uuid.New()

	t.Run("Post Like", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotifLike && n.CommentID == nil &&
				n.Content == "liked your post: Vetiver season"
		})).Return(nil).Once()

		err := svc.NotifyLike(ctx, recipientID, actorID, &postID, nil, "Vetiver season")

		assert.NoError(t, err)
	})

	t.Run("Comment Like", func(t *testing.T) {
		mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.NotifLike && n.CommentID != nil &&
				n.Content == "liked your comment: so true"
		})).Return(nil).Once()

		err := svc.NotifyLike(ctx, recipientID, actorID, &postID, &commentID, "so true")

		assert.NoError(t, err)
	})
}

func TestNotificationService_NotifyFollow(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	ctx := context.Background()
	recipientID := uuid.New()
	actorID := uuid.New()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type == domain.NotifFollow && n.Content == "started following you" &&
			n.PostID == nil && n.CommentID == nil
	})).Return(nil).Once()

	err := svc.NotifyFollow(ctx, recipientID, actorID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestNotificationService_List(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	ctx := context.Background()
	userID := uuid.New()
	params := domain.DefaultPagination()

	notifs := []domain.Notification{
		{ID: uuid.New(), UserID: userID, Type: domain.NotifComment},
		{ID: uuid.New(), UserID: userID, Type: domain.NotifLike},
	}

	mockRepo.On("ListByUser", ctx, userID, false, params).Return(notifs, int64(2), nil).Once()

	result, err := svc.List(ctx, userID, false, params)

	assert.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Equal(t, int64(2), result.TotalItems)
}

func TestNotificationService_GetUnreadCount(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	ctx := context.Background()
	userID := uuid.New()

	mockRepo.On("CountUnread", ctx, userID).Return(int64(4), nil).Once()

	count, err := svc.GetUnreadCount(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	svc := NewNotificationService(mockRepo, nil)

	ctx := context.Background()
	userID := uuid.New()
	notifID := uuid.New()

	mockRepo.On("MarkAsRead", ctx, userID, notifID).Return(nil).Once()

	err := svc.MarkAsRead(ctx, userID, notifID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
