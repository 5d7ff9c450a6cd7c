package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) (domain.FollowResult, error)
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (domain.FollowResult, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error)
	ListFollowing(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error)

	SetNotificationService(notifService NotificationService)
}

type followService struct {
	followRepo   repository.FollowRepository
	userRepo     repository.UserRepository
	notifService NotificationService
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *followService) SetNotificationService(notifService NotificationService) {
	s.notifService = notifService
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) (domain.FollowResult, error) {
	if followerID == followeeID {
		return domain.FollowResult{}, ErrSelfFollow
	}

	followee, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return domain.FollowResult{}, err
	}
	if followee == nil {
		return domain.FollowResult{}, fmt.Errorf("user %s: %w", followeeID, domain.ErrNotFound)
	}

	created, err := s.followRepo.Create(ctx, followerID, followeeID)
	if err != nil {
		return domain.FollowResult{}, err
	}

	if created && s.notifService != nil {
		if err := s.notifService.NotifyFollow(ctx, followeeID, followerID); err != nil {
			log.Printf("Failed to notify followee %s: %v", followeeID, err)
		}
	}

	return domain.FollowResult{Following: true, Changed: created}, nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (domain.FollowResult, error) {
	removed, err := s.followRepo.Delete(ctx, followerID, followeeID)
	if err != nil {
		return domain.FollowResult{}, err
	}

	return domain.FollowResult{Following: false, Changed: removed}, nil
}

func (s *followService) ListFollowers(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error) {
	users, total, err := s.followRepo.ListFollowers(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.UserSummary]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *followService) ListFollowing(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserSummary], error) {
	users, total, err := s.followRepo.ListFollowing(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.UserSummary]{}, err
	}
	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}
