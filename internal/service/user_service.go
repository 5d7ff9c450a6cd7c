package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*domain.UserProfile, error)
	GetProfileByUsername(ctx context.Context, username string, viewerID *uuid.UUID) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, postRepo repository.PostRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*domain.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return s.buildProfile(ctx, user, viewerID)
}

func (s *userService) GetProfileByUsername(ctx context.Context, username string, viewerID *uuid.UUID) (*domain.UserProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return s.buildProfile(ctx, user, viewerID)
}

func (s *userService) buildProfile(ctx context.Context, user *domain.User, viewerID *uuid.UUID) (*domain.UserProfile, error) {
	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &domain.UserProfile{
		User:           *user,
		FollowersCount: followers,
		FollowingCount: following,
		PostsCount:     posts,
	}

	if viewerID != nil && *viewerID != user.ID {
		followed, err := s.followRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowedByMe = followed
	}

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
