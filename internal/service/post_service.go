package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput) (*domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.PostView, error)
	List(ctx context.Context, viewerID *uuid.UUID, params domain.PostListParams) (domain.PaginatedResponse[domain.PostView], error)
	Update(ctx context.Context, userID, postID uuid.UUID, input domain.UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	Like(ctx context.Context, userID, postID uuid.UUID) (domain.LikeResult, error)
	Unlike(ctx context.Context, userID, postID uuid.UUID) (domain.LikeResult, error)

	SetNotificationService(notifService NotificationService)
}

type postService struct {
	postRepo     repository.PostRepository
	redis        *redis.Client
	notifService NotificationService
}

func NewPostService(postRepo repository.PostRepository, redis *redis.Client) PostService {
	return &postService{
		postRepo: postRepo,
		redis:    redis,
	}
}

func (s *postService) SetNotificationService(notifService NotificationService) {
	s.notifService = notifService
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreatePostInput) (*domain.Post, error) {
	post := &domain.Post{
		ID:             uuid.New(),
		UserID:         authorID,
		Title:          input.Title,
		Body:           input.Body,
		FragranceName:  input.FragranceName,
		FragranceBrand: input.FragranceBrand,
		ImageURL:       input.ImageURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*domain.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}

	views, err := s.decorate(ctx, []domain.Post{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *postService) List(ctx context.Context, viewerID *uuid.UUID, params domain.PostListParams) (domain.PaginatedResponse[domain.PostView], error) {
	posts, total, err := s.postRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.PostView]{}, err
	}

	views, err := s.decorate(ctx, posts, viewerID)
	if err != nil {
		return domain.PaginatedResponse[domain.PostView]{}, err
	}

	return domain.NewPaginatedResponse(views, params.Page, params.PageSize, total), nil
}

func (s *postService) decorate(ctx context.Context, posts []domain.Post, viewerID *uuid.UUID) ([]domain.PostView, error) {
	if len(posts) == 0 {
		return []domain.PostView{}, nil
	}

	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	likeCounts, err := s.postRepo.LikeCountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.postRepo.CommentCountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	likedByViewer := map[uuid.UUID]bool{}
	if viewerID != nil {
		likedByViewer, err = s.postRepo.LikedByUser(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, domain.PostView{
			Post:          p,
			LikesCount:    likeCounts[p.ID],
			CommentsCount: commentCounts[p.ID],
			IsLikedByMe:   likedByViewer[p.ID],
		})
	}

	return views, nil
}

func (s *postService) Update(ctx context.Context, userID, postID uuid.UUID, input domain.UpdatePostInput) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}

	if post.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.FragranceName != nil {
		post.FragranceName = *input.FragranceName
	}
	if input.FragranceBrand != nil {
		post.FragranceBrand = *input.FragranceBrand
	}
	if input.ImageURL != nil {
		post.ImageURL = *input.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}

	if post.UserID != userID {
		return domain.ErrForbidden
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *postService) Like(ctx context.Context, userID, postID uuid.UUID) (domain.LikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	if post == nil {
		return domain.LikeResult{}, fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}

	created, err := s.postRepo.CreateLike(ctx, postID, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	if created && s.notifService != nil && post.UserID != userID {
		if err := s.notifService.NotifyLike(ctx, post.UserID, userID, &post.ID, nil, post.Title); err != nil {
			log.Printf("Failed to notify post owner %s: %v", post.UserID, err)
		}
	}

	return domain.LikeResult{Liked: true, Changed: created}, nil
}

func (s *postService) Unlike(ctx context.Context, userID, postID uuid.UUID) (domain.LikeResult, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	if post == nil {
		return domain.LikeResult{}, fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}

	removed, err := s.postRepo.DeleteLike(ctx, postID, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	return domain.LikeResult{Liked: false, Changed: removed}, nil
}
