package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

// CommentService owns the comment tree: paginated two-level assembly for
// reads, and create/edit/delete/like mutations with their notification side
// effects. Reads accept an optional viewer id; viewer-relative fields are
// false for anonymous requests.
type CommentService interface {
	ListByPost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID, params domain.CommentListParams) (domain.PaginatedResponse[domain.CommentNode], error)
	ListReplies(ctx context.Context, parentCommentID uuid.UUID, viewerID *uuid.UUID, params domain.CommentListParams) (domain.PaginatedResponse[domain.CommentNode], error)

	Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	Update(ctx context.Context, userID, commentID uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error)
	Delete(ctx context.Context, userID, commentID uuid.UUID) error
	Like(ctx context.Context, userID, commentID uuid.UUID) (domain.LikeResult, error)
	Unlike(ctx context.Context, userID, commentID uuid.UUID) (domain.LikeResult, error)

	SetNotificationService(notifService NotificationService)
}

type commentService struct {
	commentRepo  repository.CommentRepository
	postRepo     repository.PostRepository
	redis        *redis.Client
	notifService NotificationService
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, redis *redis.Client) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		redis:       redis,
	}
}

func (s *commentService) SetNotificationService(notifService NotificationService) {
	s.notifService = notifService
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID, params domain.CommentListParams) (domain.PaginatedResponse[domain.CommentNode], error) {
	params.Validate()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, err
	}
	if post == nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, fmt.Errorf("post %s: %w", postID, domain.ErrNotFound)
	}

	cacheKey := s.cacheKey(postID, viewerID, "top", uuid.Nil, params)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	comments, total, err := s.commentRepo.ListTopLevelByPost(ctx, postID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, err
	}

	nodes, err := s.assembleNodes(ctx, comments, viewerID, params.RepliesLimit)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, err
	}

	result := domain.NewPaginatedResponse(nodes, params.Page, params.PageSize, total)
	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (s *commentService) ListReplies(ctx context.Context, parentCommentID uuid.UUID, viewerID *uuid.UUID, params domain.CommentListParams) (domain.PaginatedResponse[domain.CommentNode], error) {
	params.Validate()

	parent, err := s.commentRepo.GetByID(ctx, parentCommentID)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, err
	}
	if parent == nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, fmt.Errorf("comment %s: %w", parentCommentID, domain.ErrNotFound)
	}

	cacheKey := s.cacheKey(parent.PostID, viewerID, "replies", parentCommentID, params)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	comments, total, err := s.commentRepo.ListByParent(ctx, parentCommentID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, err
	}

	nodes, err := s.assembleNodes(ctx, comments, viewerID, params.RepliesLimit)
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, err
	}

	result := domain.NewPaginatedResponse(nodes, params.Page, params.PageSize, total)
	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// assembleNodes decorates a page of comments and preloads one level of
// replies in a single second query. Replies come back newest-first per
// parent; counts cover both the page and the attached replies so every node
// carries its own likes_count and replies_count.
func (s *commentService) assembleNodes(ctx context.Context, comments []domain.Comment, viewerID *uuid.UUID, repliesLimit int) ([]domain.CommentNode, error) {
	if len(comments) == 0 {
		return []domain.CommentNode{}, nil
	}

	parentIDs := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		parentIDs[i] = c.ID
	}

	repliesByParent, err := s.commentRepo.ListByParentIDs(ctx, parentIDs, repliesLimit)
	if err != nil {
		return nil, err
	}

	allIDs := parentIDs
	for _, replies := range repliesByParent {
		for _, reply := range replies {
			allIDs = append(allIDs, reply.ID)
		}
	}

	likeCounts, err := s.commentRepo.LikeCountsByIDs(ctx, allIDs)
	if err != nil {
		return nil, err
	}
	replyCounts, err := s.commentRepo.CountByParentIDs(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	likedByViewer := map[uuid.UUID]bool{}
	if viewerID != nil {
		likedByViewer, err = s.commentRepo.LikedByUser(ctx, *viewerID, allIDs)
		if err != nil {
			return nil, err
		}
	}

	makeNode := func(c domain.Comment) domain.CommentNode {
		node := domain.CommentNode{
			Comment:      c,
			LikesCount:   likeCounts[c.ID],
			RepliesCount: replyCounts[c.ID],
			IsLikedByMe:  likedByViewer[c.ID],
			Replies:      []domain.CommentNode{},
		}
		if viewerID != nil && *viewerID == c.UserID {
			node.CanEdit = true
			node.CanDelete = true
		}
		return node
	}

	nodes := make([]domain.CommentNode, 0, len(comments))
	for _, c := range comments {
		node := makeNode(c)
		for _, reply := range repliesByParent[c.ID] {
			node.Replies = append(node.Replies, makeNode(reply))
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, fmt.Errorf("post %s: %w", input.PostID, domain.ErrNotFound)
	}

	var parent *domain.Comment
	if input.ParentCommentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *input.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != input.PostID {
			return nil, domain.ErrInvalidParent
		}
	}

	comment := &domain.Comment{
		ID:              uuid.New(),
		PostID:          input.PostID,
		UserID:          authorID,
		ParentCommentID: input.ParentCommentID,
		Text:            input.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, comment.PostID)
	s.notifyCommentCreated(ctx, post, parent, comment)

	return comment, nil
}

// notifyCommentCreated fans out to the post owner and, for replies, the
// parent comment's author. Self-notifications are skipped and the parent
// author is notified once even when they also own the post.
func (s *commentService) notifyCommentCreated(ctx context.Context, post *domain.Post, parent *domain.Comment, comment *domain.Comment) {
	if s.notifService == nil {
		return
	}

	if post.UserID != comment.UserID {
		action := "commented on your post"
		if parent != nil {
			action = "replied to a comment on your post"
		}
		err := s.notifService.NotifyComment(ctx, post.UserID, comment.UserID, comment.PostID, comment.ID, action, comment.Text)
		if err != nil {
			log.Printf("Failed to notify post owner %s: %v", post.UserID, err)
		}
	}

	if parent != nil && parent.UserID != comment.UserID && parent.UserID != post.UserID {
		err := s.notifService.NotifyComment(ctx, parent.UserID, comment.UserID, comment.PostID, comment.ID, "replied to your comment", comment.Text)
		if err != nil {
			log.Printf("Failed to notify parent author %s: %v", parent.UserID, err)
		}
	}
}

func (s *commentService) Update(ctx context.Context, userID, commentID uuid.UUID, input domain.UpdateCommentInput) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	if comment.UserID != userID {
		return nil, domain.ErrForbidden
	}

	comment.Text = input.Text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, comment.PostID)
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	if comment.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.commentRepo.DeleteCascade(ctx, commentID); err != nil {
		return err
	}

	s.invalidateCache(ctx, comment.PostID)
	return nil
}

func (s *commentService) Like(ctx context.Context, userID, commentID uuid.UUID) (domain.LikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	if comment == nil {
		return domain.LikeResult{}, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	created, err := s.commentRepo.CreateLike(ctx, commentID, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	if created {
		s.invalidateCache(ctx, comment.PostID)
		if s.notifService != nil && comment.UserID != userID {
			if err := s.notifService.NotifyLike(ctx, comment.UserID, userID, &comment.PostID, &comment.ID, comment.Text); err != nil {
				log.Printf("Failed to notify comment owner %s: %v", comment.UserID, err)
			}
		}
	}

	return domain.LikeResult{Liked: true, Changed: created}, nil
}

func (s *commentService) Unlike(ctx context.Context, userID, commentID uuid.UUID) (domain.LikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	if comment == nil {
		return domain.LikeResult{}, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	removed, err := s.commentRepo.DeleteLike(ctx, commentID, userID)
	if err != nil {
		return domain.LikeResult{}, err
	}

	if removed {
		s.invalidateCache(ctx, comment.PostID)
	}

	return domain.LikeResult{Liked: false, Changed: removed}, nil
}

// Cache keys share the comments:<postID>: prefix so a single pattern delete
// invalidates both the top-level pages and every reply listing of the post.
// The viewer is part of the key because is_liked_by_me and can_edit differ
// per viewer.
func (s *commentService) cacheKey(postID uuid.UUID, viewerID *uuid.UUID, kind string, parentID uuid.UUID, params domain.CommentListParams) string {
	viewer := "anon"
	if viewerID != nil {
		viewer = viewerID.String()
	}
	return fmt.Sprintf("comments:%s:%s:%s:%s:page:%d:size:%d:sort:%s:desc:%t:replies:%d",
		postID, viewer, kind, parentID, params.Page, params.PageSize, params.SortBy, params.Descending, params.RepliesLimit)
}

func (s *commentService) cacheGet(ctx context.Context, key string) (domain.PaginatedResponse[domain.CommentNode], bool) {
	if s.redis == nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, false
	}
	cached, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, false
	}
	var result domain.PaginatedResponse[domain.CommentNode]
	if json.Unmarshal([]byte(cached), &result) != nil {
		return domain.PaginatedResponse[domain.CommentNode]{}, false
	}
	return result, true
}

func (s *commentService) cacheSet(ctx context.Context, key string, result domain.PaginatedResponse[domain.CommentNode]) {
	if s.redis == nil {
		return
	}
	if resultJSON, err := json.Marshal(result); err == nil {
		_ = s.redis.Set(ctx, key, resultJSON, 5*time.Minute).Err()
	}
}

func (s *commentService) invalidateCache(ctx context.Context, postID uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys, _ := s.redis.Keys(ctx, fmt.Sprintf("comments:%s:*", postID)).Result()
	if len(keys) > 0 {
		_ = s.redis.Del(ctx, keys...).Err()
	}
}
