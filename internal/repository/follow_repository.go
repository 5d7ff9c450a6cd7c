package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"scentfeed/internal/domain"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.UserSummary, int64, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.UserSummary, int64, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return false, domain.ErrNotFound
		}
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	res, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, followerID, followeeID)
	return exists, err
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	countQuery := `SELECT COUNT(*) FROM follows WHERE followee_id = $1`
	query := `
		SELECT u.user_id AS author_id, u.username AS author_username, u.display_name AS author_display_name, u.avatar_url AS author_avatar_url
		FROM follows f
		INNER JOIN users u ON f.follower_id = u.user_id
		WHERE f.followee_id = $1 AND u.deleted_at IS NULL
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.listUsers(ctx, countQuery, query, userID, params)
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	countQuery := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`
	query := `
		SELECT u.user_id AS author_id, u.username AS author_username, u.display_name AS author_display_name, u.avatar_url AS author_avatar_url
		FROM follows f
		INNER JOIN users u ON f.followee_id = u.user_id
		WHERE f.follower_id = $1 AND u.deleted_at IS NULL
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`

	return r.listUsers(ctx, countQuery, query, userID, params)
}

func (r *followRepository) listUsers(ctx context.Context, countQuery, query string, userID uuid.UUID, params domain.PaginationParams) ([]domain.UserSummary, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	var users []domain.UserSummary
	err := r.db.SelectContext(ctx, &users, query, userID, params.PageSize, params.Offset())
	return users, total, err
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE followee_id = $1`, userID)
	return count, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	return count, err
}
