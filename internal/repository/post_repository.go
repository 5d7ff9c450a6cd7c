package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"scentfeed/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params domain.PostListParams) ([]domain.Post, int64, error)

	LikeCountsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	CommentCountsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedByUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	CreateLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	DeleteLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (post_id, user_id, title, body, fragrance_name, fragrance_brand, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.UserID, post.Title, post.Body,
		post.FragranceName, post.FragranceBrand, post.ImageURL,
	).Scan(&post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	query := `SELECT * FROM posts WHERE post_id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &post, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	query := `
		UPDATE posts
		SET title = $2, body = $3, fragrance_name = $4, fragrance_brand = $5, image_url = $6, updated_at = NOW()
		WHERE post_id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		post.ID, post.Title, post.Body, post.FragranceName, post.FragranceBrand, post.ImageURL,
	).Scan(&post.UpdatedAt)
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET deleted_at = NOW() WHERE post_id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *postRepository) List(ctx context.Context, params domain.PostListParams) ([]domain.Post, int64, error) {
	params.Validate()

	where := `p.deleted_at IS NULL`
	args := []interface{}{}
	next := 1

	if params.UserID != nil {
		where += ` AND p.user_id = $1`
		args = append(args, *params.UserID)
		next = 2
	}
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		where += ` AND (p.title ILIKE $` + strconv.Itoa(next) +
			` OR p.body ILIKE $` + strconv.Itoa(next) +
			` OR p.fragrance_name ILIKE $` + strconv.Itoa(next) +
			` OR p.fragrance_brand ILIKE $` + strconv.Itoa(next) + `)`
		args = append(args, pattern)
		next++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM posts p WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			p.post_id, p.user_id, p.title, p.body, p.fragrance_name, p.fragrance_brand, p.image_url,
			p.created_at, p.updated_at,
			u.user_id AS author_id, u.username AS author_username, u.display_name AS author_display_name, u.avatar_url AS author_avatar_url
		FROM posts p
		INNER JOIN users u ON p.user_id = u.user_id
		WHERE ` + where + `
		ORDER BY p.created_at DESC
		LIMIT $` + strconv.Itoa(next) + ` OFFSET $` + strconv.Itoa(next+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var author domain.UserSummary
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Body, &p.FragranceName, &p.FragranceBrand, &p.ImageURL,
			&p.CreatedAt, &p.UpdatedAt,
			&author.ID, &author.Username, &author.DisplayName, &author.AvatarURL,
		)
		if err != nil {
			return nil, 0, err
		}
		p.Author = &author
		posts = append(posts, p)
	}

	return posts, total, rows.Err()
}

func (r *postRepository) LikeCountsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `SELECT post_id, COUNT(*) FROM post_likes WHERE post_id = ANY($1) GROUP BY post_id`
	return r.countByID(ctx, query, ids)
}

func (r *postRepository) CommentCountsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `SELECT post_id, COUNT(*) FROM comments WHERE post_id = ANY($1) GROUP BY post_id`
	return r.countByID(ctx, query, ids)
}

func (r *postRepository) countByID(ctx context.Context, query string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if len(ids) == 0 {
		return counts, nil
	}

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}

	return counts, rows.Err()
}

func (r *postRepository) LikedByUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if len(ids) == 0 {
		return liked, nil
	}

	query := `SELECT post_id FROM post_likes WHERE user_id = $1 AND post_id = ANY($2)`

	rows, err := r.db.QueryxContext(ctx, query, userID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		liked[id] = true
	}

	return liked, rows.Err()
}

func (r *postRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM posts WHERE user_id = $1 AND deleted_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *postRepository) CreateLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, postID, userID)
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

func (r *postRepository) DeleteLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
