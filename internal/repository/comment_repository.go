package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"scentfeed/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	ListTopLevelByPost(ctx context.Context, postID uuid.UUID, params domain.CommentListParams) ([]domain.Comment, int64, error)
	ListByParent(ctx context.Context, parentID uuid.UUID, params domain.CommentListParams) ([]domain.Comment, int64, error)
	ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID, limitPerParent int) (map[uuid.UUID][]domain.Comment, error)
	CountByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	LikeCountsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	LikedByUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	CreateLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error)
	DeleteLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, user_id, parent_comment_id, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.ParentCommentID, comment.Text,
	).Scan(&comment.CreatedAt)

	// A concurrent delete of the parent surfaces as a foreign key violation;
	// report it the same way as a missing parent.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" && pqErr.Constraint == "comments_parent_comment_id_fkey" {
		return domain.ErrInvalidParent
	}
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT * FROM comments WHERE comment_id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE comment_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.Text,
	).Scan(&comment.UpdatedAt)
}

// DeleteCascade removes the comment together with its likes and the
// notifications that reference it, and promotes direct replies to top-level.
// All four statements run in one transaction.
func (r *commentRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comment_likes WHERE comment_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM notifications WHERE comment_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE comments SET parent_comment_id = NULL WHERE parent_comment_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

const commentColumns = `
	c.comment_id, c.post_id, c.user_id, c.parent_comment_id, c.content, c.created_at, c.updated_at,
	u.user_id AS author_id, u.username AS author_username, u.display_name AS author_display_name, u.avatar_url AS author_avatar_url`

func commentOrderClause(params domain.CommentListParams) string {
	dir := "ASC"
	if params.Descending {
		dir = "DESC"
	}
	if params.SortBy == domain.CommentSortLikes {
		return fmt.Sprintf("(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.comment_id) %s, c.created_at DESC", dir)
	}
	return fmt.Sprintf("c.created_at %s", dir)
}

func (r *commentRepository) ListTopLevelByPost(ctx context.Context, postID uuid.UUID, params domain.CommentListParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_comment_id IS NULL`
	if err := r.db.GetContext(ctx, &total, countQuery, postID); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		INNER JOIN users u ON c.user_id = u.user_id
		WHERE c.post_id = $1 AND c.parent_comment_id IS NULL
		ORDER BY %s
		LIMIT $2 OFFSET $3`, commentColumns, commentOrderClause(params))

	comments, err := r.scanComments(ctx, query, postID, params.PageSize, params.Offset())
	return comments, total, err
}

func (r *commentRepository) ListByParent(ctx context.Context, parentID uuid.UUID, params domain.CommentListParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE parent_comment_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, parentID); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		INNER JOIN users u ON c.user_id = u.user_id
		WHERE c.parent_comment_id = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3`, commentColumns, commentOrderClause(params))

	comments, err := r.scanComments(ctx, query, parentID, params.PageSize, params.Offset())
	return comments, total, err
}

// ListByParentIDs fetches direct replies for a whole page of parents in one
// query, newest-first per parent, optionally capped per parent.
func (r *commentRepository) ListByParentIDs(ctx context.Context, parentIDs []uuid.UUID, limitPerParent int) (map[uuid.UUID][]domain.Comment, error) {
	result := make(map[uuid.UUID][]domain.Comment)
	if len(parentIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`
		SELECT * FROM (
			SELECT %s,
				ROW_NUMBER() OVER (PARTITION BY c.parent_comment_id ORDER BY c.created_at DESC) AS rn
			FROM comments c
			INNER JOIN users u ON c.user_id = u.user_id
			WHERE c.parent_comment_id = ANY($1)
		) ranked
		WHERE $2 <= 0 OR rn <= $2
		ORDER BY parent_comment_id, rn`, commentColumns)

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(parentIDs), limitPerParent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Comment
		var author domain.UserSummary
		var rn int64
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.ParentCommentID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
			&author.ID, &author.Username, &author.DisplayName, &author.AvatarURL,
			&rn,
		)
		if err != nil {
			return nil, err
		}
		c.Author = &author
		result[*c.ParentCommentID] = append(result[*c.ParentCommentID], c)
	}

	return result, rows.Err()
}

func (r *commentRepository) CountByParentIDs(ctx context.Context, parentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if len(parentIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT parent_comment_id, COUNT(*)
		FROM comments
		WHERE parent_comment_id = ANY($1)
		GROUP BY parent_comment_id`

	rows, err := r.db.QueryxContext(ctx, query, pq.Array(parentIDs))
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

func (r *commentRepository) LikeCountsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if len(ids) == 0 {
		return counts, nil
	}

	query := `
		SELECT comment_id, COUNT(*)
		FROM comment_likes
		WHERE comment_id = ANY($1)
		GROUP BY comment_id`

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

func (r *commentRepository) LikedByUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if len(ids) == 0 {
		return liked, nil
	}

	query := `SELECT comment_id FROM comment_likes WHERE user_id = $1 AND comment_id = ANY($2)`

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

// CreateLike inserts the (comment, user) like row. A duplicate, including one
// produced by a racing request, reports created=false rather than an error.
func (r *commentRepository) CreateLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO comment_likes (comment_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (comment_id, user_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, commentID, userID)
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

func (r *commentRepository) DeleteLike(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, commentID, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *commentRepository) scanComments(ctx context.Context, query string, args ...interface{}) ([]domain.Comment, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author domain.UserSummary
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.ParentCommentID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
			&author.ID, &author.Username, &author.DisplayName, &author.AvatarURL,
		)
		if err != nil {
			return nil, err
		}
		c.Author = &author
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
