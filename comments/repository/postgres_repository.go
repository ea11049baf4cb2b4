// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"blogapi/comments/models"
	"blogapi/internal/database/postgres"
)

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{client: client}
}

func (r *postgresCommentRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFromContext(ctx, r.client)
}

// Create inserts a new comment
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (id, owner_user_id, owner_display_name, description, parent_kind, parent_id, created_at)
		VALUES (:id, :owner_user_id, :owner_display_name, :description, :parent_kind, :parent_id, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID
func (r *postgresCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, owner_user_id, owner_display_name, description, parent_kind, parent_id, created_at
		FROM comments
		WHERE id = $1
	`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find comment by ID: %w", err)
	}

	return &comment, nil
}

// Exists reports whether a comment with the given ID exists
func (r *postgresCommentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}

	return exists, nil
}

// FindChildren retrieves the direct children of one parent
func (r *postgresCommentRepository) FindChildren(ctx context.Context, kind models.ParentKind, parentID uuid.UUID) ([]*models.Comment, error) {
	query := `
		SELECT id, owner_user_id, owner_display_name, description, parent_kind, parent_id, created_at
		FROM comments
		WHERE parent_kind = $1 AND parent_id = $2
		ORDER BY created_at ASC, id ASC
	`

	var comments []*models.Comment
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, kind, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find children: %w", err)
	}

	return comments, nil
}

// FindChildrenBatch retrieves the direct replies of many comments in one
// query. One round trip per thread level, regardless of how many comments
// that level holds.
func (r *postgresCommentRepository) FindChildrenBatch(ctx context.Context, parentIDs []uuid.UUID) ([]*models.Comment, error) {
	if len(parentIDs) == 0 {
		return []*models.Comment{}, nil
	}

	ids := make([]string, 0, len(parentIDs))
	for _, id := range parentIDs {
		ids = append(ids, id.String())
	}

	query := `
		SELECT id, owner_user_id, owner_display_name, description, parent_kind, parent_id, created_at
		FROM comments
		WHERE parent_kind = 'comment' AND parent_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`

	var comments []*models.Comment
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find children batch: %w", err)
	}

	return comments, nil
}

// FindTopLevelPage retrieves one page of a blog's top-level comments
func (r *postgresCommentRepository) FindTopLevelPage(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	query := `
		SELECT id, owner_user_id, owner_display_name, description, parent_kind, parent_id, created_at
		FROM comments
		WHERE parent_kind = 'blog' AND parent_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	var comments []*models.Comment
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, blogID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find top-level comments: %w", err)
	}

	return comments, nil
}

// CountTopLevel returns the number of top-level comments on a blog
func (r *postgresCommentRepository) CountTopLevel(ctx context.Context, blogID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM comments WHERE parent_kind = 'blog' AND parent_id = $1`

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, blogID)
	if err != nil {
		return 0, fmt.Errorf("failed to count top-level comments: %w", err)
	}

	return count, nil
}

// Delete removes a comment by ID, leaving its replies in place
func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return rows > 0, nil
}

// WithTransaction runs fn inside a database transaction
func (r *postgresCommentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}

// DeleteMany removes a set of comments in one statement
func (r *postgresCommentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	query := `DELETE FROM comments WHERE id = ANY($1)`

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, pq.Array(strIDs))
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	return nil
}
