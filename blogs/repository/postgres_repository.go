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

	"blogapi/blogs/models"
	"blogapi/internal/database/postgres"
)

// postgresBlogRepository implements BlogRepository using raw SQL queries
type postgresBlogRepository struct {
	client *postgres.Client
}

// NewPostgresBlogRepository creates a new PostgreSQL repository for blogs
func NewPostgresBlogRepository(client *postgres.Client) BlogRepository {
	return &postgresBlogRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresBlogRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFromContext(ctx, r.client)
}

// Create inserts a new blog
func (r *postgresBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	now := time.Now()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	if blog.UpdatedAt.IsZero() {
		blog.UpdatedAt = now
	}

	query := `
		INSERT INTO blogs (id, title, description, owner_user_id, owner_display_name, created_at, updated_at)
		VALUES (:id, :title, :description, :owner_user_id, :owner_display_name, :created_at, :updated_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, blog)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

// FindByID retrieves a blog by its ID
func (r *postgresBlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	query := `
		SELECT id, title, description, owner_user_id, owner_display_name, created_at, updated_at
		FROM blogs
		WHERE id = $1
	`

	var blog models.Blog
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &blog, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blog not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find blog by ID: %w", err)
	}

	return &blog, nil
}

// Exists reports whether a blog with the given ID exists
func (r *postgresBlogRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM blogs WHERE id = $1)`

	var exists bool
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to check blog existence: %w", err)
	}

	return exists, nil
}

// Find retrieves blogs matching the filter criteria with pagination, newest first
func (r *postgresBlogRepository) Find(ctx context.Context, filter BlogFilter, limit, offset int) ([]*models.Blog, error) {
	query := `
		SELECT id, title, description, owner_user_id, owner_display_name, created_at, updated_at
		FROM blogs
	`
	where, args := buildBlogFilter(filter)
	query += where
	query += fmt.Sprintf(" ORDER BY seq DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var blogs []*models.Blog
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &blogs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find blogs: %w", err)
	}

	return blogs, nil
}

// Count returns the number of blogs matching the filter criteria
func (r *postgresBlogRepository) Count(ctx context.Context, filter BlogFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM blogs`
	where, args := buildBlogFilter(filter)
	query += where

	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	return count, nil
}

// buildBlogFilter renders the WHERE clause for a BlogFilter
func buildBlogFilter(filter BlogFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.OwnerUserID != nil {
		args = append(args, *filter.OwnerUserID)
		clauses = append(clauses, fmt.Sprintf("owner_user_id = $%d", len(args)))
	}
	if filter.SearchText != nil && *filter.SearchText != "" {
		args = append(args, "%"+*filter.SearchText+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}

// Update updates the mutable fields of an existing blog. The author
// reference is immutable and deliberately not part of the statement.
func (r *postgresBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	blog.UpdatedAt = time.Now()

	query := `
		UPDATE blogs
		SET title = :title,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, blog)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("blog not found: %w", sql.ErrNoRows)
	}

	return nil
}

// Delete removes a blog by ID. Returns whether a row existed.
func (r *postgresBlogRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM blogs WHERE id = $1`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}

	return rows > 0, nil
}

// RankBlogs returns all blogs ordered by net score descending. One aggregate
// pass: the vote ledger is joined and summed once, not queried per blog.
// Equal scores fall back to seq, the monotonic insertion counter, so ties
// keep creation order.
func (r *postgresBlogRepository) RankBlogs(ctx context.Context) ([]*models.RankedBlog, error) {
	query := `
		SELECT
			b.id, b.title, b.description, b.owner_user_id, b.owner_display_name,
			b.created_at, b.updated_at,
			COALESCE(SUM(CASE WHEN v.vote_type = 'up' THEN 1 WHEN v.vote_type = 'down' THEN -1 ELSE 0 END), 0) AS net_score
		FROM blogs b
		LEFT JOIN blog_votes v ON v.blog_id = b.id
		GROUP BY b.id
		ORDER BY net_score DESC, b.seq ASC
	`

	var ranked []*models.RankedBlog
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &ranked, query)
	if err != nil {
		return nil, fmt.Errorf("failed to rank blogs: %w", err)
	}

	return ranked, nil
}
