// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"blogapi/comments/models"
)

// CommentRepository defines the interface for comment thread operations
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// Exists reports whether a comment with the given ID exists. Used as
	// the parent existence check when replying to a comment.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// FindChildren retrieves the direct children of one parent,
	// (created_at, id) ascending
	FindChildren(ctx context.Context, kind models.ParentKind, parentID uuid.UUID) ([]*models.Comment, error)

	// FindChildrenBatch retrieves the direct replies of many comments in
	// one query, (created_at, id) ascending. This is the workhorse of the
	// breadth-first thread walk.
	FindChildrenBatch(ctx context.Context, parentIDs []uuid.UUID) ([]*models.Comment, error)

	// FindTopLevelPage retrieves one page of a blog's top-level comments,
	// (created_at, id) ascending
	FindTopLevelPage(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*models.Comment, error)

	// CountTopLevel returns the number of top-level comments on a blog
	CountTopLevel(ctx context.Context, blogID uuid.UUID) (int64, error)

	// Delete removes a comment by ID. Returns whether a row existed.
	// Replies are untouched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteMany removes a set of comments in one statement. Used by the
	// cascade delete policy inside a transaction.
	DeleteMany(ctx context.Context, ids []uuid.UUID) error

	// WithTransaction runs fn inside a database transaction. Repository
	// calls made with the ctx passed to fn join that transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
