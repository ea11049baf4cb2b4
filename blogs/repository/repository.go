// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"blogapi/blogs/models"
)

// BlogFilter represents filtering criteria for querying blogs
type BlogFilter struct {
	OwnerUserID *uuid.UUID
	// SearchText matches title or description, case-insensitively
	SearchText *string
}

// BlogRepository defines the interface for blog-specific database operations
// This is a domain-specific repository that knows exactly what a "Blog" is
// and how to execute optimized SQL queries for that specific domain.
type BlogRepository interface {
	// Create inserts a new blog
	Create(ctx context.Context, blog *models.Blog) error

	// FindByID retrieves a blog by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)

	// Exists reports whether a blog with the given ID exists. Used by the
	// vote and comment services as the parent existence check.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Find retrieves blogs matching the filter criteria with pagination,
	// newest first
	Find(ctx context.Context, filter BlogFilter, limit, offset int) ([]*models.Blog, error)

	// Count returns the number of blogs matching the filter criteria
	Count(ctx context.Context, filter BlogFilter) (int64, error)

	// Update updates the mutable fields of an existing blog
	Update(ctx context.Context, blog *models.Blog) error

	// Delete removes a blog by ID. Returns whether a row existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// RankBlogs returns all blogs with their net score (upvotes minus
	// downvotes), ordered by net score descending. Ties preserve insertion
	// order, so the ordering is deterministic. Computed in a single
	// aggregate pass over the vote ledger, never per blog.
	RankBlogs(ctx context.Context) ([]*models.RankedBlog, error)
}
