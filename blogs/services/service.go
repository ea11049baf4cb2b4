// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"blogapi/blogs/models"
	"blogapi/internal/types"
)

// BlogService defines the interface for blog operations
type BlogService interface {
	// CreateBlog creates a new blog owned by the caller
	CreateBlog(ctx context.Context, req *models.CreateBlogRequest, user *types.UserContext) (*models.Blog, error)

	// GetBlog retrieves a single blog by ID
	GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error)

	// ListBlogs returns a page of blogs, newest first, optionally filtered
	// by a search term
	ListBlogs(ctx context.Context, query *models.ListBlogsQuery) (*models.BlogListResponse, error)

	// UpdateBlog applies a partial update. Only the blog author may update.
	UpdateBlog(ctx context.Context, id uuid.UUID, req *models.UpdateBlogRequest, user *types.UserContext) (*models.Blog, error)

	// DeleteBlog removes a blog. Only the blog author or an admin may delete.
	DeleteBlog(ctx context.Context, id uuid.UUID, user *types.UserContext) error

	// MostPopularBlogs returns every blog ordered by net vote score
	// descending, ties in insertion order
	MostPopularBlogs(ctx context.Context) ([]*models.RankedBlog, error)

	// GetBlogDetail returns the blog together with its net vote score and
	// one page of its top-level comments
	GetBlogDetail(ctx context.Context, id uuid.UUID, commentsPage, commentsPageSize int) (*models.BlogDetailResponse, error)
}
