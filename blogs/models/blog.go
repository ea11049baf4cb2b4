// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"

	commentsModels "blogapi/comments/models"
)

// Blog represents a blog post. The author reference is immutable after
// creation; ownership checks compare OwnerUserID against the caller.
type Blog struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Title            string    `db:"title" json:"title"`
	Description      string    `db:"description" json:"description"`
	OwnerUserID      uuid.UUID `db:"owner_user_id" json:"author_id"`
	OwnerDisplayName string    `db:"owner_display_name" json:"author"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// RankedBlog is a blog annotated with its net score (upvotes minus
// downvotes). The score is computed at query time, never stored.
type RankedBlog struct {
	Blog
	NetScore int `db:"net_score" json:"total_votes"`
}

// BlogDetailResponse is the blog detail view: the blog itself, its net vote
// score, and one page of its top-level comments.
type BlogDetailResponse struct {
	Blog
	NetScore int                        `json:"total_votes"`
	Comments commentsModels.CommentPage `json:"comments"`
}

// CreateBlogRequest represents the request payload for creating a blog
type CreateBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateBlogRequest represents the request payload for updating a blog.
// Nil fields are left unchanged (partial update).
type UpdateBlogRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListBlogsQuery carries the query parameters of the blog listing endpoint.
// Decoded from the URL query string with gorilla/schema.
type ListBlogsQuery struct {
	Q     string `schema:"q"`
	Page  int    `schema:"page"`
	Limit int    `schema:"limit"`
}

// BlogListResponse represents the response for listing blogs
type BlogListResponse struct {
	Items []Blog `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}
