// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// ParentKind discriminates what a comment is attached to. Together with
// ParentID it forms the full parent reference; ParentID alone is meaningless.
type ParentKind string

const (
	ParentKindBlog    ParentKind = "blog"
	ParentKindComment ParentKind = "comment"
)

// IsValidParentKind reports whether k is a known parent kind
func IsValidParentKind(k ParentKind) bool {
	return k == ParentKindBlog || k == ParentKindComment
}

// Comment is one node of a discussion thread. The parent reference is
// immutable after creation; comments never move.
type Comment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	OwnerUserID      uuid.UUID  `db:"owner_user_id" json:"author_id"`
	OwnerDisplayName string     `db:"owner_display_name" json:"author"`
	Description      string     `db:"description" json:"description"`
	ParentKind       ParentKind `db:"parent_kind" json:"source_type"`
	ParentID         uuid.UUID  `db:"parent_id" json:"related_id"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// CreateCommentRequest is the request payload for creating a comment.
// RelatedID plus SourceType name the parent.
type CreateCommentRequest struct {
	Description string `json:"description"`
	RelatedID   string `json:"related_id"`
	SourceType  string `json:"source_type"`
}

// CommentPage is one 1-based page of top-level comments on a blog.
// NextPage is nil on the last page.
type CommentPage struct {
	Items    []Comment `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	NextPage *int      `json:"next_page"`
}

// ThreadNode is a comment with its nested replies, produced by the thread
// walk. Replies are ordered (created_at, id) ascending and never paginated.
type ThreadNode struct {
	Comment
	Replies []*ThreadNode `json:"replies"`
}

// ListCommentsQuery carries the comment paging parameters of the blog
// detail endpoint. Decoded from the URL query string with gorilla/schema;
// the names are deliberately distinct from the blog list's page/limit.
type ListCommentsQuery struct {
	CommentsPage     int `schema:"comments_page"`
	CommentsPageSize int `schema:"comments_page_size"`
}
