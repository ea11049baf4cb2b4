// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"blogapi/votes/models"
)

// VoteRepository defines the interface for vote ledger operations
type VoteRepository interface {
	// Upsert casts a vote in a single atomic statement. It returns
	// created=true when the caller had no vote on the blog, otherwise the
	// direction that was replaced. Casting the direction already held
	// touches nothing and returns a wrapped sql.ErrNoRows.
	Upsert(ctx context.Context, vote *models.Vote) (created bool, previous models.VoteType, err error)

	// Delete removes the caller's vote on a blog. Returns whether a row
	// existed and, if so, its direction.
	Delete(ctx context.Context, blogID, userID uuid.UUID) (deleted bool, previous models.VoteType, err error)

	// FindByUserAndBlog retrieves the caller's vote on a blog, wrapped
	// sql.ErrNoRows when absent
	FindByUserAndBlog(ctx context.Context, userID, blogID uuid.UUID) (*models.Vote, error)

	// NetScore computes upvotes minus downvotes for one blog at query
	// time. Zero votes yields 0; the result may be negative.
	NetScore(ctx context.Context, blogID uuid.UUID) (int, error)

	// NetScoresForBlogs computes net scores for many blogs in one query.
	// Blogs with no votes are absent from the map.
	NetScoresForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
