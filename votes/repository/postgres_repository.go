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

	"blogapi/internal/database/postgres"
	"blogapi/votes/models"
)

// postgresVoteRepository implements VoteRepository using raw SQL queries
type postgresVoteRepository struct {
	client *postgres.Client
}

// NewPostgresVoteRepository creates a new PostgreSQL repository for votes
func NewPostgresVoteRepository(client *postgres.Client) VoteRepository {
	return &postgresVoteRepository{client: client}
}

func (r *postgresVoteRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	return postgres.ExecutorFromContext(ctx, r.client)
}

// Upsert casts a vote in one conditional statement. The ON CONFLICT arm only
// fires when the stored direction differs, so a same-direction recast matches
// zero rows and the ledger is untouched. (xmax = 0) distinguishes a fresh
// insert from a conflict update; prev captures the replaced direction.
func (r *postgresVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, models.VoteType, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}

	query := `
		WITH prev AS (
			SELECT vote_type FROM blog_votes
			WHERE blog_id = $2 AND owner_user_id = $3
		)
		INSERT INTO blog_votes (id, blog_id, owner_user_id, vote_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT blog_votes_blog_user_key
		DO UPDATE SET vote_type = EXCLUDED.vote_type
		WHERE blog_votes.vote_type IS DISTINCT FROM EXCLUDED.vote_type
		RETURNING (xmax = 0) AS created, COALESCE((SELECT vote_type FROM prev), '') AS previous_type
	`

	var created bool
	var previous string
	err := r.getExecutor(ctx).QueryRowxContext(ctx, query,
		vote.ID, vote.BlogID, vote.OwnerUserID, vote.VoteType, vote.CreatedAt,
	).Scan(&created, &previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same direction already stored, nothing changed
			return false, "", fmt.Errorf("vote unchanged: %w", sql.ErrNoRows)
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return false, "", fmt.Errorf("blog missing for vote: %w", err)
		}
		return false, "", fmt.Errorf("failed to upsert vote: %w", err)
	}

	return created, models.VoteType(previous), nil
}

// Delete removes the caller's vote on a blog
func (r *postgresVoteRepository) Delete(ctx context.Context, blogID, userID uuid.UUID) (bool, models.VoteType, error) {
	query := `
		DELETE FROM blog_votes
		WHERE blog_id = $1 AND owner_user_id = $2
		RETURNING vote_type
	`

	var previous string
	err := r.getExecutor(ctx).QueryRowxContext(ctx, query, blogID, userID).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to delete vote: %w", err)
	}

	return true, models.VoteType(previous), nil
}

// FindByUserAndBlog retrieves the caller's vote on a blog
func (r *postgresVoteRepository) FindByUserAndBlog(ctx context.Context, userID, blogID uuid.UUID) (*models.Vote, error) {
	query := `
		SELECT id, blog_id, owner_user_id, vote_type, created_at
		FROM blog_votes
		WHERE owner_user_id = $1 AND blog_id = $2
	`

	var vote models.Vote
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &vote, query, userID, blogID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vote not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// NetScore computes upvotes minus downvotes for one blog
func (r *postgresVoteRepository) NetScore(ctx context.Context, blogID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN vote_type = 'up' THEN 1 ELSE -1 END), 0)
		FROM blog_votes
		WHERE blog_id = $1
	`

	var score int
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &score, query, blogID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute net score: %w", err)
	}

	return score, nil
}

// NetScoresForBlogs computes net scores for many blogs in one query
func (r *postgresVoteRepository) NetScoresForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	scores := make(map[uuid.UUID]int, len(blogIDs))
	if len(blogIDs) == 0 {
		return scores, nil
	}

	ids := make([]string, 0, len(blogIDs))
	for _, id := range blogIDs {
		ids = append(ids, id.String())
	}

	query := `
		SELECT blog_id, COALESCE(SUM(CASE WHEN vote_type = 'up' THEN 1 ELSE -1 END), 0) AS net_score
		FROM blog_votes
		WHERE blog_id = ANY($1)
		GROUP BY blog_id
	`

	rows, err := r.getExecutor(ctx).QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to compute net scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blogID uuid.UUID
		var score int
		if err := rows.Scan(&blogID, &score); err != nil {
			return nil, fmt.Errorf("failed to scan net score row: %w", err)
		}
		scores[blogID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read net score rows: %w", err)
	}

	return scores, nil
}
