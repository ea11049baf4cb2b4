// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"sync"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"blogapi/internal/database/postgres"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/votes/models"
)

func connectTestDB(ctx context.Context, t *testing.T) *postgres.Client {
	t.Helper()

	port := 5432
	if v, err := strconv.Atoi(os.Getenv("POSTGRES_PORT")); err == nil {
		port = v
	}
	cfg := &platformconfig.PostgreSQLConfig{
		Host:     envOr("POSTGRES_HOST", "localhost"),
		Port:     port,
		Username: os.Getenv("POSTGRES_USERNAME"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Database: envOr("POSTGRES_DATABASE", "blogapi"),
		SSLMode:  envOr("POSTGRES_SSL_MODE", "disable"),
	}

	client, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		t.Skipf("PostgreSQL not available, skipping test: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.EnsureSchema(ctx), "Failed to ensure schema")
	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedUser(ctx context.Context, t *testing.T, client *postgres.Client) uuid.UUID {
	t.Helper()

	id := uuid.Must(uuid.NewV4())
	phone := fmt.Sprintf("%010d", binary.BigEndian.Uint64(id.Bytes()[:8])%10000000000)
	_, err := client.DB().ExecContext(ctx,
		`INSERT INTO users (id, phone_number, password_hash) VALUES ($1, $2, 'test-hash')`,
		id, phone)
	require.NoError(t, err, "Failed to seed user")
	return id
}

func seedBlog(ctx context.Context, t *testing.T, client *postgres.Client, ownerID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.Must(uuid.NewV4())
	_, err := client.DB().ExecContext(ctx,
		`INSERT INTO blogs (id, title, description, owner_user_id) VALUES ($1, 'Integration blog', 'body', $2)`,
		id, ownerID)
	require.NoError(t, err, "Failed to seed blog")
	return id
}

func countVotes(ctx context.Context, t *testing.T, client *postgres.Client, blogID, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := client.DB().GetContext(ctx, &n,
		`SELECT COUNT(*) FROM blog_votes WHERE blog_id = $1 AND owner_user_id = $2`,
		blogID, userID)
	require.NoError(t, err, "Failed to count ledger rows")
	return n
}

// TestPostgresVoteRepository_Integration validates the vote ledger against a
// live database. The cast semantics live entirely in one SQL statement, so
// only a real PostgreSQL exercises the unique constraint and the
// IS DISTINCT FROM guard.
func TestPostgresVoteRepository_Integration(t *testing.T) {
	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("set RUN_DB_TESTS=1 to run database tests")
	}

	ctx := context.Background()
	client := connectTestDB(ctx, t)
	repo := NewPostgresVoteRepository(client)

	userID := seedUser(ctx, t, client)
	blogID := seedBlog(ctx, t, client, userID)

	t.Run("first cast creates a ledger row", func(t *testing.T) {
		created, previous, err := repo.Upsert(ctx, &models.Vote{
			ID:          uuid.Must(uuid.NewV4()),
			BlogID:      blogID,
			OwnerUserID: userID,
			VoteType:    models.VoteTypeUp,
		})
		require.NoError(t, err, "Failed to upsert vote")
		require.True(t, created, "First cast should create a row")
		require.Equal(t, models.VoteType(""), previous, "No previous direction expected")

		fetched, err := repo.FindByUserAndBlog(ctx, userID, blogID)
		require.NoError(t, err, "Failed to find vote")
		require.Equal(t, models.VoteTypeUp, fetched.VoteType, "Stored direction should be up")
		require.Equal(t, 1, countVotes(ctx, t, client, blogID, userID))
	})

	t.Run("recasting the same direction changes nothing", func(t *testing.T) {
		_, _, err := repo.Upsert(ctx, &models.Vote{
			ID:          uuid.Must(uuid.NewV4()),
			BlogID:      blogID,
			OwnerUserID: userID,
			VoteType:    models.VoteTypeUp,
		})
		require.ErrorIs(t, err, sql.ErrNoRows, "Same-direction recast should match zero rows")
		require.Equal(t, 1, countVotes(ctx, t, client, blogID, userID), "The ledger must stay at one row")
	})

	t.Run("switching direction updates the row in place", func(t *testing.T) {
		created, previous, err := repo.Upsert(ctx, &models.Vote{
			ID:          uuid.Must(uuid.NewV4()),
			BlogID:      blogID,
			OwnerUserID: userID,
			VoteType:    models.VoteTypeDown,
		})
		require.NoError(t, err, "Failed to switch vote")
		require.False(t, created, "Switch should update, not insert")
		require.Equal(t, models.VoteTypeUp, previous, "Previous direction should be up")

		fetched, err := repo.FindByUserAndBlog(ctx, userID, blogID)
		require.NoError(t, err, "Failed to find vote")
		require.Equal(t, models.VoteTypeDown, fetched.VoteType, "Stored direction should be down")
		require.Equal(t, 1, countVotes(ctx, t, client, blogID, userID), "The ledger must stay at one row")
	})

	t.Run("concurrent casts keep a single row per voter and blog", func(t *testing.T) {
		raceBlogID := seedBlog(ctx, t, client, userID)

		const casters = 8
		type outcome struct {
			created bool
			err     error
		}
		results := make(chan outcome, casters)

		var wg sync.WaitGroup
		for i := 0; i < casters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				created, _, err := repo.Upsert(ctx, &models.Vote{
					ID:          uuid.Must(uuid.NewV4()),
					BlogID:      raceBlogID,
					OwnerUserID: userID,
					VoteType:    models.VoteTypeUp,
				})
				results <- outcome{created: created, err: err}
			}()
		}
		wg.Wait()
		close(results)

		createdCount, noopCount := 0, 0
		for r := range results {
			if r.err == nil {
				require.True(t, r.created, "A successful racing cast must be the creating one")
				createdCount++
				continue
			}
			require.ErrorIs(t, r.err, sql.ErrNoRows, "Losing casts should match zero rows")
			noopCount++
		}
		require.Equal(t, 1, createdCount, "Exactly one cast creates the row")
		require.Equal(t, casters-1, noopCount, "All other casts are no-ops")
		require.Equal(t, 1, countVotes(ctx, t, client, raceBlogID, userID), "The ledger must hold one row")
	})

	t.Run("net score is ups minus downs", func(t *testing.T) {
		scoredBlogID := seedBlog(ctx, t, client, userID)

		for i := 0; i < 3; i++ {
			voterID := seedUser(ctx, t, client)
			_, _, err := repo.Upsert(ctx, &models.Vote{
				ID:          uuid.Must(uuid.NewV4()),
				BlogID:      scoredBlogID,
				OwnerUserID: voterID,
				VoteType:    models.VoteTypeUp,
			})
			require.NoError(t, err, "Failed to cast up vote")
		}
		downVoterID := seedUser(ctx, t, client)
		_, _, err := repo.Upsert(ctx, &models.Vote{
			ID:          uuid.Must(uuid.NewV4()),
			BlogID:      scoredBlogID,
			OwnerUserID: downVoterID,
			VoteType:    models.VoteTypeDown,
		})
		require.NoError(t, err, "Failed to cast down vote")

		score, err := repo.NetScore(ctx, scoredBlogID)
		require.NoError(t, err, "Failed to compute net score")
		require.Equal(t, 2, score, "3 up and 1 down should net to 2")

		unknownID := uuid.Must(uuid.NewV4())
		scores, err := repo.NetScoresForBlogs(ctx, []uuid.UUID{scoredBlogID, unknownID})
		require.NoError(t, err, "Failed to compute batched net scores")
		require.Equal(t, 2, scores[scoredBlogID], "Batched score should match the single query")
		_, ok := scores[unknownID]
		require.False(t, ok, "A blog without votes has no entry")
	})

	t.Run("retract returns the removed direction", func(t *testing.T) {
		deleted, previous, err := repo.Delete(ctx, blogID, userID)
		require.NoError(t, err, "Failed to delete vote")
		require.True(t, deleted, "Vote should be deleted")
		require.Equal(t, models.VoteTypeDown, previous, "Previous direction should be down")

		deleted, previous, err = repo.Delete(ctx, blogID, userID)
		require.NoError(t, err, "Second delete should not error")
		require.False(t, deleted, "Nothing left to delete")
		require.Equal(t, models.VoteType(""), previous, "No direction for a missing vote")
	})
}
