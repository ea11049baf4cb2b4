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
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"blogapi/blogs/models"
	"blogapi/internal/database/postgres"
	platformconfig "blogapi/internal/platform/config"
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

func seedVote(ctx context.Context, t *testing.T, client *postgres.Client, blogID, voterID uuid.UUID, voteType string) {
	t.Helper()

	_, err := client.DB().ExecContext(ctx,
		`INSERT INTO blog_votes (id, blog_id, owner_user_id, vote_type) VALUES ($1, $2, $3, $4)`,
		uuid.Must(uuid.NewV4()), blogID, voterID, voteType)
	require.NoError(t, err, "Failed to seed vote")
}

// TestPostgresBlogRepository_Integration validates the blog store against a
// live database, in particular the ranking aggregate and its insertion-order
// tiebreak, which exist only in SQL.
func TestPostgresBlogRepository_Integration(t *testing.T) {
	if os.Getenv("RUN_DB_TESTS") != "1" {
		t.Skip("set RUN_DB_TESTS=1 to run database tests")
	}

	ctx := context.Background()
	client := connectTestDB(ctx, t)
	repo := NewPostgresBlogRepository(client)

	ownerID := seedUser(ctx, t, client)

	newBlog := func(title, description string) *models.Blog {
		return &models.Blog{
			ID:               uuid.Must(uuid.NewV4()),
			Title:            title,
			Description:      description,
			OwnerUserID:      ownerID,
			OwnerDisplayName: "Ada Lovelace",
		}
	}

	blog := newBlog("Persist me", "round trip body")

	t.Run("create and find round trip", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, blog), "Failed to create blog")

		fetched, err := repo.FindByID(ctx, blog.ID)
		require.NoError(t, err, "Failed to find blog")
		require.Equal(t, blog.Title, fetched.Title, "Title should match")
		require.Equal(t, blog.Description, fetched.Description, "Description should match")
		require.Equal(t, ownerID, fetched.OwnerUserID, "Owner should match")

		exists, err := repo.Exists(ctx, blog.ID)
		require.NoError(t, err, "Failed to check existence")
		require.True(t, exists, "Blog should exist")
	})

	t.Run("update rewrites only the mutable fields", func(t *testing.T) {
		blog.Title = "Persist me again"
		require.NoError(t, repo.Update(ctx, blog), "Failed to update blog")

		fetched, err := repo.FindByID(ctx, blog.ID)
		require.NoError(t, err, "Failed to find blog")
		require.Equal(t, "Persist me again", fetched.Title, "Title should be rewritten")
		require.Equal(t, ownerID, fetched.OwnerUserID, "Owner must not change")

		missing := newBlog("nobody", "home")
		require.ErrorIs(t, repo.Update(ctx, missing), sql.ErrNoRows, "Updating a missing blog should surface no rows")
	})

	t.Run("search filter matches title and description", func(t *testing.T) {
		marker := uuid.Must(uuid.NewV4()).String()
		byTitle := newBlog("needle "+marker, "plain body")
		byDescription := newBlog("plain title", "hidden needle "+marker)
		require.NoError(t, repo.Create(ctx, byTitle))
		require.NoError(t, repo.Create(ctx, byDescription))

		search := marker
		filter := BlogFilter{SearchText: &search}

		found, err := repo.Find(ctx, filter, 10, 0)
		require.NoError(t, err, "Failed to search blogs")
		require.Len(t, found, 2, "Both blogs should match the marker")
		require.Equal(t, byDescription.ID, found[0].ID, "Listing should be newest first")
		require.Equal(t, byTitle.ID, found[1].ID, "Older match should come second")

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err, "Failed to count blogs")
		require.Equal(t, int64(2), count, "Count should agree with the listing")
	})

	t.Run("ranking orders by net score with insertion-order ties", func(t *testing.T) {
		voter1 := seedUser(ctx, t, client)
		voter2 := seedUser(ctx, t, client)

		first := newBlog("first in", "tie candidate")
		second := newBlog("second in", "score leader")
		third := newBlog("third in", "tie candidate")
		for _, b := range []*models.Blog{first, second, third} {
			require.NoError(t, repo.Create(ctx, b), "Failed to create blog")
		}

		seedVote(ctx, t, client, second.ID, voter1, "up")
		seedVote(ctx, t, client, second.ID, voter2, "up")
		seedVote(ctx, t, client, first.ID, voter1, "up")
		seedVote(ctx, t, client, third.ID, voter2, "up")

		ranked, err := repo.RankBlogs(ctx)
		require.NoError(t, err, "Failed to rank blogs")

		position := make(map[uuid.UUID]int)
		score := make(map[uuid.UUID]int)
		for i, r := range ranked {
			position[r.ID] = i
			score[r.ID] = r.NetScore
		}

		require.Equal(t, 2, score[second.ID], "Two up votes should net to 2")
		require.Equal(t, 1, score[first.ID], "One up vote should net to 1")
		require.Equal(t, 1, score[third.ID], "One up vote should net to 1")

		require.Less(t, position[second.ID], position[first.ID], "Higher score ranks first")
		require.Less(t, position[first.ID], position[third.ID], "Equal scores keep insertion order")
	})

	t.Run("delete reports whether a row existed", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, blog.ID)
		require.NoError(t, err, "Failed to delete blog")
		require.True(t, deleted, "Blog should be deleted")

		deleted, err = repo.Delete(ctx, blog.ID)
		require.NoError(t, err, "Second delete should not error")
		require.False(t, deleted, "Nothing left to delete")
	})
}
