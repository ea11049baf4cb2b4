package postgres

import (
	"context"
	"fmt"
)

// schemaStatements defines the tables and indexes the service needs. Executed
// in order at startup; every statement is idempotent.
//
// The UNIQUE (blog_id, owner_user_id) constraint on blog_votes is load-bearing:
// the vote upsert relies on it to serialize concurrent votes from the same
// user on the same blog, across server processes.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		phone_number VARCHAR(10) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		system_role TEXT NOT NULL DEFAULT 'user',
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// seq is the insertion-order tiebreak for listings and rankings. IDs are
	// random UUIDs and created_at has microsecond resolution, so neither
	// orders rows created in the same instant.
	`CREATE TABLE IF NOT EXISTS blogs (
		id UUID PRIMARY KEY,
		seq BIGSERIAL,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL,
		owner_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		owner_display_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_owner ON blogs (owner_user_id)`,

	`CREATE TABLE IF NOT EXISTS blog_votes (
		id UUID PRIMARY KEY,
		blog_id UUID NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
		owner_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vote_type VARCHAR(4) NOT NULL CHECK (vote_type IN ('up', 'down')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT blog_votes_blog_user_key UNIQUE (blog_id, owner_user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blog_votes_blog ON blog_votes (blog_id)`,

	// parent_kind + parent_id form the polymorphic parent reference. No
	// foreign key is possible across two target tables; existence is
	// validated at write time by the comment service.
	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		owner_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		owner_display_name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		parent_kind VARCHAR(7) NOT NULL CHECK (parent_kind IN ('blog', 'comment')),
		parent_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_parent ON comments (parent_kind, parent_id)`,
}

// EnsureSchema creates missing tables and indexes. Safe to run on every boot.
func (c *Client) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
