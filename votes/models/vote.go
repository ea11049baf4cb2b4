// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// VoteType is the direction of a vote. Stored as text so the ledger rows
// read naturally in SQL.
type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

// IsValidVoteType reports whether t is one of the two known directions
func IsValidVoteType(t VoteType) bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// ScoreValue returns the contribution of a vote type to a blog's net score
func ScoreValue(t VoteType) int {
	if t == VoteTypeUp {
		return 1
	}
	return -1
}

// Vote is one row of the vote ledger. At most one row exists per
// (BlogID, OwnerUserID) pair; the schema enforces this with a unique
// constraint, which is also what serializes concurrent casts.
type Vote struct {
	ID          uuid.UUID `db:"id" json:"id"`
	BlogID      uuid.UUID `db:"blog_id" json:"blog_id"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"user_id"`
	VoteType    VoteType  `db:"vote_type" json:"vote_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CastVoteRequest is the request payload for casting a vote
type CastVoteRequest struct {
	VoteType VoteType `json:"vote_type"`
}

// CastVoteResult describes which transition a cast produced. Created means
// the caller had no vote on the blog; otherwise PreviousType holds the
// direction that was replaced.
type CastVoteResult struct {
	Created      bool
	PreviousType VoteType
}
