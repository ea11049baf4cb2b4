// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"

	blogsRepository "blogapi/blogs/repository"
	"blogapi/internal/cache"
	"blogapi/internal/pkg/log"
	"blogapi/internal/types"
	votesErrors "blogapi/votes/errors"
	"blogapi/votes/models"
	voteRepository "blogapi/votes/repository"
)

const popularBlogsCacheKey = "blogs:popular"

// VoteService defines the interface for vote operations
type VoteService interface {
	// CastVote records or changes the caller's vote on a blog. The three
	// transitions are kept explicit: no vote yet (created), same direction
	// again (rejected, ledger untouched), different direction (changed).
	CastVote(ctx context.Context, blogID uuid.UUID, user *types.UserContext, voteType models.VoteType) (*models.CastVoteResult, error)

	// RetractVote removes the caller's vote on a blog
	RetractVote(ctx context.Context, blogID uuid.UUID, user *types.UserContext) error
}

// voteService implements the VoteService interface
type voteService struct {
	voteRepo     voteRepository.VoteRepository
	blogRepo     blogsRepository.BlogRepository
	cacheService *cache.Service
}

// NewVoteService creates a new instance of the vote service
func NewVoteService(voteRepo voteRepository.VoteRepository, blogRepo blogsRepository.BlogRepository, cacheService *cache.Service) VoteService {
	return &voteService{
		voteRepo:     voteRepo,
		blogRepo:     blogRepo,
		cacheService: cacheService,
	}
}

// CastVote records or changes the caller's vote on a blog. The write itself
// is a single conditional upsert, so two concurrent casts by the same user
// serialize on the ledger's unique constraint instead of any in-process lock.
func (s *voteService) CastVote(ctx context.Context, blogID uuid.UUID, user *types.UserContext, voteType models.VoteType) (*models.CastVoteResult, error) {
	if !models.IsValidVoteType(voteType) {
		return nil, fmt.Errorf("%w: %q (must be %q or %q)", votesErrors.ErrInvalidVoteType, voteType, models.VoteTypeUp, models.VoteTypeDown)
	}

	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blog existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", votesErrors.ErrBlogNotFound, blogID.String())
	}

	voteID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate vote ID: %w", err)
	}

	vote := &models.Vote{
		ID:          voteID,
		BlogID:      blogID,
		OwnerUserID: user.UserID,
		VoteType:    voteType,
	}

	created, previous, err := s.voteRepo.Upsert(ctx, vote)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same direction already stored, deliberate no-op
			return nil, fmt.Errorf("%w: %s", votesErrors.ErrAlreadyVoted, blogID.String())
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// Blog deleted between the existence check and the insert
			return nil, fmt.Errorf("%w: %s", votesErrors.ErrBlogNotFound, blogID.String())
		}
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	s.invalidatePopular(ctx)

	return &models.CastVoteResult{Created: created, PreviousType: previous}, nil
}

// RetractVote removes the caller's vote on a blog
func (s *voteService) RetractVote(ctx context.Context, blogID uuid.UUID, user *types.UserContext) error {
	deleted, _, err := s.voteRepo.Delete(ctx, blogID, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to retract vote: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: blog %s", votesErrors.ErrVoteNotFound, blogID.String())
	}

	s.invalidatePopular(ctx)

	return nil
}

func (s *voteService) invalidatePopular(ctx context.Context) {
	if err := s.cacheService.Invalidate(ctx, popularBlogsCacheKey); err != nil {
		log.Warn("popular blogs cache invalidation failed: %v", err)
	}
}
