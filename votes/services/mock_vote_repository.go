// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"blogapi/votes/models"
	"blogapi/votes/repository"
)

// MockVoteRepository is a mock implementation of repository.VoteRepository
type MockVoteRepository struct {
	mock.Mock
}

var _ repository.VoteRepository = (*MockVoteRepository)(nil)

func (m *MockVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, models.VoteType, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Get(1).(models.VoteType), args.Error(2)
}

func (m *MockVoteRepository) Delete(ctx context.Context, blogID, userID uuid.UUID) (bool, models.VoteType, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Get(1).(models.VoteType), args.Error(2)
}

func (m *MockVoteRepository) FindByUserAndBlog(ctx context.Context, userID, blogID uuid.UUID) (*models.Vote, error) {
	args := m.Called(ctx, userID, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) NetScore(ctx context.Context, blogID uuid.UUID) (int, error) {
	args := m.Called(ctx, blogID)
	return args.Int(0), args.Error(1)
}

func (m *MockVoteRepository) NetScoresForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, blogIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}
