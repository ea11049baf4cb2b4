// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	commentsModels "blogapi/comments/models"
	commentsServices "blogapi/comments/services"
	"blogapi/internal/types"
	votesModels "blogapi/votes/models"
	votesRepository "blogapi/votes/repository"
)

// MockVoteRepositoryForBlogs is a mock implementation of the vote repository
// for blog service testing
type MockVoteRepositoryForBlogs struct {
	mock.Mock
}

var _ votesRepository.VoteRepository = (*MockVoteRepositoryForBlogs)(nil)

func (m *MockVoteRepositoryForBlogs) Upsert(ctx context.Context, vote *votesModels.Vote) (bool, votesModels.VoteType, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Get(1).(votesModels.VoteType), args.Error(2)
}

func (m *MockVoteRepositoryForBlogs) Delete(ctx context.Context, blogID, userID uuid.UUID) (bool, votesModels.VoteType, error) {
	args := m.Called(ctx, blogID, userID)
	return args.Bool(0), args.Get(1).(votesModels.VoteType), args.Error(2)
}

func (m *MockVoteRepositoryForBlogs) FindByUserAndBlog(ctx context.Context, userID, blogID uuid.UUID) (*votesModels.Vote, error) {
	args := m.Called(ctx, userID, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*votesModels.Vote), args.Error(1)
}

func (m *MockVoteRepositoryForBlogs) NetScore(ctx context.Context, blogID uuid.UUID) (int, error) {
	args := m.Called(ctx, blogID)
	return args.Int(0), args.Error(1)
}

func (m *MockVoteRepositoryForBlogs) NetScoresForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	args := m.Called(ctx, blogIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]int), args.Error(1)
}

// MockCommentServiceForBlogs is a mock implementation of the comment service
// for blog service testing
type MockCommentServiceForBlogs struct {
	mock.Mock
}

var _ commentsServices.CommentService = (*MockCommentServiceForBlogs)(nil)

func (m *MockCommentServiceForBlogs) CreateComment(ctx context.Context, kind commentsModels.ParentKind, parentID uuid.UUID, description string, user *types.UserContext) (*commentsModels.Comment, error) {
	args := m.Called(ctx, kind, parentID, description, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commentsModels.Comment), args.Error(1)
}

func (m *MockCommentServiceForBlogs) ChildrenOf(ctx context.Context, kind commentsModels.ParentKind, parentID uuid.UUID) ([]*commentsModels.Comment, error) {
	args := m.Called(ctx, kind, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentsModels.Comment), args.Error(1)
}

func (m *MockCommentServiceForBlogs) ListBlogComments(ctx context.Context, blogID uuid.UUID) ([]*commentsModels.Comment, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentsModels.Comment), args.Error(1)
}

func (m *MockCommentServiceForBlogs) GetThread(ctx context.Context, commentID uuid.UUID) (*commentsModels.ThreadNode, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commentsModels.ThreadNode), args.Error(1)
}

func (m *MockCommentServiceForBlogs) ListPage(ctx context.Context, blogID uuid.UUID, page, pageSize int) (*commentsModels.CommentPage, error) {
	args := m.Called(ctx, blogID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commentsModels.CommentPage), args.Error(1)
}

func (m *MockCommentServiceForBlogs) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}
