// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	blogsModels "blogapi/blogs/models"
	blogsRepository "blogapi/blogs/repository"
)

// MockBlogRepositoryForVotes is a mock implementation of the blog repository
// for vote service testing
type MockBlogRepositoryForVotes struct {
	mock.Mock
}

var _ blogsRepository.BlogRepository = (*MockBlogRepositoryForVotes)(nil)

func (m *MockBlogRepositoryForVotes) Create(ctx context.Context, blog *blogsModels.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepositoryForVotes) FindByID(ctx context.Context, id uuid.UUID) (*blogsModels.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blogsModels.Blog), args.Error(1)
}

func (m *MockBlogRepositoryForVotes) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepositoryForVotes) Find(ctx context.Context, filter blogsRepository.BlogFilter, limit, offset int) ([]*blogsModels.Blog, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blogsModels.Blog), args.Error(1)
}

func (m *MockBlogRepositoryForVotes) Count(ctx context.Context, filter blogsRepository.BlogFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepositoryForVotes) Update(ctx context.Context, blog *blogsModels.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepositoryForVotes) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepositoryForVotes) RankBlogs(ctx context.Context) ([]*blogsModels.RankedBlog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blogsModels.RankedBlog), args.Error(1)
}
