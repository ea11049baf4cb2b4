// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"blogapi/blogs/models"
	"blogapi/blogs/repository"
)

// MockBlogRepository is a mock implementation of repository.BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

var _ repository.BlogRepository = (*MockBlogRepository)(nil)

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) Find(ctx context.Context, filter repository.BlogFilter, limit, offset int) ([]*models.Blog, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) Count(ctx context.Context, filter repository.BlogFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) RankBlogs(ctx context.Context) ([]*models.RankedBlog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RankedBlog), args.Error(1)
}
