// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"blogapi/comments/models"
	"blogapi/comments/repository"
)

// MockCommentRepository is a mock implementation of repository.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) FindChildren(ctx context.Context, kind models.ParentKind, parentID uuid.UUID) ([]*models.Comment, error) {
	args := m.Called(ctx, kind, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindChildrenBatch(ctx context.Context, parentIDs []uuid.UUID) ([]*models.Comment, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindTopLevelPage(ctx context.Context, blogID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, blogID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountTopLevel(ctx context.Context, blogID uuid.UUID) (int64, error) {
	args := m.Called(ctx, blogID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// WithTransaction runs fn directly; mocked repositories have no real
// transaction to join.
func (m *MockCommentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
