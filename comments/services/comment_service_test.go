// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	commentsErrors "blogapi/comments/errors"
	"blogapi/comments/models"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/internal/types"
)

func testConfig(policy string) *platformconfig.Config {
	return &platformconfig.Config{
		App: platformconfig.AppConfig{
			Name:                "blogapi-test",
			DefaultPageSize:     10,
			CommentDeletePolicy: policy,
		},
	}
}

func testUser() *types.UserContext {
	id, _ := uuid.NewV4()
	return &types.UserContext{
		UserID:      id,
		PhoneNumber: "5550003333",
		DisplayName: "Commenter",
		SystemRole:  "user",
	}
}

func TestCreateComment(t *testing.T) {
	t.Run("attaches a comment to an existing blog", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		user := testUser()
		blogID, _ := uuid.NewV4()
		blogRepo.On("Exists", mock.Anything, blogID).Return(true, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ParentKind == models.ParentKindBlog &&
				c.ParentID == blogID &&
				c.OwnerUserID == user.UserID &&
				c.Description == "nice post"
		})).Return(nil)

		comment, err := svc.CreateComment(context.Background(), models.ParentKindBlog, blogID, "nice post", user)

		require.NoError(t, err)
		assert.Equal(t, models.ParentKindBlog, comment.ParentKind)
		assert.Equal(t, user.DisplayName, comment.OwnerDisplayName)
		repo.AssertExpectations(t)
		// The blog kind must resolve against the blog store only
		repo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("attaches a reply to an existing comment", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		parentID, _ := uuid.NewV4()
		repo.On("Exists", mock.Anything, parentID).Return(true, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		comment, err := svc.CreateComment(context.Background(), models.ParentKindComment, parentID, "reply", testUser())

		require.NoError(t, err)
		assert.Equal(t, models.ParentKindComment, comment.ParentKind)
		blogRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
	})

	t.Run("rejects a blog parent that does not exist", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		blogRepo.On("Exists", mock.Anything, blogID).Return(false, nil)

		_, err := svc.CreateComment(context.Background(), models.ParentKindBlog, blogID, "text", testUser())

		assert.ErrorIs(t, err, commentsErrors.ErrBlogParentNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a comment parent that does not exist", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		parentID, _ := uuid.NewV4()
		repo.On("Exists", mock.Anything, parentID).Return(false, nil)

		_, err := svc.CreateComment(context.Background(), models.ParentKindComment, parentID, "text", testUser())

		assert.ErrorIs(t, err, commentsErrors.ErrCommentParentNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown parent kind", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		parentID, _ := uuid.NewV4()
		_, err := svc.CreateComment(context.Background(), "post", parentID, "text", testUser())

		assert.ErrorIs(t, err, commentsErrors.ErrInvalidParentKind)
	})
}

func TestChildrenOf(t *testing.T) {
	t.Run("returns the direct children of a parent", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		parentID, _ := uuid.NewV4()
		childID, _ := uuid.NewV4()
		repo.On("FindChildren", mock.Anything, models.ParentKindComment, parentID).Return([]*models.Comment{
			{ID: childID, ParentKind: models.ParentKindComment, ParentID: parentID},
		}, nil)

		children, err := svc.ChildrenOf(context.Background(), models.ParentKindComment, parentID)

		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, childID, children[0].ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown parent kind", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		parentID, _ := uuid.NewV4()
		_, err := svc.ChildrenOf(context.Background(), "post", parentID)

		assert.ErrorIs(t, err, commentsErrors.ErrInvalidParentKind)
		repo.AssertNotCalled(t, "FindChildren", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetThread(t *testing.T) {
	newComment := func(parentKind models.ParentKind, parentID uuid.UUID, desc string, at time.Time) *models.Comment {
		id, _ := uuid.NewV4()
		return &models.Comment{
			ID:          id,
			Description: desc,
			ParentKind:  parentKind,
			ParentID:    parentID,
			CreatedAt:   at,
		}
	}

	t.Run("builds the nested tree level by level", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		now := time.Now()
		root := newComment(models.ParentKindBlog, blogID, "root", now)
		replyA := newComment(models.ParentKindComment, root.ID, "reply a", now.Add(time.Minute))
		replyB := newComment(models.ParentKindComment, root.ID, "reply b", now.Add(2*time.Minute))
		nested := newComment(models.ParentKindComment, replyA.ID, "nested", now.Add(3*time.Minute))

		repo.On("FindByID", mock.Anything, root.ID).Return(root, nil)
		repo.On("FindChildrenBatch", mock.Anything, []uuid.UUID{root.ID}).
			Return([]*models.Comment{replyA, replyB}, nil).Once()
		repo.On("FindChildrenBatch", mock.Anything, []uuid.UUID{replyA.ID, replyB.ID}).
			Return([]*models.Comment{nested}, nil).Once()
		repo.On("FindChildrenBatch", mock.Anything, []uuid.UUID{nested.ID}).
			Return([]*models.Comment{}, nil).Once()

		thread, err := svc.GetThread(context.Background(), root.ID)

		require.NoError(t, err)
		require.Len(t, thread.Replies, 2)
		assert.Equal(t, "reply a", thread.Replies[0].Description)
		assert.Equal(t, "reply b", thread.Replies[1].Description)
		require.Len(t, thread.Replies[0].Replies, 1)
		assert.Equal(t, "nested", thread.Replies[0].Replies[0].Description)
		assert.Empty(t, thread.Replies[1].Replies)
		repo.AssertExpectations(t)
	})

	t.Run("returns not found for a missing comment", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		commentID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, commentID).Return(nil, assert.AnError)

		_, err := svc.GetThread(context.Background(), commentID)
		assert.ErrorIs(t, err, commentsErrors.ErrCommentNotFound)
	})
}

func TestListPage(t *testing.T) {
	t.Run("returns a page with next_page set when more remain", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		blogRepo.On("Exists", mock.Anything, blogID).Return(true, nil)
		repo.On("FindTopLevelPage", mock.Anything, blogID, 2, 0).
			Return([]*models.Comment{{Description: "one"}, {Description: "two"}}, nil)
		repo.On("CountTopLevel", mock.Anything, blogID).Return(int64(5), nil)

		page, err := svc.ListPage(context.Background(), blogID, 1, 2)

		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(5), page.Total)
		require.NotNil(t, page.NextPage)
		assert.Equal(t, 2, *page.NextPage)
	})

	t.Run("last page has no next_page", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		blogRepo.On("Exists", mock.Anything, blogID).Return(true, nil)
		repo.On("FindTopLevelPage", mock.Anything, blogID, 2, 4).
			Return([]*models.Comment{{Description: "five"}}, nil)
		repo.On("CountTopLevel", mock.Anything, blogID).Return(int64(5), nil)

		page, err := svc.ListPage(context.Background(), blogID, 3, 2)

		require.NoError(t, err)
		assert.Nil(t, page.NextPage)
	})

	t.Run("falls back to the configured default page size", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		blogRepo.On("Exists", mock.Anything, blogID).Return(true, nil)
		repo.On("FindTopLevelPage", mock.Anything, blogID, 10, 0).Return([]*models.Comment{}, nil)
		repo.On("CountTopLevel", mock.Anything, blogID).Return(int64(0), nil)

		page, err := svc.ListPage(context.Background(), blogID, 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.PageSize)
		repo.AssertExpectations(t)
	})

	t.Run("returns blog not found for an unknown blog", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		blogRepo.On("Exists", mock.Anything, blogID).Return(false, nil)

		_, err := svc.ListPage(context.Background(), blogID, 1, 10)
		assert.ErrorIs(t, err, commentsErrors.ErrBlogNotFound)
	})
}

func TestDeleteComment(t *testing.T) {
	t.Run("orphan policy removes only the comment itself", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		blogID, _ := uuid.NewV4()
		commentID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, commentID).Return(&models.Comment{
			ID:         commentID,
			ParentKind: models.ParentKindBlog,
			ParentID:   blogID,
		}, nil)
		repo.On("Delete", mock.Anything, commentID).Return(true, nil)

		err := svc.DeleteComment(context.Background(), commentID)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("cascade policy removes the whole subtree in one transaction", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteCascade))

		blogID, _ := uuid.NewV4()
		rootID, _ := uuid.NewV4()
		childID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, rootID).Return(&models.Comment{
			ID:         rootID,
			ParentKind: models.ParentKindBlog,
			ParentID:   blogID,
		}, nil)
		repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		repo.On("FindChildrenBatch", mock.Anything, []uuid.UUID{rootID}).
			Return([]*models.Comment{{ID: childID, ParentKind: models.ParentKindComment, ParentID: rootID}}, nil).Once()
		repo.On("FindChildrenBatch", mock.Anything, []uuid.UUID{childID}).
			Return([]*models.Comment{}, nil).Once()
		repo.On("DeleteMany", mock.Anything, []uuid.UUID{rootID, childID}).Return(nil)

		err := svc.DeleteComment(context.Background(), rootID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("returns not found for a missing comment", func(t *testing.T) {
		repo := new(MockCommentRepository)
		blogRepo := new(MockBlogRepositoryForComments)
		svc := NewCommentService(repo, blogRepo, nil, testConfig(platformconfig.CommentDeleteOrphan))

		commentID, _ := uuid.NewV4()
		repo.On("FindByID", mock.Anything, commentID).Return(nil, assert.AnError)

		err := svc.DeleteComment(context.Background(), commentID)
		assert.ErrorIs(t, err, commentsErrors.ErrCommentNotFound)
	})
}
