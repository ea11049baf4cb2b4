// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	blogsRepository "blogapi/blogs/repository"
	commentsErrors "blogapi/comments/errors"
	"blogapi/comments/models"
	"blogapi/comments/repository"
	"blogapi/internal/cache"
	"blogapi/internal/pkg/log"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/internal/types"
)

// maxThreadDepth caps the breadth-first thread walk. A parent cycle can only
// come from a bug, and the cap turns that bug into a truncated thread
// instead of a hang.
const maxThreadDepth = 32

// CommentService defines the interface for comment operations
type CommentService interface {
	// CreateComment attaches a new comment to a blog or to another
	// comment. The parent must exist at insertion time.
	CreateComment(ctx context.Context, kind models.ParentKind, parentID uuid.UUID, description string, user *types.UserContext) (*models.Comment, error)

	// ChildrenOf returns the direct children of one parent,
	// (created_at, id) ascending
	ChildrenOf(ctx context.Context, kind models.ParentKind, parentID uuid.UUID) ([]*models.Comment, error)

	// ListBlogComments returns every top-level comment on a blog.
	// Returns ErrBlogNotFound for an unknown blog.
	ListBlogComments(ctx context.Context, blogID uuid.UUID) ([]*models.Comment, error)

	// GetThread returns the full nested thread below a comment
	GetThread(ctx context.Context, commentID uuid.UUID) (*models.ThreadNode, error)

	// ListPage returns one 1-based page of a blog's top-level comments
	ListPage(ctx context.Context, blogID uuid.UUID, page, pageSize int) (*models.CommentPage, error)

	// DeleteComment removes a comment according to the configured delete
	// policy: orphan leaves replies in place, cascade removes the subtree.
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

// commentService implements the CommentService interface
type commentService struct {
	repo         repository.CommentRepository
	blogRepo     blogsRepository.BlogRepository
	cacheService *cache.Service
	config       *platformconfig.Config
}

// NewCommentService creates a new instance of the comment service.
// cacheService may be nil, which disables caching of comment pages.
func NewCommentService(repo repository.CommentRepository, blogRepo blogsRepository.BlogRepository, cacheService *cache.Service, cfg *platformconfig.Config) CommentService {
	return &commentService{
		repo:         repo,
		blogRepo:     blogRepo,
		cacheService: cacheService,
		config:       cfg,
	}
}

// CreateComment attaches a new comment to a blog or to another comment.
// The parent is resolved by an explicit switch over the kind; each kind has
// its own store and its own not-found error.
func (s *commentService) CreateComment(ctx context.Context, kind models.ParentKind, parentID uuid.UUID, description string, user *types.UserContext) (*models.Comment, error) {
	switch kind {
	case models.ParentKindBlog:
		exists, err := s.blogRepo.Exists(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check blog existence: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", commentsErrors.ErrBlogParentNotFound, parentID.String())
		}
	case models.ParentKindComment:
		exists, err := s.repo.Exists(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check comment existence: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", commentsErrors.ErrCommentParentNotFound, parentID.String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", commentsErrors.ErrInvalidParentKind, kind)
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	comment := &models.Comment{
		ID:               commentID,
		OwnerUserID:      user.UserID,
		OwnerDisplayName: user.DisplayName,
		Description:      description,
		ParentKind:       kind,
		ParentID:         parentID,
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("%w: %v", commentsErrors.ErrDatabaseOperation, err)
	}

	if kind == models.ParentKindBlog {
		s.invalidateBlogPages(ctx, parentID)
	}

	return comment, nil
}

// ChildrenOf returns the direct children of one parent
func (s *commentService) ChildrenOf(ctx context.Context, kind models.ParentKind, parentID uuid.UUID) ([]*models.Comment, error) {
	if !models.IsValidParentKind(kind) {
		return nil, fmt.Errorf("%w: %q", commentsErrors.ErrInvalidParentKind, kind)
	}

	children, err := s.repo.FindChildren(ctx, kind, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return children, nil
}

// ListBlogComments returns every top-level comment on a blog
func (s *commentService) ListBlogComments(ctx context.Context, blogID uuid.UUID) ([]*models.Comment, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blog existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", commentsErrors.ErrBlogNotFound, blogID.String())
	}

	comments, err := s.repo.FindChildren(ctx, models.ParentKindBlog, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog comments: %w", err)
	}
	return comments, nil
}

// GetThread returns the full nested thread below a comment. The tree is
// assembled level by level with one batched child lookup per level, never by
// walking the object graph recursively.
func (s *commentService) GetThread(ctx context.Context, commentID uuid.UUID) (*models.ThreadNode, error) {
	root, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", commentsErrors.ErrCommentNotFound, commentID.String())
	}

	rootNode := &models.ThreadNode{Comment: *root, Replies: []*models.ThreadNode{}}
	nodes := map[uuid.UUID]*models.ThreadNode{root.ID: rootNode}
	frontier := []uuid.UUID{root.ID}

	for depth := 0; depth < maxThreadDepth && len(frontier) > 0; depth++ {
		children, err := s.repo.FindChildrenBatch(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("failed to walk thread: %w", err)
		}

		frontier = frontier[:0]
		for _, child := range children {
			parent, ok := nodes[child.ParentID]
			if !ok {
				continue
			}
			node := &models.ThreadNode{Comment: *child, Replies: []*models.ThreadNode{}}
			parent.Replies = append(parent.Replies, node)
			nodes[child.ID] = node
			frontier = append(frontier, child.ID)
		}
	}

	return rootNode, nil
}

// ListPage returns one 1-based page of a blog's top-level comments. Pages
// are cached per (blog, page, size) and invalidated on comment writes.
func (s *commentService) ListPage(ctx context.Context, blogID uuid.UUID, page, pageSize int) (*models.CommentPage, error) {
	exists, err := s.blogRepo.Exists(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to check blog existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", commentsErrors.ErrBlogNotFound, blogID.String())
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.config.App.DefaultPageSize
	}

	cacheKey := fmt.Sprintf("comments:%s:page:%d:size:%d", blogID.String(), page, pageSize)
	var cached models.CommentPage
	if err := s.cacheService.GetCached(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !cache.IsMiss(err) {
		log.Warn("comment page cache read failed: %v", err)
	}

	comments, err := s.repo.FindTopLevelPage(ctx, blogID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment page: %w", err)
	}

	total, err := s.repo.CountTopLevel(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	items := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		items = append(items, *c)
	}

	result := &models.CommentPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	if int64(page*pageSize) < total {
		next := page + 1
		result.NextPage = &next
	}

	if err := s.cacheService.CacheData(ctx, cacheKey, result, 0); err != nil {
		log.Warn("comment page cache write failed: %v", err)
	}

	return result, nil
}

// DeleteComment removes a comment according to the configured delete policy
func (s *commentService) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("%w: %s", commentsErrors.ErrCommentNotFound, commentID.String())
	}

	switch s.config.App.CommentDeletePolicy {
	case platformconfig.CommentDeleteCascade:
		err = s.deleteSubtree(ctx, comment)
	default:
		// Orphan policy: replies keep their parent reference and stay
		// reachable through the listing endpoints
		var deleted bool
		deleted, err = s.repo.Delete(ctx, commentID)
		if err == nil && !deleted {
			return fmt.Errorf("%w: %s", commentsErrors.ErrCommentNotFound, commentID.String())
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", commentsErrors.ErrDatabaseOperation, err)
	}

	if comment.ParentKind == models.ParentKindBlog {
		s.invalidateBlogPages(ctx, comment.ParentID)
	} else {
		// The root blog is not at hand for a nested reply, drop every page
		if err := s.cacheService.InvalidatePattern(ctx, "comments:*"); err != nil {
			log.Warn("comment cache invalidation failed: %v", err)
		}
	}

	return nil
}

// deleteSubtree removes a comment and every reply below it in one
// transaction, collecting the subtree with the same batched walk the thread
// read uses.
func (s *commentService) deleteSubtree(ctx context.Context, root *models.Comment) error {
	return s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		ids := []uuid.UUID{root.ID}
		frontier := []uuid.UUID{root.ID}

		for depth := 0; depth < maxThreadDepth && len(frontier) > 0; depth++ {
			children, err := s.repo.FindChildrenBatch(txCtx, frontier)
			if err != nil {
				return fmt.Errorf("failed to collect subtree: %w", err)
			}

			frontier = frontier[:0]
			for _, child := range children {
				ids = append(ids, child.ID)
				frontier = append(frontier, child.ID)
			}
		}

		return s.repo.DeleteMany(txCtx, ids)
	})
}

func (s *commentService) invalidateBlogPages(ctx context.Context, blogID uuid.UUID) {
	if err := s.cacheService.InvalidatePattern(ctx, fmt.Sprintf("comments:%s:*", blogID.String())); err != nil {
		log.Warn("comment cache invalidation failed: %v", err)
	}
}
