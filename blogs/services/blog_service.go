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
	"strings"

	uuid "github.com/gofrs/uuid"

	blogsErrors "blogapi/blogs/errors"
	"blogapi/blogs/models"
	"blogapi/blogs/repository"
	commentsServices "blogapi/comments/services"
	"blogapi/internal/cache"
	"blogapi/internal/pkg/log"
	platformconfig "blogapi/internal/platform/config"
	"blogapi/internal/types"
	votesRepository "blogapi/votes/repository"
)

const popularBlogsCacheKey = "blogs:popular"

// blogService implements the BlogService interface
type blogService struct {
	repo           repository.BlogRepository
	voteRepo       votesRepository.VoteRepository
	commentService commentsServices.CommentService
	cacheService   *cache.Service
	config         *platformconfig.Config
}

// NewBlogService creates a new instance of the blog service.
// cacheService may be nil, which disables caching of the popular ranking.
func NewBlogService(repo repository.BlogRepository, voteRepo votesRepository.VoteRepository, commentService commentsServices.CommentService, cacheService *cache.Service, cfg *platformconfig.Config) BlogService {
	return &blogService{
		repo:           repo,
		voteRepo:       voteRepo,
		commentService: commentService,
		cacheService:   cacheService,
		config:         cfg,
	}
}

// CreateBlog creates a new blog owned by the caller
func (s *blogService) CreateBlog(ctx context.Context, req *models.CreateBlogRequest, user *types.UserContext) (*models.Blog, error) {
	blogID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate blog ID: %w", err)
	}

	blog := &models.Blog{
		ID:               blogID,
		Title:            req.Title,
		Description:      req.Description,
		OwnerUserID:      user.UserID,
		OwnerDisplayName: user.DisplayName,
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		log.Error("failed to create blog for user %s: %v", user.UserID.String(), err)
		return nil, fmt.Errorf("%w: %v", blogsErrors.ErrDatabaseOperation, err)
	}

	s.invalidatePopular(ctx)

	return blog, nil
}

// GetBlog retrieves a single blog by ID
func (s *blogService) GetBlog(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", blogsErrors.ErrBlogNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// ListBlogs returns a page of blogs, newest first
func (s *blogService) ListBlogs(ctx context.Context, query *models.ListBlogsQuery) (*models.BlogListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = s.config.App.DefaultPageSize
	}

	filter := repository.BlogFilter{}
	if q := strings.TrimSpace(query.Q); q != "" {
		filter.SearchText = &q
	}

	blogs, err := s.repo.Find(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count blogs: %w", err)
	}

	items := make([]models.Blog, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, *b)
	}

	return &models.BlogListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// UpdateBlog applies a partial update after checking ownership
func (s *blogService) UpdateBlog(ctx context.Context, id uuid.UUID, req *models.UpdateBlogRequest, user *types.UserContext) (*models.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", blogsErrors.ErrBlogNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	if blog.OwnerUserID != user.UserID {
		return nil, blogsErrors.ErrNotBlogAuthor
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", blogsErrors.ErrBlogNotFound, id.String())
		}
		return nil, fmt.Errorf("%w: %v", blogsErrors.ErrDatabaseOperation, err)
	}

	s.invalidatePopular(ctx)

	return blog, nil
}

// DeleteBlog removes a blog after checking ownership. Admins may delete
// any blog.
func (s *blogService) DeleteBlog(ctx context.Context, id uuid.UUID, user *types.UserContext) error {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", blogsErrors.ErrBlogNotFound, id.String())
		}
		return fmt.Errorf("failed to get blog: %w", err)
	}

	if blog.OwnerUserID != user.UserID && !user.IsAdmin() {
		return blogsErrors.ErrNotBlogAuthor
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", blogsErrors.ErrDatabaseOperation, err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", blogsErrors.ErrBlogNotFound, id.String())
	}

	s.invalidatePopular(ctx)

	return nil
}

// MostPopularBlogs returns every blog ordered by net vote score. The full
// ranking is cached as one value since any vote changes the whole ordering.
func (s *blogService) MostPopularBlogs(ctx context.Context) ([]*models.RankedBlog, error) {
	var cached []*models.RankedBlog
	if err := s.cacheService.GetCached(ctx, popularBlogsCacheKey, &cached); err == nil {
		return cached, nil
	} else if !cache.IsMiss(err) {
		log.Warn("popular blogs cache read failed: %v", err)
	}

	ranked, err := s.repo.RankBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to rank blogs: %w", err)
	}

	if err := s.cacheService.CacheData(ctx, popularBlogsCacheKey, ranked, 0); err != nil {
		log.Warn("popular blogs cache write failed: %v", err)
	}

	return ranked, nil
}

// GetBlogDetail returns the blog together with its net vote score and one
// page of its top-level comments. The comment page parameters are the
// caller's; the comment service applies the configured defaults.
func (s *blogService) GetBlogDetail(ctx context.Context, id uuid.UUID, commentsPage, commentsPageSize int) (*models.BlogDetailResponse, error) {
	blog, err := s.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	score, err := s.voteRepo.NetScore(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to compute net score: %w", err)
	}

	page, err := s.commentService.ListPage(ctx, id, commentsPage, commentsPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment page: %w", err)
	}

	return &models.BlogDetailResponse{
		Blog:     *blog,
		NetScore: score,
		Comments: *page,
	}, nil
}

func (s *blogService) invalidatePopular(ctx context.Context) {
	if err := s.cacheService.Invalidate(ctx, popularBlogsCacheKey); err != nil {
		log.Warn("popular blogs cache invalidation failed: %v", err)
	}
}
