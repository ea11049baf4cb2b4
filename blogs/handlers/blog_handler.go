// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/gorilla/schema"

	"blogapi/blogs/errors"
	"blogapi/blogs/models"
	"blogapi/blogs/services"
	"blogapi/blogs/validation"
	commentsModels "blogapi/comments/models"
	"blogapi/internal/types"
)

// queryDecoder decodes URL query strings into tagged structs. Unknown keys
// are ignored so clients can send extra parameters freely.
var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// decodeQuery fills dst from the request's query string
func decodeQuery(c *fiber.Ctx, dst interface{}) error {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return queryDecoder.Decode(dst, values)
}

// BlogHandler handles all blog-related HTTP requests
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler creates a new BlogHandler with injected dependencies
func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreateBlog handles blog creation
// Endpoint: POST /blogs
func (h *BlogHandler) CreateBlog(c *fiber.Ctx) error {
	var req models.CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validation.ValidateCreateBlogRequest(&req); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	blog, err := h.blogService.CreateBlog(c.Context(), &req, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(blog)
}

// GetBlog handles retrieving a single blog
// Endpoint: GET /blogs/:blogId
func (h *BlogHandler) GetBlog(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	blog, err := h.blogService.GetBlog(c.Context(), blogID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(blog)
}

// ListBlogs handles the paginated blog listing with optional search
// Endpoint: GET /blogs?q=...&page=1&limit=10
func (h *BlogHandler) ListBlogs(c *fiber.Ctx) error {
	var query models.ListBlogsQuery
	if err := decodeQuery(c, &query); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	resp, err := h.blogService.ListBlogs(c.Context(), &query)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(resp)
}

// UpdateBlog handles partial blog updates by the author
// Endpoint: PUT /blogs/:blogId
func (h *BlogHandler) UpdateBlog(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	var req models.UpdateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	if err := validation.ValidateUpdateBlogRequest(&req); err != nil {
		return errors.HandleValidationError(c, err.Error())
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	blog, err := h.blogService.UpdateBlog(c.Context(), blogID, &req, &user)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(blog)
}

// DeleteBlog handles blog deletion by the author or an admin
// Endpoint: DELETE /blogs/:blogId
func (h *BlogHandler) DeleteBlog(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.blogService.DeleteBlog(c.Context(), blogID, &user); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Blog with id %s has been deleted", blogID.String()),
	})
}

// MostPopularBlogs handles the net-score ranking of all blogs
// Endpoint: GET /most-popular-blogs
func (h *BlogHandler) MostPopularBlogs(c *fiber.Ctx) error {
	ranked, err := h.blogService.MostPopularBlogs(c.Context())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"items": ranked,
		"total": len(ranked),
	})
}

// GetBlogDetail handles the blog detail view with an embedded comment page
// Endpoint: GET /blog-detail/:blogId?comments_page=1&comments_page_size=10
func (h *BlogHandler) GetBlogDetail(c *fiber.Ctx) error {
	blogID, err := uuid.FromString(c.Params("blogId"))
	if err != nil {
		return errors.HandleInvalidRequestError(c, "blogId must be a valid UUID")
	}

	var query commentsModels.ListCommentsQuery
	if err := decodeQuery(c, &query); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}

	detail, err := h.blogService.GetBlogDetail(c.Context(), blogID, query.CommentsPage, query.CommentsPageSize)
	if err != nil {
		if goerrors.Is(err, errors.ErrBlogNotFound) {
			return c.Status(http.StatusNotFound).JSON(errors.ErrorResponse{
				Code:    errors.CodeBlogNotFound,
				Message: fmt.Sprintf("No Blog found with id %s.", blogID.String()),
			})
		}
		return errors.HandleServiceError(c, err)
	}

	return c.JSON(detail)
}
