// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"errors"
	"strings"

	"blogapi/blogs/models"
)

const maxTitleLength = 200

// ValidateCreateBlogRequest validates the payload for creating a blog
func ValidateCreateBlogRequest(req *models.CreateBlogRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errors.New("title is required")
	}
	if len(req.Title) > maxTitleLength {
		return errors.New("title must be at most 200 characters")
	}
	if strings.TrimSpace(req.Description) == "" {
		return errors.New("description is required")
	}
	return nil
}

// ValidateUpdateBlogRequest validates the payload for a partial blog update.
// At least one field must be present.
func ValidateUpdateBlogRequest(req *models.UpdateBlogRequest) error {
	if req.Title == nil && req.Description == nil {
		return errors.New("nothing to update")
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return errors.New("title cannot be empty")
		}
		if len(*req.Title) > maxTitleLength {
			return errors.New("title must be at most 200 characters")
		}
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return errors.New("description cannot be empty")
	}
	return nil
}
