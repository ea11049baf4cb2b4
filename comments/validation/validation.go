// Copyright (c) 2025 Blogapi Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package validation

import (
	"errors"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"

	"blogapi/comments/models"
)

// ValidateCreateCommentRequest validates the payload for creating a comment
// and returns the parsed parent reference.
func ValidateCreateCommentRequest(req *models.CreateCommentRequest) (models.ParentKind, uuid.UUID, error) {
	if strings.TrimSpace(req.Description) == "" {
		return "", uuid.Nil, errors.New("description is required")
	}
	if req.RelatedID == "" {
		return "", uuid.Nil, errors.New("related_id is required")
	}

	kind := models.ParentKind(req.SourceType)
	if !models.IsValidParentKind(kind) {
		return "", uuid.Nil, fmt.Errorf("source_type must be %q or %q", models.ParentKindBlog, models.ParentKindComment)
	}

	parentID, err := uuid.FromString(req.RelatedID)
	if err != nil {
		return "", uuid.Nil, errors.New("related_id must be a valid UUID")
	}

	return kind, parentID, nil
}
