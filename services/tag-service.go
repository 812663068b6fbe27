package services

import (
	"context"
	"strings"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"

	"github.com/google/uuid"
)

// TagService manages the organization-scoped tag catalog.
type TagService struct {
	tags       repositories.TagRepository
	authorizer auth.Authorizer
}

func NewTagService(tags repositories.TagRepository, authorizer auth.Authorizer) *TagService {
	return &TagService{tags: tags, authorizer: authorizer}
}

func (s *TagService) CreateTag(ctx context.Context, name, color string) (*models.TaskTag, error) {
	if err := s.authorizer.Authorize(ctx, "tags", "create"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.Validation("tag.name.required")
	}

	tag := &models.TaskTag{
		ID:             uuid.New().String(),
		OrganizationID: auth.CurrentOrganizationID(ctx),
		Name:           name,
		Color:          color,
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) GetTagsByOrganization(ctx context.Context) ([]*models.TaskTag, error) {
	if err := s.authorizer.Authorize(ctx, "tags", "read"); err != nil {
		return nil, err
	}
	return s.tags.GetByOrganization(ctx, auth.CurrentOrganizationID(ctx))
}

func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.authorizer.Authorize(ctx, "tags", "delete"); err != nil {
		return err
	}
	return s.tags.Delete(ctx, tagID)
}
