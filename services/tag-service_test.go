package services

import (
	"testing"

	"workhub-project/tasks-service/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTagScopedToOrganization(t *testing.T) {
	f := newFixture()

	tag, err := f.tagSvc.CreateTag(f.managerCtx, "backend", "#ff8800")
	require.NoError(t, err)
	assert.Equal(t, "org-1", tag.OrganizationID)
	assert.NotEmpty(t, tag.ID)

	tags, err := f.tagSvc.GetTagsByOrganization(f.managerCtx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "backend", tags[0].Name)
}

func TestCreateTagRequiresName(t *testing.T) {
	f := newFixture()

	_, err := f.tagSvc.CreateTag(f.managerCtx, "  ", "#fff")
	require.Error(t, err)
	assert.Equal(t, "tag.name.required", errs.KeyOf(err))
}

func TestDeleteTag(t *testing.T) {
	f := newFixture()

	tag, err := f.tagSvc.CreateTag(f.managerCtx, "backend", "#ff8800")
	require.NoError(t, err)

	require.NoError(t, f.tagSvc.DeleteTag(f.managerCtx, tag.ID))

	err = f.tagSvc.DeleteTag(f.managerCtx, tag.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestMemberCannotCreateTags(t *testing.T) {
	f := newFixture()

	_, err := f.tagSvc.CreateTag(f.memberCtx, "backend", "#fff")
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}
