package services

import (
	"testing"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAttachment(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "", "emp-2")

	attachment, err := f.attachmentSvc.UploadAttachment(f.memberCtx, "t1", UploadAttachmentInput{
		FileName:    "spec.pdf",
		ContentType: "application/pdf",
		Data:        []byte("pdf bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", attachment.TaskID)
	assert.Equal(t, "emp-1", attachment.UploadedBy)
	assert.Equal(t, int64(9), attachment.SizeBytes)
	assert.Equal(t, models.VisibilityPrivate, attachment.Visibility)

	assert.Contains(t, f.files.Files, attachment.StoragePath)
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskAttachmentAdded))
}

func TestUploadAttachmentRequiresFile(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	_, err := f.attachmentSvc.UploadAttachment(f.memberCtx, "t1", UploadAttachmentInput{FileName: "empty.txt"})
	require.Error(t, err)
	assert.Equal(t, "attachment.file.required", errs.KeyOf(err))
}

func TestUploadAttachmentUnknownTask(t *testing.T) {
	f := newFixture()

	_, err := f.attachmentSvc.UploadAttachment(f.memberCtx, "ghost", UploadAttachmentInput{
		FileName: "spec.pdf",
		Data:     []byte("x"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Empty(t, f.files.Files)
}

func TestDeleteAttachmentRemovesStoredFile(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	attachment, err := f.attachmentSvc.UploadAttachment(f.managerCtx, "t1", UploadAttachmentInput{
		FileName: "notes.txt",
		Data:     []byte("notes"),
	})
	require.NoError(t, err)

	require.NoError(t, f.attachmentSvc.DeleteAttachment(f.managerCtx, attachment.ID))

	_, err = f.attachments.GetByID(f.managerCtx, attachment.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.NotContains(t, f.files.Files, attachment.StoragePath)
}

func TestMemberCannotDeleteAttachments(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	attachment, err := f.attachmentSvc.UploadAttachment(f.managerCtx, "t1", UploadAttachmentInput{
		FileName: "notes.txt",
		Data:     []byte("notes"),
	})
	require.NoError(t, err)

	err = f.attachmentSvc.DeleteAttachment(f.memberCtx, attachment.ID)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}
