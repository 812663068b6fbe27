package services

import (
	"context"
	"time"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
	"workhub-project/tasks-service/storage"

	"github.com/google/uuid"
)

// AttachmentService stores attachment bytes through FileStorage and keeps
// the metadata record next to the task.
type AttachmentService struct {
	attachments repositories.AttachmentRepository
	tasks       repositories.TaskRepository
	files       storage.FileStorage
	automation  *AutomationService
	authorizer  auth.Authorizer
}

func NewAttachmentService(
	attachments repositories.AttachmentRepository,
	tasks repositories.TaskRepository,
	files storage.FileStorage,
	automation *AutomationService,
	authorizer auth.Authorizer,
) *AttachmentService {
	return &AttachmentService{
		attachments: attachments,
		tasks:       tasks,
		files:       files,
		automation:  automation,
		authorizer:  authorizer,
	}
}

type UploadAttachmentInput struct {
	FileName    string
	ContentType string
	Description string
	Visibility  models.AttachmentVisibility
	Data        []byte
}

func (s *AttachmentService) UploadAttachment(ctx context.Context, taskID string, input UploadAttachmentInput) (*models.TaskAttachment, error) {
	if err := s.authorizer.Authorize(ctx, "attachments", "create"); err != nil {
		return nil, err
	}
	if input.FileName == "" || len(input.Data) == 0 {
		return nil, errs.Validation("attachment.file.required")
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	path, err := s.files.Store(input.FileName, input.Data)
	if err != nil {
		return nil, err
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	attachment := &models.TaskAttachment{
		ID:          uuid.New().String(),
		TaskID:      taskID,
		FileName:    input.FileName,
		StoragePath: path,
		ContentType: input.ContentType,
		SizeBytes:   int64(len(input.Data)),
		Visibility:  visibility,
		Description: input.Description,
		UploadedBy:  auth.CurrentEmployeeID(ctx),
		CreatedAt:   time.Now(),
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		// Keep storage consistent with the record set.
		if cleanupErr := s.files.Delete(path); cleanupErr != nil {
			logging.Logger.Warnf("Event ID: ATTACHMENT_CLEANUP_FAILED, Description: Could not remove stored file %s after failed insert: %v", path, cleanupErr)
		}
		return nil, err
	}

	s.automation.OnTaskAttachmentAdded(ctx, task, attachment)
	return attachment, nil
}

func (s *AttachmentService) DeleteAttachment(ctx context.Context, attachmentID string) error {
	if err := s.authorizer.Authorize(ctx, "attachments", "delete"); err != nil {
		return err
	}

	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		return err
	}
	if err := s.files.Delete(attachment.StoragePath); err != nil {
		logging.Logger.Warnf("Event ID: ATTACHMENT_FILE_DELETE_FAILED, Description: Attachment %s deleted but stored file %s remains: %v", attachmentID, attachment.StoragePath, err)
	}
	return nil
}

func (s *AttachmentService) GetAttachmentsByTask(ctx context.Context, taskID string) ([]*models.TaskAttachment, error) {
	if err := s.authorizer.Authorize(ctx, "attachments", "read"); err != nil {
		return nil, err
	}
	return s.attachments.GetByTask(ctx, taskID)
}
