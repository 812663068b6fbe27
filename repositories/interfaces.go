package repositories

import (
	"context"
	"time"

	"workhub-project/tasks-service/models"
)

// TaskRepository owns persisted tasks and their relationship lookups.
// GetByID returns a NotFound error for unknown ids.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	GetByParent(ctx context.Context, parentTaskID string) ([]*models.Task, error)
	CountIncompleteSubtasks(ctx context.Context, parentTaskID string) (int, error)
	GetByAssignee(ctx context.Context, organizationID, employeeID string) ([]*models.Task, error)
	GetByProject(ctx context.Context, projectID string) ([]*models.Task, error)
	GetByOrganization(ctx context.Context, organizationID string) ([]*models.Task, error)
	GetDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error)
	GetOverdue(ctx context.Context, now time.Time) ([]*models.Task, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.TaskComment) error
	GetByID(ctx context.Context, id string) (*models.TaskComment, error)
	GetByTask(ctx context.Context, taskID string) ([]*models.TaskComment, error)
	GetByParentComment(ctx context.Context, parentCommentID string) ([]*models.TaskComment, error)
	Delete(ctx context.Context, id string) error
	DeleteByTask(ctx context.Context, taskID string) error
}

// DependencyRepository stores the directed depends-on graph. Nodes are
// created and removed alongside tasks; edges carry their own identity.
type DependencyRepository interface {
	EnsureTaskNode(ctx context.Context, taskID string) error
	RemoveTaskNode(ctx context.Context, taskID string) error
	Create(ctx context.Context, dep *models.TaskDependency) error
	GetByID(ctx context.Context, edgeID string) (*models.TaskDependency, error)
	DeleteByID(ctx context.Context, edgeID string) error
	Exists(ctx context.Context, taskID, dependsOnID string) (bool, error)
	CreatesCycle(ctx context.Context, taskID, dependsOnID string) (bool, error)
	GetByTask(ctx context.Context, taskID string) ([]models.TaskDependency, error)
	GetDependents(ctx context.Context, taskID string) ([]models.TaskDependency, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.TaskTag) error
	GetByID(ctx context.Context, id string) (*models.TaskTag, error)
	GetByOrganization(ctx context.Context, organizationID string) ([]*models.TaskTag, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.TaskAttachment) error
	GetByID(ctx context.Context, id string) (*models.TaskAttachment, error)
	GetByTask(ctx context.Context, taskID string) ([]*models.TaskAttachment, error)
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID string) error
	Delete(ctx context.Context, recipientID, notificationID string) error
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]*models.Employee, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type ProjectRepository interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}
