package services

import (
	"context"
	"time"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/testutil"
	"workhub-project/tasks-service/validators"

	"github.com/google/uuid"
)

// fixture wires every service against in-memory stores, seeded with one
// manager, two members and one project.
type fixture struct {
	tasks         *testutil.MemoryTaskRepository
	comments      *testutil.MemoryCommentRepository
	graph         *testutil.MemoryDependencyRepository
	tags          *testutil.MemoryTagRepository
	attachments   *testutil.MemoryAttachmentRepository
	notifications *testutil.MemoryNotificationRepository
	employees     *testutil.MemoryEmployeeRepository
	projects      *testutil.MemoryProjectRepository
	files         *testutil.MemoryFileStorage
	mailer        *testutil.RecordingMailer

	automation      *AutomationService
	progress        *ProgressService
	dependencies    *DependencyService
	commentSvc      *CommentService
	taskSvc         *TaskService
	attachmentSvc   *AttachmentService
	tagSvc          *TagService
	notificationSvc *NotificationService

	managerCtx context.Context
	memberCtx  context.Context
}

func newFixture() *fixture {
	f := &fixture{
		tasks:    testutil.NewMemoryTaskRepository(),
		comments: testutil.NewMemoryCommentRepository(),
		graph:    testutil.NewMemoryDependencyRepository(),
		tags:     testutil.NewMemoryTagRepository(),
		attachments: testutil.NewMemoryAttachmentRepository(),
		notifications: testutil.NewMemoryNotificationRepository(),
		employees: testutil.NewMemoryEmployeeRepository(
			models.Employee{ID: "mgr-1", OrganizationID: "org-1", Name: "Mila", Email: "mila@example.com", Role: "manager"},
			models.Employee{ID: "emp-1", OrganizationID: "org-1", Name: "Petar", Email: "petar@example.com", Role: "member"},
			models.Employee{ID: "emp-2", OrganizationID: "org-1", Name: "Jovana", Email: "jovana@example.com", Role: "member"},
		),
		projects: testutil.NewMemoryProjectRepository(
			models.Project{ID: "proj-1", OrganizationID: "org-1", Name: "Launch"},
		),
		files:  testutil.NewMemoryFileStorage(),
		mailer: &testutil.RecordingMailer{},
	}

	validator := validators.NewTaskValidator()
	authorizer := auth.NewRoleAuthorizer()

	f.automation = NewAutomationService(f.notifications, f.employees, f.mailer)
	f.progress = NewProgressService(f.tasks, f.automation)
	f.dependencies = NewDependencyService(f.graph, f.tasks, validator, f.automation, authorizer)
	f.commentSvc = NewCommentService(f.comments, f.tasks, validator, f.automation, authorizer)
	f.taskSvc = NewTaskService(
		f.tasks, f.employees, f.projects, f.tags, f.comments, f.attachments,
		f.graph, f.files, validator, f.progress, f.dependencies, f.automation, authorizer,
	)
	f.attachmentSvc = NewAttachmentService(f.attachments, f.tasks, f.files, f.automation, authorizer)
	f.tagSvc = NewTagService(f.tags, authorizer)
	f.notificationSvc = NewNotificationService(f.notifications, authorizer)

	f.managerCtx = testutil.ContextFor("mgr-1", "org-1", "manager")
	f.memberCtx = testutil.ContextFor("emp-1", "org-1", "member")
	return f
}

// seedTask inserts a task directly into the store, bypassing CreateTask.
func (f *fixture) seedTask(id, title string, status models.TaskStatus, parentID string, assignees ...string) *models.Task {
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now()
	task := &models.Task{
		ID:             id,
		OrganizationID: "org-1",
		ProjectID:      "proj-1",
		Title:          title,
		Status:         status,
		Priority:       models.PriorityMedium,
		OwnerID:        "mgr-1",
		ParentTaskID:   parentID,
		AssigneeIDs:    assignees,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := f.tasks.Create(context.Background(), task); err != nil {
		panic(err)
	}
	if err := f.graph.EnsureTaskNode(context.Background(), id); err != nil {
		panic(err)
	}
	return task
}
