package services

import (
	"context"
	"fmt"
	"time"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
	"workhub-project/tasks-service/storage"
	"workhub-project/tasks-service/validators"

	"github.com/google/uuid"
)

// TaskService sequences validation, persistence, aggregation and automation
// for every mutating task operation. It is the only component that touches
// more than one collaborator per call; persistence always completes before
// any automation event is dispatched.
type TaskService struct {
	tasks        repositories.TaskRepository
	employees    repositories.EmployeeRepository
	projects     repositories.ProjectRepository
	tags         repositories.TagRepository
	comments     repositories.CommentRepository
	attachments  repositories.AttachmentRepository
	graph        repositories.DependencyRepository
	files        storage.FileStorage
	validator    *validators.TaskValidator
	progress     *ProgressService
	dependencies *DependencyService
	automation   *AutomationService
	authorizer   auth.Authorizer
}

func NewTaskService(
	tasks repositories.TaskRepository,
	employees repositories.EmployeeRepository,
	projects repositories.ProjectRepository,
	tags repositories.TagRepository,
	comments repositories.CommentRepository,
	attachments repositories.AttachmentRepository,
	graph repositories.DependencyRepository,
	files storage.FileStorage,
	validator *validators.TaskValidator,
	progress *ProgressService,
	dependencies *DependencyService,
	automation *AutomationService,
	authorizer auth.Authorizer,
) *TaskService {
	return &TaskService{
		tasks:        tasks,
		employees:    employees,
		projects:     projects,
		tags:         tags,
		comments:     comments,
		attachments:  attachments,
		graph:        graph,
		files:        files,
		validator:    validator,
		progress:     progress,
		dependencies: dependencies,
		automation:   automation,
		authorizer:   authorizer,
	}
}

type CreateTaskInput struct {
	ProjectID      string              `json:"projectId"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority"`
	StartDate      *time.Time          `json:"startDate"`
	DueDate        *time.Time          `json:"dueDate"`
	EstimatedHours float64             `json:"estimatedHours"`
	ParentTaskID   string              `json:"parentTaskId"`
	AssigneeIDs    []string            `json:"assigneeIds"`
	TagIDs         []string            `json:"tagIds"`
}

// UpdateTaskInput is a partial patch: only non-nil fields are applied. A
// non-nil assignee or tag list fully replaces the prior set.
type UpdateTaskInput struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	StartDate      *time.Time `json:"startDate"`
	DueDate        *time.Time `json:"dueDate"`
	EstimatedHours *float64   `json:"estimatedHours"`
	ActualHours    *float64   `json:"actualHours"`
	OwnerID        *string    `json:"ownerId"`
	AssigneeIDs    []string   `json:"assigneeIds"`
	TagIDs         []string   `json:"tagIds"`
}

func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "create"); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:             uuid.New().String(),
		OrganizationID: auth.CurrentOrganizationID(ctx),
		ProjectID:      input.ProjectID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.StatusBacklog,
		Priority:       input.Priority,
		StartDate:      input.StartDate,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		OwnerID:        auth.CurrentEmployeeID(ctx),
		ParentTaskID:   input.ParentTaskID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if err := s.validator.ValidateCreate(task); err != nil {
		return nil, err
	}

	exists, err := s.projects.ExistsByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return nil, errs.NotFound("project.notFound", input.ProjectID)
	}

	if input.ParentTaskID != "" {
		if _, err := s.tasks.GetByID(ctx, input.ParentTaskID); err != nil {
			return nil, err
		}
	}

	task.AssigneeIDs, err = s.resolveAssignees(ctx, input.AssigneeIDs)
	if err != nil {
		return nil, err
	}
	task.TagIDs, err = s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	// The graph node is best-effort here; dependency creation re-ensures it.
	if err := s.graph.EnsureTaskNode(ctx, task.ID); err != nil {
		logging.Logger.Warnf("Event ID: GRAPH_NODE_ENSURE_FAILED, Description: Task %s created but graph node could not be ensured: %v", task.ID, err)
	}

	s.automation.OnTaskCreated(ctx, task)
	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created in project %s", task.ID, task.ProjectID)
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return nil, err
	}
	return s.tasks.GetByID(ctx, id)
}

func (s *TaskService) GetTasksByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return nil, err
	}
	return s.tasks.GetByProject(ctx, projectID)
}

func (s *TaskService) GetTasksByOrganization(ctx context.Context, organizationID string) ([]*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return nil, err
	}
	return s.tasks.GetByOrganization(ctx, organizationID)
}

// GetMyTasks returns the tasks the calling employee is assigned to. The
// caller is resolved from the request context, not a parameter.
func (s *TaskService) GetMyTasks(ctx context.Context, organizationID string) ([]*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return nil, err
	}
	employeeID := auth.CurrentEmployeeID(ctx)
	if employeeID == "" {
		return nil, errs.Forbidden("auth.missingEmployee")
	}
	return s.tasks.GetByAssignee(ctx, organizationID, employeeID)
}

// HasActiveTasks reports whether a project still has tasks that are not done.
func (s *TaskService) HasActiveTasks(ctx context.Context, projectID string) (bool, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return false, err
	}
	tasks, err := s.tasks.GetByProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	for _, task := range tasks {
		if task.Status != models.StatusDone {
			return true, nil
		}
	}
	return false, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "update"); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := s.validator.ValidateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if err := s.validator.ValidateDates(task); err != nil {
		return nil, err
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = *input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = *input.ActualHours
	}
	if input.OwnerID != nil {
		exists, err := s.employees.ExistsByID(ctx, *input.OwnerID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errs.NotFound("employee.notFound", *input.OwnerID)
		}
		task.OwnerID = *input.OwnerID
	}
	if input.AssigneeIDs != nil {
		task.AssigneeIDs, err = s.resolveAssignees(ctx, input.AssigneeIDs)
		if err != nil {
			return nil, err
		}
	}
	if input.TagIDs != nil {
		task.TagIDs, err = s.resolveTags(ctx, input.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. With deleteSubtasks the entire subtask tree is
// collected iteratively and removed child-first; otherwise direct children
// are detached and survive as top-level tasks. Comments, attachments and the
// graph node cascade with each removed task.
func (s *TaskService) DeleteTask(ctx context.Context, id string, deleteSubtasks bool) error {
	if err := s.authorizer.Authorize(ctx, "tasks", "delete"); err != nil {
		return err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if deleteSubtasks {
		order, err := s.collectSubtree(ctx, id)
		if err != nil {
			return err
		}
		for i := len(order) - 1; i >= 0; i-- {
			if err := s.removeTask(ctx, order[i]); err != nil {
				return err
			}
		}
	} else {
		children, err := s.tasks.GetByParent(ctx, id)
		if err != nil {
			return err
		}
		for _, child := range children {
			child.ParentTaskID = ""
			child.UpdatedAt = time.Now()
			if err := s.tasks.Update(ctx, child); err != nil {
				return err
			}
		}
		if err := s.removeTask(ctx, id); err != nil {
			return err
		}
	}

	s.automation.OnTaskDeleted(ctx, task)
	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted (deleteSubtasks=%v)", id, deleteSubtasks)
	return nil
}

// collectSubtree walks the parent/child adjacency with an explicit queue so
// deep or cyclic hierarchies cannot grow the call stack. The result is in
// breadth-first order, root first.
func (s *TaskService) collectSubtree(ctx context.Context, rootID string) ([]string, error) {
	visited := map[string]bool{rootID: true}
	order := []string{rootID}
	queue := []string{rootID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		children, err := s.tasks.GetByParent(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			order = append(order, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return order, nil
}

func (s *TaskService) removeTask(ctx context.Context, id string) error {
	if err := s.comments.DeleteByTask(ctx, id); err != nil {
		return err
	}

	attachments, err := s.attachments.GetByTask(ctx, id)
	if err != nil {
		return err
	}
	for _, attachment := range attachments {
		if err := s.files.Delete(attachment.StoragePath); err != nil {
			logging.Logger.Warnf("Event ID: ATTACHMENT_FILE_DELETE_FAILED, Description: Could not delete stored file %s: %v", attachment.StoragePath, err)
		}
		if err := s.attachments.Delete(ctx, attachment.ID); err != nil {
			return err
		}
	}

	if err := s.graph.RemoveTaskNode(ctx, id); err != nil {
		logging.Logger.Warnf("Event ID: GRAPH_NODE_REMOVE_FAILED, Description: Task %s deleted but graph node could not be removed: %v", id, err)
	}

	return s.tasks.Delete(ctx, id)
}

// UpdateTaskStatus validates transition legality before anything is
// persisted. Moving into DONE stamps the completion time, recomputes this
// task's own progress and completes the parent when it was the last open
// subtask.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, newStatus models.TaskStatus) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "status"); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStatusTransition(task.Status, newStatus); err != nil {
		return nil, err
	}
	if newStatus == models.StatusInProgress {
		unresolved, err := s.dependencies.HasUnresolvedDependencies(ctx, id)
		if err != nil {
			return nil, err
		}
		if unresolved {
			return nil, errs.Validation("task.blockedByDependencies", id)
		}
	}

	oldStatus := task.Status
	now := time.Now()
	task.Status = newStatus
	task.UpdatedAt = now
	if newStatus == models.StatusDone {
		task.CompletedAt = &now
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if newStatus == models.StatusDone {
		if updated, err := s.progress.Recalculate(ctx, task.ID); err == nil {
			task = updated
		} else {
			logging.Logger.Errorf("Event ID: PROGRESS_RECALC_FAILED, Description: Failed to recalculate progress for task %s: %v", task.ID, err)
		}
		s.automation.OnTaskCompleted(ctx, task)
	}
	s.automation.OnTaskStatusChanged(ctx, task, oldStatus, newStatus)

	if task.ParentTaskID != "" {
		if _, err := s.progress.Recalculate(ctx, task.ParentTaskID); err != nil {
			logging.Logger.Errorf("Event ID: PARENT_PROGRESS_RECALC_FAILED, Description: Failed to recalculate parent %s of task %s: %v", task.ParentTaskID, task.ID, err)
		}
	}

	logging.Logger.Infof("Event ID: TASK_STATUS_CHANGED, Description: Task %s moved from %s to %s", task.ID, oldStatus, newStatus)
	return task, nil
}

func (s *TaskService) UpdateTaskPriority(ctx context.Context, id string, newPriority models.TaskPriority) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "priority"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidatePriority(newPriority); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPriority := task.Priority
	task.Priority = newPriority
	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.automation.OnTaskPriorityChanged(ctx, task, oldPriority, newPriority)
	return task, nil
}

// AssignUsers replaces the assignee set. The empty list is rejected and
// leaves the task untouched. Every member of the new set is notified, not
// just the additions.
func (s *TaskService) AssignUsers(ctx context.Context, taskID string, employeeIDs []string) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "assign"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAssignees(employeeIDs); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveAssignees(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, errs.NotFound("assignees.notFound")
	}

	task.AssigneeIDs = resolved
	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	for _, employeeID := range resolved {
		s.automation.OnTaskAssigned(ctx, task, employeeID)
	}
	return task, nil
}

func (s *TaskService) UnassignUser(ctx context.Context, taskID, employeeID string) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "assign"); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.HasAssignee(employeeID) {
		return nil, errs.NotFound("assignee.notFound", employeeID)
	}

	remaining := make([]string, 0, len(task.AssigneeIDs)-1)
	for _, id := range task.AssigneeIDs {
		if id != employeeID {
			remaining = append(remaining, id)
		}
	}
	task.AssigneeIDs = remaining
	task.UpdatedAt = time.Now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_UNASSIGNED, Description: Employee %s removed from task %s", employeeID, taskID)
	return task, nil
}

func (s *TaskService) RecalculateTaskProgress(ctx context.Context, taskID string) (*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "update"); err != nil {
		return nil, err
	}
	return s.progress.Recalculate(ctx, taskID)
}

// AddDependency and RemoveDependency are convenience passthroughs to the
// dependency graph manager.
func (s *TaskService) AddDependency(ctx context.Context, taskID, dependsOnID, dependencyType string) (*models.TaskDependency, error) {
	return s.dependencies.CreateDependency(ctx, taskID, dependsOnID, dependencyType)
}

func (s *TaskService) RemoveDependency(ctx context.Context, edgeID string) error {
	return s.dependencies.DeleteDependency(ctx, edgeID)
}

// CheckDueSoonTasks notifies about open tasks due within the window. An
// external scheduler is expected to call this periodically.
func (s *TaskService) CheckDueSoonTasks(ctx context.Context, window time.Duration) ([]*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return nil, err
	}
	now := time.Now()
	tasks, err := s.tasks.GetDueBetween(ctx, now, now.Add(window))
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		s.automation.OnTaskDueSoon(ctx, task)
	}
	return tasks, nil
}

func (s *TaskService) CheckOverdueTasks(ctx context.Context) ([]*models.Task, error) {
	if err := s.authorizer.Authorize(ctx, "tasks", "read"); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.GetOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		s.automation.OnTaskOverdue(ctx, task)
	}
	return tasks, nil
}

// resolveAssignees looks up the requested employees and silently drops
// unknown ids.
func (s *TaskService) resolveAssignees(ctx context.Context, employeeIDs []string) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	employees, err := s.employees.GetByIDs(ctx, dedupe(employeeIDs))
	if err != nil {
		return nil, err
	}
	resolved := make([]string, 0, len(employees))
	for _, employee := range employees {
		resolved = append(resolved, employee.ID)
	}
	return resolved, nil
}

// resolveTags drops tag ids that do not exist, mirroring assignee handling.
func (s *TaskService) resolveTags(ctx context.Context, tagIDs []string) ([]string, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	resolved := make([]string, 0, len(tagIDs))
	for _, tagID := range dedupe(tagIDs) {
		exists, err := s.tags.ExistsByID(ctx, tagID)
		if err != nil {
			return nil, err
		}
		if exists {
			resolved = append(resolved, tagID)
		}
	}
	return resolved, nil
}
