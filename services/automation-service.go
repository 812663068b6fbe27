package services

import (
	"context"
	"fmt"
	"time"

	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
	"workhub-project/tasks-service/utils"

	"github.com/sony/gobreaker"
)

// Lifecycle events consumed only to trigger notifications.
const (
	EventTaskCreated         = "TASK_CREATED"
	EventTaskAssigned        = "TASK_ASSIGNED"
	EventTaskStatusChanged   = "TASK_STATUS_CHANGED"
	EventTaskCompleted       = "TASK_COMPLETED"
	EventSubtaskAllDone      = "SUBTASK_ALL_DONE"
	EventTaskCommentAdded    = "TASK_COMMENT_ADDED"
	EventTaskAttachmentAdded = "TASK_ATTACHMENT_ADDED"
	EventTaskPriorityChanged = "TASK_PRIORITY_CHANGED"
	EventTaskDeleted         = "TASK_DELETED"
	EventDependencyResolved  = "DEPENDENCY_RESOLVED"
	EventTaskDueSoon         = "TASK_DUE_SOON"
	EventTaskOverdue         = "TASK_OVERDUE"
)

// AutomationService reacts to lifecycle events by composing and dispatching
// notifications to the task's assignees and owner. It never mutates task
// state, and a delivery failure never propagates to the caller: the state
// change is already durable by the time any of these methods run.
type AutomationService struct {
	notifications repositories.NotificationRepository
	employees     repositories.EmployeeRepository
	mailer        utils.Mailer
	mailBreaker   *gobreaker.CircuitBreaker
}

func NewAutomationService(
	notifications repositories.NotificationRepository,
	employees repositories.EmployeeRepository,
	mailer utils.Mailer,
) *AutomationService {
	mailBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "email-cb",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &AutomationService{
		notifications: notifications,
		employees:     employees,
		mailer:        mailer,
		mailBreaker:   mailBreaker,
	}
}

func (s *AutomationService) OnTaskCreated(ctx context.Context, task *models.Task) {
	subject := fmt.Sprintf("New task: %s", task.Title)
	body := fmt.Sprintf("Task '%s' was created and assigned to you.", task.Title)
	s.dispatch(ctx, EventTaskCreated, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskAssigned(ctx context.Context, task *models.Task, employeeID string) {
	subject := fmt.Sprintf("You are assigned to: %s", task.Title)
	body := fmt.Sprintf("You have been assigned to task '%s'.", task.Title)
	s.dispatch(ctx, EventTaskAssigned, []string{employeeID}, subject, body)
}

func (s *AutomationService) OnTaskStatusChanged(ctx context.Context, task *models.Task, oldStatus, newStatus models.TaskStatus) {
	subject := fmt.Sprintf("Status changed: %s", task.Title)
	body := fmt.Sprintf("Task '%s' moved from %s to %s.", task.Title, oldStatus, newStatus)
	s.dispatch(ctx, EventTaskStatusChanged, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskCompleted(ctx context.Context, task *models.Task) {
	subject := fmt.Sprintf("Task completed: %s", task.Title)
	body := fmt.Sprintf("Task '%s' has been completed.", task.Title)
	s.dispatch(ctx, EventTaskCompleted, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnSubtaskAllDone(ctx context.Context, parent *models.Task) {
	subject := fmt.Sprintf("All subtasks done: %s", parent.Title)
	body := fmt.Sprintf("Every subtask of '%s' is done.", parent.Title)
	s.dispatch(ctx, EventSubtaskAllDone, taskRecipients(parent), subject, body)
}

func (s *AutomationService) OnTaskCommentAdded(ctx context.Context, task *models.Task, comment *models.TaskComment) {
	subject := fmt.Sprintf("New comment on: %s", task.Title)
	body := fmt.Sprintf("A comment was added to task '%s': %s", task.Title, comment.Text)
	s.dispatch(ctx, EventTaskCommentAdded, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskAttachmentAdded(ctx context.Context, task *models.Task, attachment *models.TaskAttachment) {
	subject := fmt.Sprintf("New attachment on: %s", task.Title)
	body := fmt.Sprintf("File '%s' was attached to task '%s'.", attachment.FileName, task.Title)
	s.dispatch(ctx, EventTaskAttachmentAdded, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskPriorityChanged(ctx context.Context, task *models.Task, oldPriority, newPriority models.TaskPriority) {
	subject := fmt.Sprintf("Priority changed: %s", task.Title)
	body := fmt.Sprintf("Task '%s' priority changed from %s to %s.", task.Title, oldPriority, newPriority)
	s.dispatch(ctx, EventTaskPriorityChanged, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskDeleted(ctx context.Context, task *models.Task) {
	subject := fmt.Sprintf("Task deleted: %s", task.Title)
	body := fmt.Sprintf("Task '%s' was deleted.", task.Title)
	s.dispatch(ctx, EventTaskDeleted, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnDependencyResolved(ctx context.Context, task *models.Task, dep *models.TaskDependency) {
	subject := fmt.Sprintf("Dependency resolved: %s", task.Title)
	body := fmt.Sprintf("Task '%s' no longer depends on task %s.", task.Title, dep.DependsOnID)
	s.dispatch(ctx, EventDependencyResolved, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskDueSoon(ctx context.Context, task *models.Task) {
	subject := fmt.Sprintf("Task due soon: %s", task.Title)
	body := fmt.Sprintf("Task '%s' is due at %s.", task.Title, task.DueDate.Format(time.RFC1123))
	s.dispatch(ctx, EventTaskDueSoon, taskRecipients(task), subject, body)
}

func (s *AutomationService) OnTaskOverdue(ctx context.Context, task *models.Task) {
	subject := fmt.Sprintf("Task overdue: %s", task.Title)
	body := fmt.Sprintf("Task '%s' was due at %s and is not done.", task.Title, task.DueDate.Format(time.RFC1123))
	s.dispatch(ctx, EventTaskOverdue, taskRecipients(task), subject, body)
}

// dispatch stores a notification row per recipient and sends email through
// the circuit breaker. Every failure is logged and swallowed.
func (s *AutomationService) dispatch(ctx context.Context, event string, recipientIDs []string, subject, body string) {
	for _, recipientID := range dedupe(recipientIDs) {
		notification := &models.Notification{
			RecipientID: recipientID,
			Event:       event,
			Subject:     subject,
			Message:     body,
			CreatedAt:   time.Now(),
			IsRead:      false,
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			logging.Logger.Errorf("Event ID: NOTIFICATION_STORE_FAILED, Description: Failed to store %s notification for %s: %v", event, recipientID, err)
		}

		employee, err := s.employees.GetByID(ctx, recipientID)
		if err != nil {
			logging.Logger.Warnf("Event ID: NOTIFICATION_RECIPIENT_UNRESOLVED, Description: Could not resolve recipient %s for %s: %v", recipientID, event, err)
			continue
		}

		_, err = s.mailBreaker.Execute(func() (interface{}, error) {
			return nil, s.mailer.SendEmail(employee.Email, subject, body)
		})
		if err != nil {
			logging.Logger.Errorf("Event ID: NOTIFICATION_EMAIL_FAILED, Description: Failed to send %s email to %s: %v", event, employee.Email, err)
		}
	}
}

// taskRecipients is the current assignee set plus the owner.
func taskRecipients(task *models.Task) []string {
	recipients := make([]string, 0, len(task.AssigneeIDs)+1)
	recipients = append(recipients, task.AssigneeIDs...)
	if task.OwnerID != "" {
		recipients = append(recipients, task.OwnerID)
	}
	return recipients
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
