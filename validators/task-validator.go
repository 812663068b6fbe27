package validators

import (
	"strings"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"
)

const maxTitleLength = 250

// legalTransitions is the explicit status-transition table. Self-transitions
// are not listed and therefore rejected.
var legalTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.StatusBacklog:    {models.StatusInProgress, models.StatusBlocked},
	models.StatusInProgress: {models.StatusReview, models.StatusDone, models.StatusBlocked, models.StatusBacklog},
	models.StatusReview:     {models.StatusDone, models.StatusInProgress, models.StatusBlocked},
	models.StatusBlocked:    {models.StatusBacklog, models.StatusInProgress},
	models.StatusDone:       {models.StatusReopened},
	models.StatusReopened:   {models.StatusInProgress, models.StatusReview, models.StatusBlocked},
}

var validPriorities = map[models.TaskPriority]bool{
	models.PriorityLow:      true,
	models.PriorityMedium:   true,
	models.PriorityHigh:     true,
	models.PriorityCritical: true,
}

// TaskValidator runs the pure rule-checks invoked before any persistence.
type TaskValidator struct{}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{}
}

func (v *TaskValidator) ValidateCreate(task *models.Task) error {
	if err := v.ValidateTitle(task.Title); err != nil {
		return err
	}
	if err := v.ValidateDates(task); err != nil {
		return err
	}
	if task.Priority != "" && !validPriorities[task.Priority] {
		return errs.Validation("task.priority.invalid", string(task.Priority))
	}
	return nil
}

func (v *TaskValidator) ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.Validation("task.title.required")
	}
	if len(title) > maxTitleLength {
		return errs.Validation("task.title.tooLong", maxTitleLength)
	}
	return nil
}

// ValidateDates rejects a due date earlier than the start date.
func (v *TaskValidator) ValidateDates(task *models.Task) error {
	if task.StartDate != nil && task.DueDate != nil && task.DueDate.Before(*task.StartDate) {
		return errs.Validation("task.dueDate.beforeStart")
	}
	return nil
}

func (v *TaskValidator) ValidateStatusTransition(from, to models.TaskStatus) error {
	if _, known := legalTransitions[to]; !known {
		return errs.Validation("task.status.invalid", string(to))
	}
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return errs.Validation("task.status.illegalTransition", string(from), string(to))
}

func (v *TaskValidator) ValidatePriority(priority models.TaskPriority) error {
	if !validPriorities[priority] {
		return errs.Validation("task.priority.invalid", string(priority))
	}
	return nil
}

func (v *TaskValidator) ValidateAssignees(employeeIDs []string) error {
	if len(employeeIDs) == 0 {
		return errs.Validation("assignees.required")
	}
	return nil
}

// ValidateDependency rejects a task depending on itself.
func (v *TaskValidator) ValidateDependency(taskID, dependsOnID string) error {
	if taskID == "" || dependsOnID == "" {
		return errs.Validation("dependency.taskIds.required")
	}
	if taskID == dependsOnID {
		return errs.Validation("dependency.selfReference")
	}
	return nil
}

func (v *TaskValidator) ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.Validation("comment.text.required")
	}
	return nil
}
