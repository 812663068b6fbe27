package models

import "time"

type TaskStatus string

const (
	StatusBacklog    TaskStatus = "BACKLOG"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusReview     TaskStatus = "REVIEW"
	StatusDone       TaskStatus = "DONE"
	StatusBlocked    TaskStatus = "BLOCKED"
	StatusReopened   TaskStatus = "REOPENED"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "LOW"
	PriorityMedium   TaskPriority = "MEDIUM"
	PriorityHigh     TaskPriority = "HIGH"
	PriorityCritical TaskPriority = "CRITICAL"
)

type Task struct {
	ID                 string       `json:"id" bson:"_id"`
	OrganizationID     string       `json:"organizationId" bson:"organizationId"`
	ProjectID          string       `json:"projectId" bson:"projectId"`
	Title              string       `json:"title" bson:"title"`
	Description        string       `json:"description" bson:"description"`
	Status             TaskStatus   `json:"status" bson:"status"`
	Priority           TaskPriority `json:"priority" bson:"priority"`
	StartDate          *time.Time   `json:"startDate,omitempty" bson:"startDate,omitempty"`
	DueDate            *time.Time   `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	EstimatedHours     float64      `json:"estimatedHours" bson:"estimatedHours"`
	ActualHours        float64      `json:"actualHours" bson:"actualHours"`
	CompletedAt        *time.Time   `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	OwnerID            string       `json:"ownerId" bson:"ownerId"`
	ParentTaskID       string       `json:"parentTaskId,omitempty" bson:"parentTaskId,omitempty"`
	AssigneeIDs        []string     `json:"assigneeIds" bson:"assigneeIds"`
	TagIDs             []string     `json:"tagIds" bson:"tagIds"`
	ProgressPercentage int          `json:"progressPercentage" bson:"progressPercentage"`
	CreatedAt          time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// IsSubtask reports whether the task lives under a parent task.
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != ""
}

// HasAssignee reports whether the employee is currently in the assignee set.
func (t *Task) HasAssignee(employeeID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
