package services

import (
	"errors"
	"testing"

	"workhub-project/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchDedupesOwnerAndAssignee(t *testing.T) {
	f := newFixture()
	task := &models.Task{ID: "t1", Title: "Task", OwnerID: "emp-1", AssigneeIDs: []string{"emp-1"}}

	f.automation.OnTaskCreated(f.managerCtx, task)

	rows := f.notifications.ByEvent(EventTaskCreated)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].RecipientID)
	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "petar@example.com", f.mailer.Sent[0].To)
}

func TestDispatchSurvivesMailerFailure(t *testing.T) {
	f := newFixture()
	f.mailer.FailWith = errors.New("smtp down")
	task := &models.Task{ID: "t1", Title: "Task", OwnerID: "emp-1", AssigneeIDs: []string{"emp-2"}}

	f.automation.OnTaskCreated(f.managerCtx, task)

	// Notification rows are stored even when every email fails.
	assert.Len(t, f.notifications.ByEvent(EventTaskCreated), 2)
	assert.Empty(t, f.mailer.Sent)
}

func TestDispatchSkipsUnknownRecipientEmail(t *testing.T) {
	f := newFixture()
	task := &models.Task{ID: "t1", Title: "Task", OwnerID: "ghost"}

	f.automation.OnTaskCreated(f.managerCtx, task)

	// The row is stored for the feed; only the email is skipped.
	assert.Len(t, f.notifications.ByEvent(EventTaskCreated), 1)
	assert.Empty(t, f.mailer.Sent)
}
