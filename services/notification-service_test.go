package services

import (
	"testing"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFeedIsScopedToCaller(t *testing.T) {
	f := newFixture()
	task := &models.Task{ID: "t1", Title: "Task", OwnerID: "mgr-1", AssigneeIDs: []string{"emp-1"}}
	f.automation.OnTaskCreated(f.managerCtx, task)

	mine, err := f.notificationSvc.GetMyNotifications(f.memberCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "emp-1", mine[0].RecipientID)
	assert.False(t, mine[0].IsRead)
}

func TestMarkNotificationAsRead(t *testing.T) {
	f := newFixture()
	task := &models.Task{ID: "t1", Title: "Task", AssigneeIDs: []string{"emp-1"}}
	f.automation.OnTaskCreated(f.managerCtx, task)

	mine, err := f.notificationSvc.GetMyNotifications(f.memberCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, f.notificationSvc.MarkNotificationAsRead(f.memberCtx, mine[0].ID))

	mine, err = f.notificationSvc.GetMyNotifications(f.memberCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsRead)
}

func TestCallerCannotTouchAnotherFeed(t *testing.T) {
	f := newFixture()
	task := &models.Task{ID: "t1", Title: "Task", AssigneeIDs: []string{"emp-1"}}
	f.automation.OnTaskCreated(f.managerCtx, task)

	mine, err := f.notificationSvc.GetMyNotifications(f.memberCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// The manager's feed does not contain emp-1's notification.
	err = f.notificationSvc.DeleteNotification(f.managerCtx, mine[0].ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteNotification(t *testing.T) {
	f := newFixture()
	task := &models.Task{ID: "t1", Title: "Task", AssigneeIDs: []string{"emp-1"}}
	f.automation.OnTaskCreated(f.managerCtx, task)

	mine, err := f.notificationSvc.GetMyNotifications(f.memberCtx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, f.notificationSvc.DeleteNotification(f.memberCtx, mine[0].ID))

	mine, err = f.notificationSvc.GetMyNotifications(f.memberCtx)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
