package validators

import (
	"testing"
	"time"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStatusTransition(t *testing.T) {
	v := NewTaskValidator()

	allowed := []struct {
		from, to models.TaskStatus
	}{
		{models.StatusBacklog, models.StatusInProgress},
		{models.StatusBacklog, models.StatusBlocked},
		{models.StatusInProgress, models.StatusReview},
		{models.StatusInProgress, models.StatusDone},
		{models.StatusInProgress, models.StatusBacklog},
		{models.StatusReview, models.StatusDone},
		{models.StatusReview, models.StatusInProgress},
		{models.StatusBlocked, models.StatusInProgress},
		{models.StatusDone, models.StatusReopened},
		{models.StatusReopened, models.StatusInProgress},
	}
	for _, tc := range allowed {
		assert.NoError(t, v.ValidateStatusTransition(tc.from, tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	rejected := []struct {
		from, to models.TaskStatus
	}{
		{models.StatusBacklog, models.StatusDone},
		{models.StatusBacklog, models.StatusReview},
		{models.StatusDone, models.StatusInProgress},
		{models.StatusDone, models.StatusDone},
		{models.StatusBlocked, models.StatusDone},
		{models.StatusInProgress, models.StatusInProgress},
	}
	for _, tc := range rejected {
		err := v.ValidateStatusTransition(tc.from, tc.to)
		require.Error(t, err, "%s -> %s should be illegal", tc.from, tc.to)
		assert.True(t, errs.IsValidation(err))
		assert.Equal(t, "task.status.illegalTransition", errs.KeyOf(err))
	}

	err := v.ValidateStatusTransition(models.StatusBacklog, models.TaskStatus("ARCHIVED"))
	require.Error(t, err)
	assert.Equal(t, "task.status.invalid", errs.KeyOf(err))
}

func TestValidateTitle(t *testing.T) {
	v := NewTaskValidator()

	assert.NoError(t, v.ValidateTitle("Design API"))

	err := v.ValidateTitle("   ")
	require.Error(t, err)
	assert.Equal(t, "task.title.required", errs.KeyOf(err))

	long := make([]byte, maxTitleLength+1)
	for i := range long {
		long[i] = 'x'
	}
	err = v.ValidateTitle(string(long))
	require.Error(t, err)
	assert.Equal(t, "task.title.tooLong", errs.KeyOf(err))
}

func TestValidateDates(t *testing.T) {
	v := NewTaskValidator()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := start.Add(-24 * time.Hour)

	err := v.ValidateDates(&models.Task{StartDate: &start, DueDate: &due})
	require.Error(t, err)
	assert.Equal(t, "task.dueDate.beforeStart", errs.KeyOf(err))

	assert.NoError(t, v.ValidateDates(&models.Task{StartDate: &start, DueDate: &start}))
	assert.NoError(t, v.ValidateDates(&models.Task{StartDate: &start}))
	assert.NoError(t, v.ValidateDates(&models.Task{}))
}

func TestValidateDependency(t *testing.T) {
	v := NewTaskValidator()

	assert.NoError(t, v.ValidateDependency("a", "b"))

	err := v.ValidateDependency("a", "a")
	require.Error(t, err)
	assert.Equal(t, "dependency.selfReference", errs.KeyOf(err))

	err = v.ValidateDependency("", "b")
	require.Error(t, err)
	assert.Equal(t, "dependency.taskIds.required", errs.KeyOf(err))
}

func TestValidateAssignees(t *testing.T) {
	v := NewTaskValidator()

	assert.NoError(t, v.ValidateAssignees([]string{"e1"}))

	err := v.ValidateAssignees(nil)
	require.Error(t, err)
	assert.Equal(t, "assignees.required", errs.KeyOf(err))
}

func TestValidatePriority(t *testing.T) {
	v := NewTaskValidator()

	assert.NoError(t, v.ValidatePriority(models.PriorityCritical))

	err := v.ValidatePriority(models.TaskPriority("URGENT"))
	require.Error(t, err)
	assert.Equal(t, "task.priority.invalid", errs.KeyOf(err))
}

func TestValidateCommentText(t *testing.T) {
	v := NewTaskValidator()

	assert.NoError(t, v.ValidateCommentText("looks good"))

	err := v.ValidateCommentText(" \t ")
	require.Error(t, err)
	assert.Equal(t, "comment.text.required", errs.KeyOf(err))
}
