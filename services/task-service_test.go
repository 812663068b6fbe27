package services

import (
	"testing"
	"time"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskDefaults(t *testing.T) {
	f := newFixture()

	task, err := f.taskSvc.CreateTask(f.managerCtx, CreateTaskInput{
		ProjectID:   "proj-1",
		Title:       "Design API",
		AssigneeIDs: []string{"emp-1", "ghost"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.StatusBacklog, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, "org-1", task.OrganizationID)
	assert.Equal(t, "mgr-1", task.OwnerID)
	// Unknown assignee ids are dropped, not rejected.
	assert.Equal(t, []string{"emp-1"}, task.AssigneeIDs)

	stored, err := f.tasks.GetByID(f.managerCtx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, stored.Title)

	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskCreated))
}

func TestCreateTaskUnknownProject(t *testing.T) {
	f := newFixture()

	_, err := f.taskSvc.CreateTask(f.managerCtx, CreateTaskInput{
		ProjectID: "ghost",
		Title:     "Design API",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "project.notFound", errs.KeyOf(err))
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	f := newFixture()

	_, err := f.taskSvc.CreateTask(f.managerCtx, CreateTaskInput{ProjectID: "proj-1", Title: "  "})
	require.Error(t, err)
	assert.Equal(t, "task.title.required", errs.KeyOf(err))
}

func TestCreateTaskUnknownParent(t *testing.T) {
	f := newFixture()

	_, err := f.taskSvc.CreateTask(f.managerCtx, CreateTaskInput{
		ProjectID:    "proj-1",
		Title:        "Subtask",
		ParentTaskID: "ghost",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestUpdateTaskStatusRejectsIllegalTransition(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	_, err := f.taskSvc.UpdateTaskStatus(f.managerCtx, "t1", models.StatusDone)
	require.Error(t, err)
	assert.Equal(t, "task.status.illegalTransition", errs.KeyOf(err))

	stored, err := f.tasks.GetByID(f.managerCtx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBacklog, stored.Status)
}

func TestUpdateTaskStatusBlockedByUnresolvedDependency(t *testing.T) {
	f := newFixture()
	f.seedTask("a", "Draft schema", models.StatusBacklog, "")
	f.seedTask("b", "Choose database", models.StatusBacklog, "")
	_, err := f.dependencies.CreateDependency(f.managerCtx, "a", "b", "")
	require.NoError(t, err)

	_, err = f.taskSvc.UpdateTaskStatus(f.managerCtx, "a", models.StatusInProgress)
	require.Error(t, err)
	assert.Equal(t, "task.blockedByDependencies", errs.KeyOf(err))

	b, err := f.tasks.GetByID(f.managerCtx, "b")
	require.NoError(t, err)
	b.Status = models.StatusDone
	require.NoError(t, f.tasks.Update(f.managerCtx, b))

	updated, err := f.taskSvc.UpdateTaskStatus(f.managerCtx, "a", models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestUpdateTaskStatusStampsCompletion(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusInProgress, "")

	updated, err := f.taskSvc.UpdateTaskStatus(f.managerCtx, "t1", models.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskCompleted))
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskStatusChanged))
}

func TestCompletingLastSubtaskAutoClosesParent(t *testing.T) {
	f := newFixture()
	f.seedTask("parent", "Design API", models.StatusInProgress, "")
	f.seedTask("s1", "Draft schema", models.StatusBacklog, "parent")
	f.seedTask("s2", "Review schema", models.StatusBacklog, "parent")

	for _, id := range []string{"s1", "s2"} {
		_, err := f.taskSvc.UpdateTaskStatus(f.managerCtx, id, models.StatusInProgress)
		require.NoError(t, err)
		_, err = f.taskSvc.UpdateTaskStatus(f.managerCtx, id, models.StatusDone)
		require.NoError(t, err)
	}

	parent, err := f.tasks.GetByID(f.managerCtx, "parent")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, parent.Status)
	assert.Equal(t, 100, parent.ProgressPercentage)
	require.NotNil(t, parent.CompletedAt)

	// The all-done event fires once, when the second subtask closes.
	assert.Len(t, f.notifications.ByEvent(EventSubtaskAllDone), 1)
}

func TestPartialSubtaskCompletionUpdatesProgressOnly(t *testing.T) {
	f := newFixture()
	f.seedTask("parent", "Design API", models.StatusInProgress, "")
	f.seedTask("s1", "Draft schema", models.StatusInProgress, "parent")
	f.seedTask("s2", "Review schema", models.StatusBacklog, "parent")

	_, err := f.taskSvc.UpdateTaskStatus(f.managerCtx, "s1", models.StatusDone)
	require.NoError(t, err)

	parent, err := f.tasks.GetByID(f.managerCtx, "parent")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, parent.Status)
	assert.Equal(t, 50, parent.ProgressPercentage)
	assert.Empty(t, f.notifications.ByEvent(EventSubtaskAllDone))
}

func TestUpdateTaskPriority(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	updated, err := f.taskSvc.UpdateTaskPriority(f.managerCtx, "t1", models.PriorityCritical)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityCritical, updated.Priority)
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskPriorityChanged))

	_, err = f.taskSvc.UpdateTaskPriority(f.managerCtx, "t1", models.TaskPriority("URGENT"))
	require.Error(t, err)
	assert.Equal(t, "task.priority.invalid", errs.KeyOf(err))
}

func TestAssignUsersReplacesSet(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "", "emp-1")

	updated, err := f.taskSvc.AssignUsers(f.managerCtx, "t1", []string{"emp-1", "emp-2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"emp-1", "emp-2"}, updated.AssigneeIDs)

	// Every member of the new set is notified.
	rows := f.notifications.ByEvent(EventTaskAssigned)
	recipients := map[string]bool{}
	for _, row := range rows {
		recipients[row.RecipientID] = true
	}
	assert.True(t, recipients["emp-1"])
	assert.True(t, recipients["emp-2"])
}

func TestAssignUsersRejectsEmptyList(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "", "emp-1")

	_, err := f.taskSvc.AssignUsers(f.managerCtx, "t1", nil)
	require.Error(t, err)
	assert.Equal(t, "assignees.required", errs.KeyOf(err))

	stored, err := f.tasks.GetByID(f.managerCtx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"emp-1"}, stored.AssigneeIDs)
}

func TestAssignUsersAllUnknown(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "", "emp-1")

	_, err := f.taskSvc.AssignUsers(f.managerCtx, "t1", []string{"ghost-1", "ghost-2"})
	require.Error(t, err)
	assert.Equal(t, "assignees.notFound", errs.KeyOf(err))

	stored, err := f.tasks.GetByID(f.managerCtx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"emp-1"}, stored.AssigneeIDs)
}

func TestUnassignUser(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "", "emp-1", "emp-2")

	updated, err := f.taskSvc.UnassignUser(f.managerCtx, "t1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"emp-2"}, updated.AssigneeIDs)

	_, err = f.taskSvc.UnassignUser(f.managerCtx, "t1", "emp-1")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteTaskCascadesSubtree(t *testing.T) {
	f := newFixture()
	f.seedTask("parent", "Epic", models.StatusBacklog, "")
	f.seedTask("child", "Child", models.StatusBacklog, "parent")
	f.seedTask("grandchild", "Grandchild", models.StatusBacklog, "child")

	_, err := f.commentSvc.AddComment(f.memberCtx, "child", "will vanish")
	require.NoError(t, err)

	require.NoError(t, f.taskSvc.DeleteTask(f.managerCtx, "parent", true))

	for _, id := range []string{"parent", "child", "grandchild"} {
		_, err := f.tasks.GetByID(f.managerCtx, id)
		assert.True(t, errs.IsNotFound(err), "task %s should be gone", id)
	}
	comments, err := f.comments.GetByTask(f.managerCtx, "child")
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskDeleted))
}

func TestDeleteTaskDetachesChildrenWithoutCascade(t *testing.T) {
	f := newFixture()
	f.seedTask("parent", "Epic", models.StatusBacklog, "")
	f.seedTask("child", "Child", models.StatusBacklog, "parent")

	require.NoError(t, f.taskSvc.DeleteTask(f.managerCtx, "parent", false))

	_, err := f.tasks.GetByID(f.managerCtx, "parent")
	assert.True(t, errs.IsNotFound(err))

	child, err := f.tasks.GetByID(f.managerCtx, "child")
	require.NoError(t, err)
	assert.Empty(t, child.ParentTaskID)
}

func TestGetMyTasks(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Mine", models.StatusBacklog, "", "emp-1")
	f.seedTask("t2", "Not mine", models.StatusBacklog, "", "emp-2")

	tasks, err := f.taskSvc.GetMyTasks(f.memberCtx, "org-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestHasActiveTasks(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Open", models.StatusInProgress, "")

	active, err := f.taskSvc.HasActiveTasks(f.managerCtx, "proj-1")
	require.NoError(t, err)
	assert.True(t, active)

	task, err := f.tasks.GetByID(f.managerCtx, "t1")
	require.NoError(t, err)
	task.Status = models.StatusDone
	require.NoError(t, f.tasks.Update(f.managerCtx, task))

	active, err = f.taskSvc.HasActiveTasks(f.managerCtx, "proj-1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestCheckDueSoonTasks(t *testing.T) {
	f := newFixture()
	soon := time.Now().Add(2 * time.Hour)
	task := f.seedTask("t1", "Due soon", models.StatusInProgress, "", "emp-1")
	task.DueDate = &soon
	require.NoError(t, f.tasks.Update(f.managerCtx, task))

	far := time.Now().Add(96 * time.Hour)
	other := f.seedTask("t2", "Due later", models.StatusInProgress, "")
	other.DueDate = &far
	require.NoError(t, f.tasks.Update(f.managerCtx, other))

	tasks, err := f.taskSvc.CheckDueSoonTasks(f.managerCtx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskDueSoon))
}

func TestCheckOverdueTasks(t *testing.T) {
	f := newFixture()
	past := time.Now().Add(-2 * time.Hour)
	task := f.seedTask("t1", "Late", models.StatusInProgress, "", "emp-1")
	task.DueDate = &past
	require.NoError(t, f.tasks.Update(f.managerCtx, task))

	done := f.seedTask("t2", "Late but done", models.StatusDone, "")
	done.DueDate = &past
	require.NoError(t, f.tasks.Update(f.managerCtx, done))

	tasks, err := f.taskSvc.CheckOverdueTasks(f.managerCtx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskOverdue))
}

func TestMemberCannotDeleteTasks(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	err := f.taskSvc.DeleteTask(f.memberCtx, "t1", false)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))

	_, getErr := f.tasks.GetByID(f.managerCtx, "t1")
	assert.NoError(t, getErr)
}
