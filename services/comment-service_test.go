package services

import (
	"testing"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentStampsAuthorFromContext(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "", "emp-2")

	comment, err := f.commentSvc.AddComment(f.memberCtx, "t1", "first!")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", comment.AuthorID)
	assert.Equal(t, "t1", comment.TaskID)
	assert.Empty(t, comment.ParentCommentID)

	assert.NotEmpty(t, f.notifications.ByEvent(EventTaskCommentAdded))
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	_, err := f.commentSvc.AddComment(f.memberCtx, "t1", "   ")
	require.Error(t, err)
	assert.Equal(t, "comment.text.required", errs.KeyOf(err))
}

func TestAddCommentUnknownTask(t *testing.T) {
	f := newFixture()

	_, err := f.commentSvc.AddComment(f.memberCtx, "ghost", "hello")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestReplyInheritsTaskFromParent(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	parent, err := f.commentSvc.AddComment(f.memberCtx, "t1", "root")
	require.NoError(t, err)

	reply, err := f.commentSvc.ReplyToComment(f.managerCtx, parent.ID, "answer")
	require.NoError(t, err)
	assert.Equal(t, "t1", reply.TaskID)
	assert.Equal(t, parent.ID, reply.ParentCommentID)
	assert.Equal(t, "mgr-1", reply.AuthorID)
}

func TestGetCommentsByTaskBuildsReplyTree(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	c1, err := f.commentSvc.AddComment(f.memberCtx, "t1", "c1")
	require.NoError(t, err)
	c2, err := f.commentSvc.AddComment(f.memberCtx, "t1", "c2")
	require.NoError(t, err)
	r1, err := f.commentSvc.ReplyToComment(f.memberCtx, c1.ID, "r1")
	require.NoError(t, err)
	r2, err := f.commentSvc.ReplyToComment(f.memberCtx, r1.ID, "r2")
	require.NoError(t, err)

	tree, err := f.commentSvc.GetCommentsByTask(f.memberCtx, "t1")
	require.NoError(t, err)
	require.Len(t, tree, 2)

	byID := map[string]*models.TaskComment{}
	for _, c := range tree {
		byID[c.ID] = c
	}
	require.Contains(t, byID, c1.ID)
	require.Contains(t, byID, c2.ID)
	require.Len(t, byID[c1.ID].Replies, 1)
	assert.Equal(t, r1.ID, byID[c1.ID].Replies[0].ID)
	require.Len(t, byID[c1.ID].Replies[0].Replies, 1)
	assert.Equal(t, r2.ID, byID[c1.ID].Replies[0].Replies[0].ID)
	assert.Empty(t, byID[c2.ID].Replies)
}

func TestGetCommentsByTaskSurfacesOrphans(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	orphan := &models.TaskComment{
		ID:              "orphan",
		TaskID:          "t1",
		AuthorID:        "emp-1",
		Text:            "parent is gone",
		ParentCommentID: "deleted-parent",
	}
	require.NoError(t, f.comments.Create(f.memberCtx, orphan))

	tree, err := f.commentSvc.GetCommentsByTask(f.memberCtx, "t1")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "orphan", tree[0].ID)
}

func TestDeleteCommentCascadesReplies(t *testing.T) {
	f := newFixture()
	f.seedTask("t1", "Task", models.StatusBacklog, "")

	c1, err := f.commentSvc.AddComment(f.memberCtx, "t1", "c1")
	require.NoError(t, err)
	r1, err := f.commentSvc.ReplyToComment(f.memberCtx, c1.ID, "r1")
	require.NoError(t, err)
	_, err = f.commentSvc.ReplyToComment(f.memberCtx, r1.ID, "r2")
	require.NoError(t, err)
	keep, err := f.commentSvc.AddComment(f.memberCtx, "t1", "keep me")
	require.NoError(t, err)

	deleted, err := f.commentSvc.DeleteComment(f.memberCtx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	remaining, err := f.comments.GetByTask(f.memberCtx, "t1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keep.ID, remaining[0].ID)
}

func TestDeleteCommentUnknownID(t *testing.T) {
	f := newFixture()

	_, err := f.commentSvc.DeleteComment(f.memberCtx, "ghost")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
