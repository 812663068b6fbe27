package services

import (
	"context"
	"time"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
	"workhub-project/tasks-service/validators"

	"github.com/google/uuid"
)

// CommentService appends comments and replies to a task and reconstructs the
// reply tree from the flat stored list.
type CommentService struct {
	comments   repositories.CommentRepository
	tasks      repositories.TaskRepository
	validator  *validators.TaskValidator
	automation *AutomationService
	authorizer auth.Authorizer
}

func NewCommentService(
	comments repositories.CommentRepository,
	tasks repositories.TaskRepository,
	validator *validators.TaskValidator,
	automation *AutomationService,
	authorizer auth.Authorizer,
) *CommentService {
	return &CommentService{
		comments:   comments,
		tasks:      tasks,
		validator:  validator,
		automation: automation,
		authorizer: authorizer,
	}
}

func (s *CommentService) AddComment(ctx context.Context, taskID, text string) (*models.TaskComment, error) {
	if err := s.authorizer.Authorize(ctx, "comments", "create"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateCommentText(text); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment := &models.TaskComment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		AuthorID:  auth.CurrentEmployeeID(ctx),
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.automation.OnTaskCommentAdded(ctx, task, comment)
	return comment, nil
}

func (s *CommentService) ReplyToComment(ctx context.Context, parentCommentID, text string) (*models.TaskComment, error) {
	if err := s.authorizer.Authorize(ctx, "comments", "create"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateCommentText(text); err != nil {
		return nil, err
	}

	parent, err := s.comments.GetByID(ctx, parentCommentID)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.GetByID(ctx, parent.TaskID)
	if err != nil {
		return nil, err
	}

	reply := &models.TaskComment{
		ID:              uuid.New().String(),
		TaskID:          parent.TaskID,
		AuthorID:        auth.CurrentEmployeeID(ctx),
		Text:            text,
		ParentCommentID: parentCommentID,
		CreatedAt:       time.Now(),
	}
	if err := s.comments.Create(ctx, reply); err != nil {
		return nil, err
	}

	s.automation.OnTaskCommentAdded(ctx, task, reply)
	return reply, nil
}

// GetCommentsByTask returns the top-level comments with their reply trees
// assembled in memory from the flat list. Comments whose parent is missing
// are surfaced at the top level rather than dropped.
func (s *CommentService) GetCommentsByTask(ctx context.Context, taskID string) ([]*models.TaskComment, error) {
	if err := s.authorizer.Authorize(ctx, "comments", "read"); err != nil {
		return nil, err
	}

	flat, err := s.comments.GetByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.TaskComment, len(flat))
	for _, comment := range flat {
		comment.Replies = nil
		byID[comment.ID] = comment
	}

	var topLevel []*models.TaskComment
	for _, comment := range flat {
		if comment.ParentCommentID == "" {
			topLevel = append(topLevel, comment)
			continue
		}
		if parent, ok := byID[comment.ParentCommentID]; ok && parent != comment {
			parent.Replies = append(parent.Replies, comment)
		} else {
			topLevel = append(topLevel, comment)
		}
	}
	return topLevel, nil
}

// DeleteComment removes a comment and every descendant reply. The cascade
// walks an explicit queue with a visited set, so deep or even cyclic
// parent links cannot grow the call stack or loop forever. Returns the
// number of comments removed.
func (s *CommentService) DeleteComment(ctx context.Context, commentID string) (int, error) {
	if err := s.authorizer.Authorize(ctx, "comments", "delete"); err != nil {
		return 0, err
	}

	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return 0, err
	}

	visited := map[string]bool{commentID: true}
	order := []string{commentID}
	queue := []string{commentID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		replies, err := s.comments.GetByParentComment(ctx, current)
		if err != nil {
			return 0, err
		}
		for _, reply := range replies {
			if visited[reply.ID] {
				continue
			}
			visited[reply.ID] = true
			order = append(order, reply.ID)
			queue = append(queue, reply.ID)
		}
	}

	// Descendants first, the requested comment last.
	for i := len(order) - 1; i >= 0; i-- {
		if err := s.comments.Delete(ctx, order[i]); err != nil {
			return 0, err
		}
	}

	logging.Logger.Infof("Event ID: COMMENT_DELETED, Description: Comment %s deleted with %d descendant replies", commentID, len(order)-1)
	return len(order), nil
}
