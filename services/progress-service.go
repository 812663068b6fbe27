package services

import (
	"context"
	"math"
	"time"

	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
)

// ProgressService derives a parent task's completion percentage from its
// direct subtasks and auto-closes the parent once all of them are done.
type ProgressService struct {
	tasks      repositories.TaskRepository
	automation *AutomationService
}

func NewProgressService(tasks repositories.TaskRepository, automation *AutomationService) *ProgressService {
	return &ProgressService{tasks: tasks, automation: automation}
}

// Recalculate recomputes progress from direct children only. Tasks without
// subtasks are left untouched: their progress stays whatever was set
// explicitly.
func (s *ProgressService) Recalculate(ctx context.Context, parentTaskID string) (*models.Task, error) {
	parent, err := s.tasks.GetByID(ctx, parentTaskID)
	if err != nil {
		return nil, err
	}

	children, err := s.tasks.GetByParent(ctx, parentTaskID)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return parent, nil
	}

	done := 0
	for _, child := range children {
		if child.Status == models.StatusDone {
			done++
		}
	}

	parent.ProgressPercentage = int(math.Round(100 * float64(done) / float64(len(children))))
	parent.UpdatedAt = time.Now()

	completedNow := false
	if done == len(children) && parent.Status != models.StatusDone {
		now := time.Now()
		parent.Status = models.StatusDone
		parent.CompletedAt = &now
		completedNow = true
	}

	if err := s.tasks.Update(ctx, parent); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: PROGRESS_RECALCULATED, Description: Task %s progress recalculated to %d%% (%d/%d subtasks done)", parent.ID, parent.ProgressPercentage, done, len(children))

	if completedNow {
		s.automation.OnSubtaskAllDone(ctx, parent)
		s.automation.OnTaskCompleted(ctx, parent)
	}
	return parent, nil
}
