package services

import (
	"context"
	"fmt"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
	"workhub-project/tasks-service/validators"

	"github.com/google/uuid"
)

// DependencyService manages the directed depends-on graph between tasks.
type DependencyService struct {
	graph      repositories.DependencyRepository
	tasks      repositories.TaskRepository
	validator  *validators.TaskValidator
	automation *AutomationService
	authorizer auth.Authorizer
}

func NewDependencyService(
	graph repositories.DependencyRepository,
	tasks repositories.TaskRepository,
	validator *validators.TaskValidator,
	automation *AutomationService,
	authorizer auth.Authorizer,
) *DependencyService {
	return &DependencyService{
		graph:      graph,
		tasks:      tasks,
		validator:  validator,
		automation: automation,
		authorizer: authorizer,
	}
}

// CreateDependency adds the edge taskID -> dependsOnID. Duplicate edges and
// edges that would close a cycle are rejected before anything is written.
func (s *DependencyService) CreateDependency(ctx context.Context, taskID, dependsOnID, dependencyType string) (*models.TaskDependency, error) {
	if err := s.authorizer.Authorize(ctx, "dependencies", "create"); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDependency(taskID, dependsOnID); err != nil {
		return nil, err
	}

	for _, id := range []string{taskID, dependsOnID} {
		exists, err := s.tasks.ExistsByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check task existence: %w", err)
		}
		if !exists {
			return nil, errs.NotFound("task.notFound", id)
		}
	}

	exists, err := s.graph.Exists(ctx, taskID, dependsOnID)
	if err != nil {
		return nil, fmt.Errorf("failed to check if dependency exists: %w", err)
	}
	if exists {
		return nil, errs.Validation("dependency.exists", taskID, dependsOnID)
	}

	hasCycle, err := s.graph.CreatesCycle(ctx, taskID, dependsOnID)
	if err != nil {
		return nil, fmt.Errorf("failed to check cycle: %w", err)
	}
	if hasCycle {
		return nil, errs.Validation("dependency.cycle", taskID, dependsOnID)
	}

	if dependencyType == "" {
		dependencyType = models.DependencyTypeBlocker
	}
	dep := &models.TaskDependency{
		ID:             uuid.New().String(),
		TaskID:         taskID,
		DependsOnID:    dependsOnID,
		DependencyType: dependencyType,
	}

	if err := s.graph.EnsureTaskNode(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.graph.EnsureTaskNode(ctx, dependsOnID); err != nil {
		return nil, err
	}
	if err := s.graph.Create(ctx, dep); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: DEPENDENCY_ADDED, Description: Dependency added: %s -> %s", taskID, dependsOnID)
	return dep, nil
}

// DeleteDependency removes an edge and notifies the blocked task's people
// that the dependency is resolved.
func (s *DependencyService) DeleteDependency(ctx context.Context, edgeID string) error {
	if err := s.authorizer.Authorize(ctx, "dependencies", "delete"); err != nil {
		return err
	}

	dep, err := s.graph.GetByID(ctx, edgeID)
	if err != nil {
		return err
	}
	if err := s.graph.DeleteByID(ctx, edgeID); err != nil {
		return err
	}

	if task, err := s.tasks.GetByID(ctx, dep.TaskID); err == nil {
		s.automation.OnDependencyResolved(ctx, task, dep)
	} else {
		logging.Logger.Warnf("Event ID: DEPENDENCY_TASK_UNRESOLVED, Description: Dependency %s removed but task %s could not be loaded: %v", edgeID, dep.TaskID, err)
	}
	return nil
}

func (s *DependencyService) GetDependenciesOf(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	if err := s.authorizer.Authorize(ctx, "dependencies", "read"); err != nil {
		return nil, err
	}
	return s.graph.GetByTask(ctx, taskID)
}

// GetDependents returns the edges of tasks that depend on the given task.
func (s *DependencyService) GetDependents(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	if err := s.authorizer.Authorize(ctx, "dependencies", "read"); err != nil {
		return nil, err
	}
	return s.graph.GetDependents(ctx, taskID)
}

// HasUnresolvedDependencies reports whether any dependency target of the
// task is not DONE. Statuses come from the task store; the graph stays
// structural.
func (s *DependencyService) HasUnresolvedDependencies(ctx context.Context, taskID string) (bool, error) {
	deps, err := s.graph.GetByTask(ctx, taskID)
	if err != nil {
		return false, err
	}
	for _, dep := range deps {
		target, err := s.tasks.GetByID(ctx, dep.DependsOnID)
		if err != nil {
			return false, fmt.Errorf("dependency target %s: %w", dep.DependsOnID, err)
		}
		if target.Status != models.StatusDone {
			return true, nil
		}
	}
	return false, nil
}
