// Package testutil provides in-memory repository implementations so service
// tests run without MongoDB, Neo4j or Cassandra.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"github.com/google/uuid"
)

type MemoryTaskRepository struct {
	mu    sync.Mutex
	tasks map[string]models.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]models.Task)}
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, errs.NotFound("task.notFound", id)
	}
	copied := task
	return &copied, nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return errs.NotFound("task.notFound", task.ID)
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return errs.NotFound("task.notFound", id)
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryTaskRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[id]
	return ok, nil
}

func (r *MemoryTaskRepository) GetByParent(ctx context.Context, parentTaskID string) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool { return t.ParentTaskID == parentTaskID }), nil
}

func (r *MemoryTaskRepository) CountIncompleteSubtasks(ctx context.Context, parentTaskID string) (int, error) {
	children := r.filter(func(t models.Task) bool {
		return t.ParentTaskID == parentTaskID && t.Status != models.StatusDone
	})
	return len(children), nil
}

func (r *MemoryTaskRepository) GetByAssignee(ctx context.Context, organizationID, employeeID string) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool {
		return t.OrganizationID == organizationID && t.HasAssignee(employeeID)
	}), nil
}

func (r *MemoryTaskRepository) GetByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool { return t.ProjectID == projectID }), nil
}

func (r *MemoryTaskRepository) GetByOrganization(ctx context.Context, organizationID string) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool { return t.OrganizationID == organizationID }), nil
}

func (r *MemoryTaskRepository) GetDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool {
		return t.DueDate != nil && !t.DueDate.Before(from) && !t.DueDate.After(to) &&
			t.Status != models.StatusDone
	}), nil
}

func (r *MemoryTaskRepository) GetOverdue(ctx context.Context, now time.Time) ([]*models.Task, error) {
	return r.filter(func(t models.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StatusDone
	}), nil
}

func (r *MemoryTaskRepository) filter(keep func(models.Task) bool) []*models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Task
	for _, task := range r.tasks {
		if keep(task) {
			copied := task
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MemoryCommentRepository struct {
	mu       sync.Mutex
	comments map[string]models.TaskComment
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{comments: make(map[string]models.TaskComment)}
}

func (r *MemoryCommentRepository) Create(ctx context.Context, comment *models.TaskComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *comment
	stored.Replies = nil
	r.comments[comment.ID] = stored
	return nil
}

func (r *MemoryCommentRepository) GetByID(ctx context.Context, id string) (*models.TaskComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment, ok := r.comments[id]
	if !ok {
		return nil, errs.NotFound("comment.notFound", id)
	}
	copied := comment
	return &copied, nil
}

func (r *MemoryCommentRepository) GetByTask(ctx context.Context, taskID string) ([]*models.TaskComment, error) {
	return r.filter(func(c models.TaskComment) bool { return c.TaskID == taskID }), nil
}

func (r *MemoryCommentRepository) GetByParentComment(ctx context.Context, parentCommentID string) ([]*models.TaskComment, error) {
	return r.filter(func(c models.TaskComment) bool { return c.ParentCommentID == parentCommentID }), nil
}

func (r *MemoryCommentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return errs.NotFound("comment.notFound", id)
	}
	delete(r.comments, id)
	return nil
}

func (r *MemoryCommentRepository) DeleteByTask(ctx context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, comment := range r.comments {
		if comment.TaskID == taskID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *MemoryCommentRepository) filter(keep func(models.TaskComment) bool) []*models.TaskComment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TaskComment
	for _, comment := range r.comments {
		if keep(comment) {
			copied := comment
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// MemoryDependencyRepository mirrors the graph store: explicit nodes plus
// directed edges, with reachability-based cycle detection.
type MemoryDependencyRepository struct {
	mu    sync.Mutex
	nodes map[string]bool
	edges map[string]models.TaskDependency
}

func NewMemoryDependencyRepository() *MemoryDependencyRepository {
	return &MemoryDependencyRepository{
		nodes: make(map[string]bool),
		edges: make(map[string]models.TaskDependency),
	}
}

func (r *MemoryDependencyRepository) EnsureTaskNode(ctx context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[taskID] = true
	return nil
}

func (r *MemoryDependencyRepository) RemoveTaskNode(ctx context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.nodes, taskID)
	for id, edge := range r.edges {
		if edge.TaskID == taskID || edge.DependsOnID == taskID {
			delete(r.edges, id)
		}
	}
	return nil
}

func (r *MemoryDependencyRepository) Create(ctx context.Context, dep *models.TaskDependency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges[dep.ID] = *dep
	return nil
}

func (r *MemoryDependencyRepository) GetByID(ctx context.Context, edgeID string) (*models.TaskDependency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	edge, ok := r.edges[edgeID]
	if !ok {
		return nil, errs.NotFound("dependency.notFound", edgeID)
	}
	copied := edge
	return &copied, nil
}

func (r *MemoryDependencyRepository) DeleteByID(ctx context.Context, edgeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.edges[edgeID]; !ok {
		return errs.NotFound("dependency.notFound", edgeID)
	}
	delete(r.edges, edgeID)
	return nil
}

func (r *MemoryDependencyRepository) Exists(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, edge := range r.edges {
		if edge.TaskID == taskID && edge.DependsOnID == dependsOnID {
			return true, nil
		}
	}
	return false, nil
}

// CreatesCycle reports whether adding taskID -> dependsOnID would close a
// cycle, i.e. whether taskID is already reachable from dependsOnID.
func (r *MemoryDependencyRepository) CreatesCycle(ctx context.Context, taskID, dependsOnID string) (bool, error) {
	if taskID == dependsOnID {
		return true, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := []string{dependsOnID}
	visited := map[string]bool{dependsOnID: true}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range r.edges {
			if edge.TaskID != current {
				continue
			}
			if edge.DependsOnID == taskID {
				return true, nil
			}
			if !visited[edge.DependsOnID] {
				visited[edge.DependsOnID] = true
				queue = append(queue, edge.DependsOnID)
			}
		}
	}
	return false, nil
}

func (r *MemoryDependencyRepository) GetByTask(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	return r.filter(func(e models.TaskDependency) bool { return e.TaskID == taskID }), nil
}

func (r *MemoryDependencyRepository) GetDependents(ctx context.Context, taskID string) ([]models.TaskDependency, error) {
	return r.filter(func(e models.TaskDependency) bool { return e.DependsOnID == taskID }), nil
}

func (r *MemoryDependencyRepository) filter(keep func(models.TaskDependency) bool) []models.TaskDependency {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TaskDependency
	for _, edge := range r.edges {
		if keep(edge) {
			out = append(out, edge)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MemoryTagRepository struct {
	mu   sync.Mutex
	tags map[string]models.TaskTag
}

func NewMemoryTagRepository() *MemoryTagRepository {
	return &MemoryTagRepository{tags: make(map[string]models.TaskTag)}
}

func (r *MemoryTagRepository) Create(ctx context.Context, tag *models.TaskTag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[tag.ID] = *tag
	return nil
}

func (r *MemoryTagRepository) GetByID(ctx context.Context, id string) (*models.TaskTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tag, ok := r.tags[id]
	if !ok {
		return nil, errs.NotFound("tag.notFound", id)
	}
	copied := tag
	return &copied, nil
}

func (r *MemoryTagRepository) GetByOrganization(ctx context.Context, organizationID string) ([]*models.TaskTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TaskTag
	for _, tag := range r.tags {
		if tag.OrganizationID == organizationID {
			copied := tag
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryTagRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tags[id]
	return ok, nil
}

func (r *MemoryTagRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tags[id]; !ok {
		return errs.NotFound("tag.notFound", id)
	}
	delete(r.tags, id)
	return nil
}

type MemoryAttachmentRepository struct {
	mu          sync.Mutex
	attachments map[string]models.TaskAttachment
}

func NewMemoryAttachmentRepository() *MemoryAttachmentRepository {
	return &MemoryAttachmentRepository{attachments: make(map[string]models.TaskAttachment)}
}

func (r *MemoryAttachmentRepository) Create(ctx context.Context, attachment *models.TaskAttachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachments[attachment.ID] = *attachment
	return nil
}

func (r *MemoryAttachmentRepository) GetByID(ctx context.Context, id string) (*models.TaskAttachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment, ok := r.attachments[id]
	if !ok {
		return nil, errs.NotFound("attachment.notFound", id)
	}
	copied := attachment
	return &copied, nil
}

func (r *MemoryAttachmentRepository) GetByTask(ctx context.Context, taskID string) ([]*models.TaskAttachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.TaskAttachment
	for _, attachment := range r.attachments {
		if attachment.TaskID == taskID {
			copied := attachment
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryAttachmentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attachments[id]; !ok {
		return errs.NotFound("attachment.notFound", id)
	}
	delete(r.attachments, id)
	return nil
}

type MemoryNotificationRepository struct {
	mu   sync.Mutex
	rows []models.Notification
}

func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{}
}

func (r *MemoryNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	r.rows = append(r.rows, *notification)
	return nil
}

func (r *MemoryNotificationRepository) GetByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.RecipientID == recipientID {
			out = append(out, row)
		}
	}
	// Newest first, matching the Cassandra clustering order.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryNotificationRepository) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.RecipientID == recipientID && row.ID == notificationID {
			r.rows[i].IsRead = true
			return nil
		}
	}
	return errs.NotFound("notification.notFound", notificationID)
}

func (r *MemoryNotificationRepository) Delete(ctx context.Context, recipientID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.RecipientID == recipientID && row.ID == notificationID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errs.NotFound("notification.notFound", notificationID)
}

// All returns every stored notification, for asserting on dispatched events.
func (r *MemoryNotificationRepository) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.rows))
	copy(out, r.rows)
	return out
}

// ByEvent returns stored notifications carrying the given event code.
func (r *MemoryNotificationRepository) ByEvent(event string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, row := range r.rows {
		if row.Event == event {
			out = append(out, row)
		}
	}
	return out
}

type MemoryEmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]models.Employee
}

func NewMemoryEmployeeRepository(employees ...models.Employee) *MemoryEmployeeRepository {
	r := &MemoryEmployeeRepository{employees: make(map[string]models.Employee)}
	for _, employee := range employees {
		r.employees[employee.ID] = employee
	}
	return r
}

func (r *MemoryEmployeeRepository) Add(employee models.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[employee.ID] = employee
}

func (r *MemoryEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[id]
	if !ok {
		return nil, errs.NotFound("employee.notFound", id)
	}
	copied := employee
	return &copied, nil
}

func (r *MemoryEmployeeRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Employee
	for _, id := range ids {
		if employee, ok := r.employees[id]; ok {
			copied := employee
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *MemoryEmployeeRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.employees[id]
	return ok, nil
}

type MemoryProjectRepository struct {
	mu       sync.Mutex
	projects map[string]models.Project
}

func NewMemoryProjectRepository(projects ...models.Project) *MemoryProjectRepository {
	r := &MemoryProjectRepository{projects: make(map[string]models.Project)}
	for _, project := range projects {
		r.projects[project.ID] = project
	}
	return r
}

func (r *MemoryProjectRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.projects[id]
	return ok, nil
}
