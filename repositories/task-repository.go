package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTaskRepository implements TaskRepository on a MongoDB collection.
type MongoTaskRepository struct {
	tasksCollection *mongo.Collection
}

func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{tasksCollection: db.Collection("tasks")}
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if _, err := r.tasksCollection.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *MongoTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.tasksCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("task.notFound", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return &task, nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, task *models.Task) error {
	result, err := r.tasksCollection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFound("task.notFound", task.ID)
	}
	return nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.tasksCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("task.notFound", id)
	}
	return nil
}

func (r *MongoTaskRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	count, err := r.tasksCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return count > 0, nil
}

func (r *MongoTaskRepository) GetByParent(ctx context.Context, parentTaskID string) ([]*models.Task, error) {
	return r.find(ctx, bson.M{"parentTaskId": parentTaskID})
}

func (r *MongoTaskRepository) CountIncompleteSubtasks(ctx context.Context, parentTaskID string) (int, error) {
	count, err := r.tasksCollection.CountDocuments(ctx, bson.M{
		"parentTaskId": parentTaskID,
		"status":       bson.M{"$ne": models.StatusDone},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count incomplete subtasks: %w", err)
	}
	return int(count), nil
}

func (r *MongoTaskRepository) GetByAssignee(ctx context.Context, organizationID, employeeID string) ([]*models.Task, error) {
	return r.find(ctx, bson.M{"organizationId": organizationID, "assigneeIds": employeeID})
}

func (r *MongoTaskRepository) GetByProject(ctx context.Context, projectID string) ([]*models.Task, error) {
	return r.find(ctx, bson.M{"projectId": projectID})
}

func (r *MongoTaskRepository) GetByOrganization(ctx context.Context, organizationID string) ([]*models.Task, error) {
	return r.find(ctx, bson.M{"organizationId": organizationID})
}

func (r *MongoTaskRepository) GetDueBetween(ctx context.Context, from, to time.Time) ([]*models.Task, error) {
	return r.find(ctx, bson.M{
		"dueDate": bson.M{"$gte": from, "$lte": to},
		"status":  bson.M{"$ne": models.StatusDone},
	})
}

func (r *MongoTaskRepository) GetOverdue(ctx context.Context, now time.Time) ([]*models.Task, error) {
	return r.find(ctx, bson.M{
		"dueDate": bson.M{"$lt": now},
		"status":  bson.M{"$ne": models.StatusDone},
	})
}

func (r *MongoTaskRepository) find(ctx context.Context, filter bson.M) ([]*models.Task, error) {
	cursor, err := r.tasksCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []*models.Task
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return tasks, nil
}
