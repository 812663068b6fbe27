package repositories

import (
	"context"
	"errors"
	"fmt"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoEmployeeRepository struct {
	employeesCollection *mongo.Collection
}

func NewMongoEmployeeRepository(db *mongo.Database) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{employeesCollection: db.Collection("employees")}
}

func (r *MongoEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var employee models.Employee
	err := r.employeesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("employee.notFound", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve employee: %w", err)
	}
	return &employee, nil
}

// GetByIDs resolves the given ids; unknown ids are simply absent from the
// result, callers decide whether that is an error.
func (r *MongoEmployeeRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.employeesCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []*models.Employee
	for cursor.Next(ctx) {
		var employee models.Employee
		if err := cursor.Decode(&employee); err != nil {
			return nil, fmt.Errorf("failed to decode employee: %w", err)
		}
		employees = append(employees, &employee)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return employees, nil
}

func (r *MongoEmployeeRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	count, err := r.employeesCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return count > 0, nil
}

type MongoProjectRepository struct {
	projectsCollection *mongo.Collection
}

func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{projectsCollection: db.Collection("projects")}
}

func (r *MongoProjectRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	count, err := r.projectsCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return count > 0, nil
}
