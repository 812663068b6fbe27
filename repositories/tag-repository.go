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

type MongoTagRepository struct {
	tagsCollection *mongo.Collection
}

func NewMongoTagRepository(db *mongo.Database) *MongoTagRepository {
	return &MongoTagRepository{tagsCollection: db.Collection("task_tags")}
}

func (r *MongoTagRepository) Create(ctx context.Context, tag *models.TaskTag) error {
	if _, err := r.tagsCollection.InsertOne(ctx, tag); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

func (r *MongoTagRepository) GetByID(ctx context.Context, id string) (*models.TaskTag, error) {
	var tag models.TaskTag
	err := r.tagsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&tag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("tag.notFound", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tag: %w", err)
	}
	return &tag, nil
}

func (r *MongoTagRepository) GetByOrganization(ctx context.Context, organizationID string) ([]*models.TaskTag, error) {
	cursor, err := r.tagsCollection.Find(ctx, bson.M{"organizationId": organizationID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tags: %w", err)
	}
	defer cursor.Close(ctx)

	var tags []*models.TaskTag
	for cursor.Next(ctx) {
		var tag models.TaskTag
		if err := cursor.Decode(&tag); err != nil {
			return nil, fmt.Errorf("failed to decode tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return tags, nil
}

func (r *MongoTagRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	count, err := r.tagsCollection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to check tag existence: %w", err)
	}
	return count > 0, nil
}

func (r *MongoTagRepository) Delete(ctx context.Context, id string) error {
	result, err := r.tagsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("tag.notFound", id)
	}
	return nil
}
