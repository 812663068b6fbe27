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

type MongoAttachmentRepository struct {
	attachmentsCollection *mongo.Collection
}

func NewMongoAttachmentRepository(db *mongo.Database) *MongoAttachmentRepository {
	return &MongoAttachmentRepository{attachmentsCollection: db.Collection("task_attachments")}
}

func (r *MongoAttachmentRepository) Create(ctx context.Context, attachment *models.TaskAttachment) error {
	if _, err := r.attachmentsCollection.InsertOne(ctx, attachment); err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

func (r *MongoAttachmentRepository) GetByID(ctx context.Context, id string) (*models.TaskAttachment, error) {
	var attachment models.TaskAttachment
	err := r.attachmentsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&attachment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("attachment.notFound", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attachment: %w", err)
	}
	return &attachment, nil
}

func (r *MongoAttachmentRepository) GetByTask(ctx context.Context, taskID string) ([]*models.TaskAttachment, error) {
	cursor, err := r.attachmentsCollection.Find(ctx, bson.M{"taskId": taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attachments: %w", err)
	}
	defer cursor.Close(ctx)

	var attachments []*models.TaskAttachment
	for cursor.Next(ctx) {
		var attachment models.TaskAttachment
		if err := cursor.Decode(&attachment); err != nil {
			return nil, fmt.Errorf("failed to decode attachment: %w", err)
		}
		attachments = append(attachments, &attachment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return attachments, nil
}

func (r *MongoAttachmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.attachmentsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("attachment.notFound", id)
	}
	return nil
}
