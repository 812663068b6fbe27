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

// MongoCommentRepository stores comments flat; the reply tree is rebuilt in
// memory by the comment service.
type MongoCommentRepository struct {
	commentsCollection *mongo.Collection
}

func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{commentsCollection: db.Collection("task_comments")}
}

func (r *MongoCommentRepository) Create(ctx context.Context, comment *models.TaskComment) error {
	if _, err := r.commentsCollection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (*models.TaskComment, error) {
	var comment models.TaskComment
	err := r.commentsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("comment.notFound", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comment: %w", err)
	}
	return &comment, nil
}

func (r *MongoCommentRepository) GetByTask(ctx context.Context, taskID string) ([]*models.TaskComment, error) {
	return r.find(ctx, bson.M{"taskId": taskID})
}

func (r *MongoCommentRepository) GetByParentComment(ctx context.Context, parentCommentID string) ([]*models.TaskComment, error) {
	return r.find(ctx, bson.M{"parentCommentId": parentCommentID})
}

func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.commentsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.NotFound("comment.notFound", id)
	}
	return nil
}

func (r *MongoCommentRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if _, err := r.commentsCollection.DeleteMany(ctx, bson.M{"taskId": taskID}); err != nil {
		return fmt.Errorf("failed to delete comments for task: %w", err)
	}
	return nil
}

func (r *MongoCommentRepository) find(ctx context.Context, filter bson.M) ([]*models.TaskComment, error) {
	cursor, err := r.commentsCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.TaskComment
	for cursor.Next(ctx) {
		var comment models.TaskComment
		if err := cursor.Decode(&comment); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return comments, nil
}
