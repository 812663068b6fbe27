package models

import "time"

type TaskComment struct {
	ID              string    `json:"id" bson:"_id"`
	TaskID          string    `json:"taskId" bson:"taskId"`
	AuthorID        string    `json:"authorId" bson:"authorId"`
	Text            string    `json:"text" bson:"text"`
	ParentCommentID string    `json:"parentCommentId,omitempty" bson:"parentCommentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`

	// Replies is assembled in memory from the flat comment list, never stored.
	Replies []*TaskComment `json:"replies,omitempty" bson:"-"`
}
