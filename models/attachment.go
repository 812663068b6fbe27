package models

import "time"

type AttachmentVisibility string

const (
	VisibilityPublic  AttachmentVisibility = "PUBLIC"
	VisibilityPrivate AttachmentVisibility = "PRIVATE"
)

type TaskAttachment struct {
	ID          string               `json:"id" bson:"_id"`
	TaskID      string               `json:"taskId" bson:"taskId"`
	FileName    string               `json:"fileName" bson:"fileName"`
	StoragePath string               `json:"storagePath" bson:"storagePath"`
	ContentType string               `json:"contentType" bson:"contentType"`
	SizeBytes   int64                `json:"sizeBytes" bson:"sizeBytes"`
	Visibility  AttachmentVisibility `json:"visibility" bson:"visibility"`
	Description string               `json:"description" bson:"description"`
	UploadedBy  string               `json:"uploadedBy" bson:"uploadedBy"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
}
