package models

type TaskTag struct {
	ID             string `json:"id" bson:"_id"`
	OrganizationID string `json:"organizationId" bson:"organizationId"`
	Name           string `json:"name" bson:"name"`
	Color          string `json:"color" bson:"color"`
}
