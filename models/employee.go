package models

type Employee struct {
	ID             string `json:"id" bson:"_id"`
	OrganizationID string `json:"organizationId" bson:"organizationId"`
	Name           string `json:"name" bson:"name"`
	Email          string `json:"email" bson:"email"`
	Role           string `json:"role" bson:"role"`
}

type Project struct {
	ID             string `json:"id" bson:"_id"`
	OrganizationID string `json:"organizationId" bson:"organizationId"`
	Name           string `json:"name" bson:"name"`
}
