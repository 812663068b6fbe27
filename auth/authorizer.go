package auth

import (
	"context"

	"workhub-project/tasks-service/errs"
)

// Authorizer decides whether the caller may perform an action on a resource.
// It is consulted before any other check in every service operation.
type Authorizer interface {
	Authorize(ctx context.Context, resource, action string) error
}

// RoleAuthorizer grants actions per role. Unknown roles are denied everything.
type RoleAuthorizer struct {
	rules map[string]map[string][]string
}

func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{
		rules: map[string]map[string][]string{
			"manager": {
				"tasks":         {"create", "read", "update", "delete", "assign", "status", "priority"},
				"dependencies":  {"create", "read", "delete"},
				"comments":      {"create", "read", "delete"},
				"attachments":   {"create", "read", "delete"},
				"tags":          {"create", "read", "delete"},
				"notifications": {"read", "update", "delete"},
			},
			"member": {
				"tasks":         {"read", "status", "update"},
				"dependencies":  {"read"},
				"comments":      {"create", "read", "delete"},
				"attachments":   {"create", "read"},
				"tags":          {"read"},
				"notifications": {"read", "update", "delete"},
			},
		},
	}
}

func (a *RoleAuthorizer) Authorize(ctx context.Context, resource, action string) error {
	claims := FromContext(ctx)
	if claims == nil || claims.Role == "" {
		return errs.Forbidden("auth.missingRole")
	}

	actions, ok := a.rules[claims.Role][resource]
	if !ok {
		return errs.Forbidden("auth.accessDenied", resource, action)
	}
	for _, allowed := range actions {
		if allowed == action {
			return nil
		}
	}
	return errs.Forbidden("auth.accessDenied", resource, action)
}

// AllowAll authorizes everything. Used where authorization is decided upstream.
type AllowAll struct{}

func (AllowAll) Authorize(ctx context.Context, resource, action string) error { return nil }
