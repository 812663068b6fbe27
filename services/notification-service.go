package services

import (
	"context"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/models"
	"workhub-project/tasks-service/repositories"
)

// NotificationService exposes the calling employee's notification feed.
type NotificationService struct {
	notifications repositories.NotificationRepository
	authorizer    auth.Authorizer
}

func NewNotificationService(notifications repositories.NotificationRepository, authorizer auth.Authorizer) *NotificationService {
	return &NotificationService{notifications: notifications, authorizer: authorizer}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context) ([]models.Notification, error) {
	if err := s.authorizer.Authorize(ctx, "notifications", "read"); err != nil {
		return nil, err
	}
	return s.notifications.GetByRecipient(ctx, auth.CurrentEmployeeID(ctx))
}

func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	if err := s.authorizer.Authorize(ctx, "notifications", "update"); err != nil {
		return err
	}
	return s.notifications.MarkAsRead(ctx, auth.CurrentEmployeeID(ctx), notificationID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, notificationID string) error {
	if err := s.authorizer.Authorize(ctx, "notifications", "delete"); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, auth.CurrentEmployeeID(ctx), notificationID)
}
