package repositories

import (
	"context"
	"fmt"
	"os"
	"time"

	"workhub-project/tasks-service/errs"
	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/models"

	"github.com/gocql/gocql"
)

// CassandraNotificationRepository keeps the per-recipient notification feed
// in Cassandra, clustered newest-first.
type CassandraNotificationRepository struct {
	session *gocql.Session
}

func NewCassandraNotificationRepository() (*CassandraNotificationRepository, error) {
	host := os.Getenv("CASS_DB")
	if host == "" {
		host = "127.0.0.1"
	}

	cluster := gocql.NewCluster(host)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %w", err)
	}

	err = session.Query(
		`CREATE KEYSPACE IF NOT EXISTS notifications
         WITH replication = {
             'class': 'SimpleStrategy',
             'replication_factor': 1
         }`).Exec()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create keyspace: %w", err)
	}
	session.Close()

	cluster.Keyspace = "notifications"
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to notifications keyspace: %w", err)
	}

	logging.Logger.Info("Event ID: CASSANDRA_CONNECTED, Description: Connected to Cassandra notifications keyspace.")
	return &CassandraNotificationRepository{session: session}, nil
}

func (r *CassandraNotificationRepository) CloseSession() {
	r.session.Close()
	logging.Logger.Info("Event ID: CASSANDRA_SESSION_CLOSED, Description: Cassandra session closed.")
}

func (r *CassandraNotificationRepository) CreateTable() {
	err := r.session.Query(
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID,
			recipient_id TEXT,
			event TEXT,
			subject TEXT,
			message TEXT,
			created_at TIMESTAMP,
			is_read BOOLEAN,
			PRIMARY KEY ((recipient_id), created_at, id)
		) WITH CLUSTERING ORDER BY (created_at DESC, id ASC)`).Exec()
	if err != nil {
		logging.Logger.Errorf("Event ID: CASSANDRA_TABLE_CREATE_FAILED, Description: Failed to create notifications table: %v", err)
	}
}

func (r *CassandraNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = gocql.TimeUUID().String()
	}

	err := r.session.Query(
		`INSERT INTO notifications (id, recipient_id, event, subject, message, created_at, is_read)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		notification.ID, notification.RecipientID, notification.Event, notification.Subject,
		notification.Message, notification.CreatedAt, notification.IsRead,
	).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *CassandraNotificationRepository) GetByRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	iter := r.session.Query(
		`SELECT id, recipient_id, event, subject, message, created_at, is_read
		 FROM notifications WHERE recipient_id = ?`, recipientID).WithContext(ctx).Iter()

	var notifications []models.Notification
	var notification models.Notification
	for iter.Scan(&notification.ID, &notification.RecipientID, &notification.Event,
		&notification.Subject, &notification.Message, &notification.CreatedAt, &notification.IsRead) {
		notifications = append(notifications, notification)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	return notifications, nil
}

func (r *CassandraNotificationRepository) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	id, createdAt, err := r.locate(ctx, recipientID, notificationID)
	if err != nil {
		return err
	}

	err = r.session.Query(
		`UPDATE notifications SET is_read = true WHERE recipient_id = ? AND created_at = ? AND id = ?`,
		recipientID, createdAt, id).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

func (r *CassandraNotificationRepository) Delete(ctx context.Context, recipientID, notificationID string) error {
	id, createdAt, err := r.locate(ctx, recipientID, notificationID)
	if err != nil {
		return err
	}

	err = r.session.Query(
		`DELETE FROM notifications WHERE recipient_id = ? AND created_at = ? AND id = ?`,
		recipientID, createdAt, id).WithContext(ctx).Exec()
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// locate resolves the clustering key for a notification id within a
// recipient partition.
func (r *CassandraNotificationRepository) locate(ctx context.Context, recipientID, notificationID string) (gocql.UUID, time.Time, error) {
	id, err := gocql.ParseUUID(notificationID)
	if err != nil {
		return gocql.UUID{}, time.Time{}, fmt.Errorf("invalid notification id format: %w", err)
	}

	iter := r.session.Query(
		`SELECT id, created_at FROM notifications WHERE recipient_id = ?`, recipientID).WithContext(ctx).Iter()

	var createdAt time.Time
	found := false
	var scanned gocql.UUID
	var scannedAt time.Time
	for iter.Scan(&scanned, &scannedAt) {
		if scanned == id {
			createdAt = scannedAt
			found = true
		}
	}
	if err := iter.Close(); err != nil {
		return gocql.UUID{}, time.Time{}, fmt.Errorf("failed to locate notification: %w", err)
	}
	if !found {
		return gocql.UUID{}, time.Time{}, errs.NotFound("notification.notFound", notificationID)
	}
	return id, createdAt, nil
}
