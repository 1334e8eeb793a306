package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/internhq/internhub-be/internal/models"
)

// NotificationServiceProvider defines the interface for notification services.
type NotificationServiceProvider interface {
	CreateNotification(ntype, title, message, priority string) error
	GetNotifications(limit int) ([]models.Notification, error)
	UnreadCount() (int, error)
	MarkRead(id string) error
	MarkAllRead() error
}

// NotificationService provides business logic for notifications.
type NotificationService struct {
	db *sql.DB
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(db *sql.DB) *NotificationService {
	return &NotificationService{db: db}
}

// CreateNotification records a new notification. An empty priority defaults
// to medium.
func (s *NotificationService) CreateNotification(ntype, title, message, priority string) error {
	if priority == "" {
		priority = models.PriorityMedium
	}

	stmt, err := s.db.Prepare("INSERT INTO notifications (id, type, title, message, is_read, priority, created_at) VALUES (?, ?, ?, ?, 0, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(uuid.New().String(), ntype, title, message, priority, time.Now().UTC())
	return err
}

// GetNotifications retrieves the most recent notifications, newest first.
func (s *NotificationService) GetNotifications(limit int) ([]models.Notification, error) {
	rows, err := s.db.Query(`SELECT id, type, title, message, is_read, priority, created_at
		FROM notifications ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.Priority, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM notifications WHERE is_read = 0").Scan(&count)
	return count, err
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(id string) error {
	res, err := s.db.Exec("UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: notification %s", models.ErrNotFound, id)
	}
	return nil
}

// MarkAllRead marks every unread notification as read.
func (s *NotificationService) MarkAllRead() error {
	_, err := s.db.Exec("UPDATE notifications SET is_read = 1 WHERE is_read = 0")
	return err
}
