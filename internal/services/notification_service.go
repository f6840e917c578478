package services

import (
	"context"
	"fmt"

	"hospohub/internal/models"
	"hospohub/internal/storage"
)

// NotificationService exposes a user's inbox.
type NotificationService interface {
	// MarkAllAsRead flips every notification owned by userID to read. The
	// actor's identity must match the claimed userID; the check lives here so
	// the operation stays safe regardless of which handler calls it.
	MarkAllAsRead(ctx context.Context, actorID, userID string) error
	List(ctx context.Context, userID string) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	notifRepo storage.NotificationRepository
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(notifRepo storage.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, actorID, userID string) error {
	if actorID == "" || actorID != userID {
		return ErrNotAuthorized
	}
	if err := s.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notifRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
