package notification

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Notify records a notification for a member. Satisfies the Notifier
// interfaces of the expense and settlement services.
func (s *Service) Notify(ctx context.Context, recipientID, message, entityType, entityID string) error {
	var et, ei *string
	if entityType != "" {
		et = &entityType
	}
	if entityID != "" {
		ei = &entityID
	}
	_, err := s.repo.Create(ctx, recipientID, message, et, ei)
	return err
}

// ListByRecipient retrieves a user's notifications
func (s *Service) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly)
}

// MarkAsRead marks a notification as read; only the recipient may do so
func (s *Service) MarkAsRead(ctx context.Context, id, userID string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	return s.repo.MarkAsRead(ctx, id)
}
