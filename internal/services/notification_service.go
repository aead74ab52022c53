package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/accounts-service/internal/events"
	"github.com/SAP-F-2025/accounts-service/internal/repositories"
)

type notificationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewNotificationService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// EmailUser requests a mail delivery for the given user through the
// event bus. Users without an email address are rejected.
func (s *notificationService) EmailUser(ctx context.Context, userID uint, subject, message, from string) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return ErrNoEmailAddress
	}

	event := events.NewEvent(events.EventEmailRequested, events.EmailRequestedEvent{
		UserID:  user.ID,
		Email:   user.Email,
		Subject: subject,
		Message: message,
		From:    from,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish email request", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("email requested", "user_id", userID, "subject", subject)
	return nil
}
