package services

import (
	"context"
	"fmt"
	"log"

	"eventdesk/internal/domain"
)

type notificationService struct {
	notifier domain.Notifier
	renderer domain.NotificationTemplateRenderer
}

// NewNotificationService returns a NotificationService that renders with
// the given renderer and delivers through the given notifier.
func NewNotificationService(notifier domain.Notifier, renderer domain.NotificationTemplateRenderer) domain.NotificationService {
	return &notificationService{notifier: notifier, renderer: renderer}
}

// SendGuestNotification delivers one broadcast message to one guest using
// the "guest_notification" template.
func (s *notificationService) SendGuestNotification(ctx context.Context, data *domain.GuestNotificationData) error {
	if data == nil {
		return fmt.Errorf("guest notification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("guest_notification", data)
	if err != nil {
		return fmt.Errorf("failed to render guest_notification template: %w", err)
	}
	if err := s.notifier.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send guest notification: %w", err)
	}
	log.Printf("[NOTIFY] Guest notification sent to %s", data.Email)
	return nil
}
