package domain

import "context"

// Notifier delivers a rendered notification to one recipient
// (infrastructure port).
type Notifier interface {
	Send(to, subject, html, text string) error
}

// NotificationTemplateRenderer renders notification content from a named
// template with the given data.
type NotificationTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// GuestNotificationData holds data for the per-guest broadcast template.
type GuestNotificationData struct {
	Email      string
	GuestName  string
	EventTitle string
	EventDate  string
	Message    string
}

// NotificationService defines the contract for delivering event broadcasts.
type NotificationService interface {
	SendGuestNotification(ctx context.Context, data *GuestNotificationData) error
}
