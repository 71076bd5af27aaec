package repository

import (
	"context"
	"time"

	"newsletter-automation/internal/model"
)

// MailRepository is the interface for newsletter mailbox access.
type MailRepository interface {
	UnreadNewsletters(ctx context.Context) ([]model.EmailMessage, error)
	MarkProcessed(ctx context.Context, messageID string) error
}

// CalendarRepository is the interface for calendar write access.
type CalendarRepository interface {
	CreateEvent(ctx context.Context, opt CreateEventOptions) (CreatedEvent, error)
	HasDuplicate(ctx context.Context, title string, day time.Time) (bool, error)
}

// CreateEventOptions defines a calendar event to create.
type CreateEventOptions struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// CreatedEvent is the persisted calendar event reference.
type CreatedEvent struct {
	ID       string
	HtmlLink string
}
