// Package gmail adapts the Gmail client to the newsletter mail repository.
package gmail

import (
	"context"
	"fmt"

	"newsletter-automation/internal/model"
	"newsletter-automation/internal/newsletter/repository"
	"newsletter-automation/pkg/gmailsrc"
	pkgLog "newsletter-automation/pkg/log"
)

type implRepository struct {
	client    *gmailsrc.Client
	sender    string
	maxEmails int64
	l         pkgLog.Logger
}

// New creates a MailRepository backed by a Gmail mailbox.
func New(client *gmailsrc.Client, sender string, maxEmails int, l pkgLog.Logger) repository.MailRepository {
	return &implRepository{
		client:    client,
		sender:    sender,
		maxEmails: int64(maxEmails),
		l:         l,
	}
}

func (r *implRepository) UnreadNewsletters(ctx context.Context) ([]model.EmailMessage, error) {
	query := fmt.Sprintf("from:%s is:unread", r.sender)
	messages, err := r.client.Search(ctx, query, r.maxEmails)
	if err != nil {
		return nil, fmt.Errorf("failed to search newsletters: %w", err)
	}
	r.l.Infof(ctx, "Found %d unread newsletters from %s", len(messages), r.sender)

	emails := make([]model.EmailMessage, 0, len(messages))
	for _, msg := range messages {
		emails = append(emails, model.EmailMessage{
			ID:        msg.ID,
			Subject:   msg.Subject,
			From:      msg.From,
			Date:      msg.Date,
			PlainText: msg.PlainText,
			HTML:      msg.HTML,
		})
	}
	return emails, nil
}

func (r *implRepository) MarkProcessed(ctx context.Context, messageID string) error {
	return r.client.MarkProcessed(ctx, messageID)
}
