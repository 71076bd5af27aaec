package newsletter

import (
	"context"
	"time"

	"newsletter-automation/internal/model"
)

type UseCase interface {
	// ProcessInbox fetches unread newsletters, extracts their events into
	// the calendar and marks each handled email. It returns run statistics
	// even when individual emails fail.
	ProcessInbox(ctx context.Context) (model.ProcessStats, error)

	// ProcessEmail extracts and creates calendar events from a single
	// email. The reference time anchors year resolution.
	ProcessEmail(ctx context.Context, email model.EmailMessage, ref time.Time) (ProcessEmailOutput, error)
}
