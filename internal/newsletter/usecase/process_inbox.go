package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsletter-automation/internal/model"
)

// ProcessInbox fetches unread newsletters and runs the extraction pipeline
// on each. A failing email is recorded in the stats and left unread so the
// next run retries it; a processed email is labeled and marked read even
// when some of its blocks failed.
func (uc *implUseCase) ProcessInbox(ctx context.Context) (model.ProcessStats, error) {
	started := uc.now()
	stats := model.ProcessStats{RunID: uuid.NewString()}

	uc.l.Infof(ctx, "Starting inbox run %s", stats.RunID)

	emails, err := uc.mailRepo.UnreadNewsletters(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch newsletters: %w", err)
	}

	for _, email := range emails {
		out, err := uc.ProcessEmail(ctx, email, uc.now())
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("email %s: %v", email.ID, err))
			uc.l.Errorf(ctx, "Failed to process email %s: %v", email.ID, err)
			continue
		}

		stats.EmailsProcessed++
		stats.EventsCreated += out.Created
		stats.EventsSkipped += out.Skipped
		stats.EventsFailed += out.Failed
		stats.Errors = append(stats.Errors, out.Errors...)

		if err := uc.mailRepo.MarkProcessed(ctx, email.ID); err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("email %s: mark processed: %v", email.ID, err))
			uc.l.Errorf(ctx, "Failed to mark email %s processed: %v", email.ID, err)
		}
	}

	stats.ProcessingSeconds = time.Since(started).Seconds()
	uc.l.Infof(ctx, "Inbox run %s done: %d emails, %d created, %d skipped, %d failed",
		stats.RunID, stats.EmailsProcessed, stats.EventsCreated, stats.EventsSkipped, stats.EventsFailed)
	return stats, nil
}
