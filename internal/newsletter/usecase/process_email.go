package usecase

import (
	"context"
	"fmt"
	"time"

	"newsletter-automation/internal/model"
	"newsletter-automation/internal/newsletter"
	"newsletter-automation/internal/newsletter/linkassoc"
	"newsletter-automation/internal/newsletter/parser"
	"newsletter-automation/internal/newsletter/repository"
	"newsletter-automation/pkg/fetch"
)

// ProcessEmail runs the full extraction pipeline on one email: normalize,
// segment into blocks, extract fields, assign links, resolve times, then
// create the surviving events in the calendar.
func (uc *implUseCase) ProcessEmail(ctx context.Context, email model.EmailMessage, ref time.Time) (newsletter.ProcessEmailOutput, error) {
	content := email.PlainText
	if content == "" {
		content = fetch.StripHTML(email.HTML)
	}
	if content == "" {
		return newsletter.ProcessEmailOutput{}, newsletter.ErrEmptyEmail
	}

	normalized := parser.Normalize(content, uc.cfg.FooterMarkers)
	blocks := parser.SplitEventBlocks(normalized)
	pool := linkassoc.ExtractLinks(email.HTML)

	uc.l.Infof(ctx, "Email %s: %d event blocks, %d links", email.ID, len(blocks), len(pool))

	var out newsletter.ProcessEmailOutput
	for i := range blocks {
		block := blocks[i]

		fields, err := uc.fields.Extract(block, ref)
		if err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("block at offset %d: %v", block.Offset, err))
			uc.l.Warnf(ctx, "Skipping block at offset %d: %v", block.Offset, err)
			continue
		}

		var next *model.EventBlock
		if i+1 < len(blocks) {
			next = &blocks[i+1]
		}
		var assigned []model.Link
		assigned, pool = linkassoc.Assign(pool, email.HTML, block, next)

		res := uc.resolver.Resolve(ctx, block, assigned, ref)
		event := uc.assembleEvent(block, fields, res, assigned)
		out.Events = append(out.Events, event)

		if err := uc.createEvent(ctx, &event, &out); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("event %q: %v", event.Title, err))
			uc.l.Errorf(ctx, "Failed to create event %q: %v", event.Title, err)
		}
	}

	return out, nil
}

// createEvent applies the past-event and duplicate guards, then writes the
// event to the calendar.
func (uc *implUseCase) createEvent(ctx context.Context, event *model.Event, out *newsletter.ProcessEmailOutput) error {
	start, err := uc.dates.At(event.Date, event.Time)
	if err != nil {
		return fmt.Errorf("invalid start time %q: %w", event.Time, err)
	}
	end := start.Add(time.Duration(event.DurationMinutes) * time.Minute)

	if uc.cfg.SkipPastEvents && start.Before(uc.now()) {
		uc.l.Infof(ctx, "Skipping past event %q at %s", event.Title, start.Format(time.RFC3339))
		out.Skipped++
		return nil
	}

	dup, err := uc.calRepo.HasDuplicate(ctx, event.Title, event.Date)
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}
	if dup {
		uc.l.Infof(ctx, "Skipping duplicate event %q on %s", event.Title, event.Date.Format("2006-01-02"))
		out.Skipped++
		return nil
	}

	if _, err := uc.calRepo.CreateEvent(ctx, repository.CreateEventOptions{
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start:       start,
		End:         end,
	}); err != nil {
		return err
	}

	out.Created++
	return nil
}
