// Package gcal adapts the Google Calendar client to the newsletter
// calendar repository.
package gcal

import (
	"context"
	"time"

	"newsletter-automation/internal/newsletter/repository"
	"newsletter-automation/pkg/gcalendar"
	"newsletter-automation/pkg/hebdate"
	pkgLog "newsletter-automation/pkg/log"
)

type implRepository struct {
	client     *gcalendar.Client
	calendarID string
	dates      *hebdate.Parser
	l          pkgLog.Logger
}

// New creates a CalendarRepository backed by Google Calendar. The date
// parser supplies the timezone events are created in and the day bounds
// the duplicate lookup scans.
func New(client *gcalendar.Client, calendarID string, dates *hebdate.Parser, l pkgLog.Logger) repository.CalendarRepository {
	return &implRepository{
		client:     client,
		calendarID: calendarID,
		dates:      dates,
		l:          l,
	}
}

func (r *implRepository) CreateEvent(ctx context.Context, opt repository.CreateEventOptions) (repository.CreatedEvent, error) {
	created, err := r.client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  r.calendarID,
		Summary:     opt.Title,
		Description: opt.Description,
		Location:    opt.Location,
		StartTime:   opt.Start,
		EndTime:     opt.End,
		Timezone:    r.dates.Location().String(),
	})
	if err != nil {
		return repository.CreatedEvent{}, err
	}

	r.l.Infof(ctx, "Created calendar event %s: %s", created.ID, opt.Title)
	return repository.CreatedEvent{ID: created.ID, HtmlLink: created.HtmlLink}, nil
}

func (r *implRepository) HasDuplicate(ctx context.Context, title string, day time.Time) (bool, error) {
	dayStart := r.dates.StartOfDay(day)
	dup, err := r.client.FindDuplicate(ctx, r.calendarID, title, dayStart, r.dates.EndOfDay(dayStart))
	if err != nil {
		return false, err
	}
	return dup != nil, nil
}
