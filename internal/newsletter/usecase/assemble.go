package usecase

import (
	"strings"

	"newsletter-automation/internal/model"
	"newsletter-automation/internal/newsletter/parser"
	"newsletter-automation/internal/newsletter/timeresolve"
	"newsletter-automation/pkg/hebdate"
)

// approxTitleSuffix is appended when the event time is the configured
// default and the block carried no clock token at all, so readers check
// the attached invitation for the exact time.
const approxTitleSuffix = " (זמן מדויק של האירוע בזימון)"

// descriptionFooter marks auto-created events in the calendar entry body.
const descriptionFooter = "נוצר אוטומטית מהניוזלטר הפמיניסטי השבועי"

const (
	organizerPrefix = "מארגן: "
	linksHeader     = "קישורים רלוונטיים:"
)

// assembleEvent combines the extracted fields, the time resolution and the
// assigned links into one calendar-ready event.
func (uc *implUseCase) assembleEvent(block model.EventBlock, fields parser.Fields, res timeresolve.Resolution, links []model.Link) model.Event {
	title := fields.Title
	if res.NeedsApproxNote {
		title += approxTitleSuffix
	}

	duration := uc.cfg.DefaultDurationMinutes
	if res.End != "" {
		if mins, err := hebdate.MinutesBetween(res.Start, res.End); err == nil && mins > 0 {
			duration = mins
		}
	}

	return model.Event{
		Title:           title,
		Date:            fields.Date,
		Time:            res.Start,
		EndTime:         res.End,
		DurationMinutes: duration,
		Location:        fields.Location,
		Organizer:       fields.Organizer,
		EventType:       fields.EventType,
		IsVirtual:       fields.IsVirtual,
		Description:     buildDescription(block.Text, fields.Organizer, links),
		Links:           links,
		TimeVerified:    res.Verified,
	}
}

// buildDescription is the calendar entry body: the block text, the organizer
// line, the assigned invitation links, and the origin footer behind a
// separator. Links appear nowhere else in the created event, so this is
// where positional assignment becomes visible to the reader.
func buildDescription(text, organizer string, links []model.Link) string {
	var b strings.Builder
	b.WriteString(text)
	if organizer != "" {
		b.WriteString("\n\n" + organizerPrefix + organizer)
	}
	if len(links) > 0 {
		b.WriteString("\n\n" + linksHeader)
		for _, link := range links {
			b.WriteString("\n🔗 " + link.Label + ": " + link.URL)
		}
	}
	b.WriteString("\n\n---\n" + descriptionFooter)
	return b.String()
}
