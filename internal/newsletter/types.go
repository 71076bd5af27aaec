package newsletter

import (
	"newsletter-automation/internal/model"
)

// ProcessEmailOutput is the result of processing one newsletter email.
type ProcessEmailOutput struct {
	Created int // events created in the calendar
	Skipped int // duplicates and past events
	Failed  int // blocks that could not be processed

	Events []model.Event // assembled events, including skipped ones
	Errors []string      // per-block failure descriptions
}
