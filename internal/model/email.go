package model

// EmailMessage is one newsletter email as supplied by the mail source.
// HTML may be empty; the pipeline then falls back to label-substring link
// matching.
type EmailMessage struct {
	ID        string
	Subject   string
	From      string
	Date      string
	PlainText string
	HTML      string
}

// ProcessStats summarizes one processing run across all fetched emails.
type ProcessStats struct {
	RunID             string   `json:"run_id"`
	EmailsProcessed   int      `json:"emails_processed"`
	EventsCreated     int      `json:"events_created"`
	EventsSkipped     int      `json:"events_skipped"`
	EventsFailed      int      `json:"events_failed"`
	ProcessingSeconds float64  `json:"processing_time"`
	Errors            []string `json:"errors,omitempty"`
}
