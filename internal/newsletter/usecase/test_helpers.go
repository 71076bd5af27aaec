package usecase

import (
	"context"
	"time"

	"newsletter-automation/internal/model"
	"newsletter-automation/internal/newsletter/parser"
	"newsletter-automation/internal/newsletter/repository"
	"newsletter-automation/internal/newsletter/timeresolve"
	"newsletter-automation/pkg/hebdate"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock mail repository for testing
type mockMailRepo struct {
	emails    []model.EmailMessage
	fetchErr  error
	processed []string
	markErr   error
}

func (m *mockMailRepo) UnreadNewsletters(ctx context.Context) ([]model.EmailMessage, error) {
	return m.emails, m.fetchErr
}

func (m *mockMailRepo) MarkProcessed(ctx context.Context, messageID string) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.processed = append(m.processed, messageID)
	return nil
}

// Mock calendar repository for testing
type mockCalRepo struct {
	created    []repository.CreateEventOptions
	duplicates map[string]bool // title -> exists
	createErr  error
	dupErr     error
}

func (m *mockCalRepo) CreateEvent(ctx context.Context, opt repository.CreateEventOptions) (repository.CreatedEvent, error) {
	if m.createErr != nil {
		return repository.CreatedEvent{}, m.createErr
	}
	m.created = append(m.created, opt)
	if m.duplicates == nil {
		m.duplicates = make(map[string]bool)
	}
	m.duplicates[opt.Title] = true
	return repository.CreatedEvent{ID: "created-1"}, nil
}

func (m *mockCalRepo) HasDuplicate(ctx context.Context, title string, day time.Time) (bool, error) {
	if m.dupErr != nil {
		return false, m.dupErr
	}
	return m.duplicates[title], nil
}

var testTimePatterns = []string{
	`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`,
	`מ(\d{1,2}):(\d{2})\s*עד\s*(\d{1,2}):(\d{2})`,
	`(\d{1,2}):(\d{2})`,
}

var testFooterMarkers = []string{"להסרה מרשימת התפוצה", "unsubscribe"}

// newTestUseCase wires a usecase with real extraction components and mock
// repositories, pinned to the given "now".
func newTestUseCase(mail *mockMailRepo, cal *mockCalRepo, now time.Time) *implUseCase {
	l := &mockLogger{}

	dates, err := hebdate.NewParser("Asia/Jerusalem")
	if err != nil {
		panic(err)
	}

	fields := parser.NewFieldExtractor(
		dates,
		[]string{"תל אביב", "ירושלים", "חיפה", "באר שבע"},
		map[string]string{"discussion": "דיון", "lecture": "הרצאה", "meeting": "מפגש"},
		map[string]string{"הוועדה לקידום מעמד האישה": "הוועדה לקידום מעמד האישה"},
	)

	resolver, err := timeresolve.NewResolver(l, nil, nil, nil, timeresolve.Config{
		DefaultStartTime: "19:00",
		TimePatterns:     testTimePatterns,
	})
	if err != nil {
		panic(err)
	}

	uc := New(l, mail, cal, fields, resolver, dates, Config{
		FooterMarkers:          testFooterMarkers,
		DefaultDurationMinutes: 120,
		SkipPastEvents:         true,
	})
	uc.now = func() time.Time { return now }
	return uc
}
