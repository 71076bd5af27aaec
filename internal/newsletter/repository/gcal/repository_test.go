package gcal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsletter-automation/internal/newsletter/repository"
	"newsletter-automation/pkg/gcalendar"
	"newsletter-automation/pkg/hebdate"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Info(ctx context.Context, args ...any)                   {}
func (mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (mockLogger) Error(ctx context.Context, args ...any)                  {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newRepoAgainst(t *testing.T, ts *httptest.Server) repository.CalendarRepository {
	t.Helper()
	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}
	client, err := gcalendar.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	dates, err := hebdate.NewParser("Asia/Jerusalem")
	if err != nil {
		t.Fatalf("unexpected error creating parser: %v", err)
	}
	return New(client, "primary", dates, mockLogger{})
}

func TestHasDuplicate_DayWindow(t *testing.T) {
	var gotMin, gotMax string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMin = r.URL.Query().Get("timeMin")
		gotMax = r.URL.Query().Get("timeMax")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"items": []}`))
	}))
	defer ts.Close()

	repo := newRepoAgainst(t, ts)

	// Midday UTC, so the local calendar day only comes out right when the
	// bounds are computed in the configured timezone.
	day := time.Date(2025, 7, 7, 12, 0, 0, 0, time.UTC)
	dup, err := repo.HasDuplicate(context.Background(), "דיון", day)
	if err != nil {
		t.Fatalf("HasDuplicate() error = %v", err)
	}
	if dup {
		t.Error("HasDuplicate() = true, want false")
	}

	min, err := time.Parse(time.RFC3339, gotMin)
	if err != nil {
		t.Fatalf("invalid timeMin %q: %v", gotMin, err)
	}
	max, err := time.Parse(time.RFC3339, gotMax)
	if err != nil {
		t.Fatalf("invalid timeMax %q: %v", gotMax, err)
	}
	wantMin := time.Date(2025, 7, 7, 0, 0, 0, 0, min.Location())
	if !min.Equal(wantMin) {
		t.Errorf("timeMin = %v, want local midnight %v", min, wantMin)
	}
	if got := max.Sub(min); got != 23*time.Hour+59*time.Minute+59*time.Second {
		t.Errorf("window = %v, want one day minus a second", got)
	}
}

func TestCreateEvent_TimezoneFromParser(t *testing.T) {
	var gotTimezone string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Start struct {
				TimeZone string `json:"timeZone"`
			} `json:"start"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			gotTimezone = body.Start.TimeZone
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "event-9", "htmlLink": "https://calendar.google.com/event-9"}`))
	}))
	defer ts.Close()

	repo := newRepoAgainst(t, ts)

	start := time.Date(2025, 7, 7, 19, 0, 0, 0, time.UTC)
	created, err := repo.CreateEvent(context.Background(), repository.CreateEventOptions{
		Title: "דיון",
		Start: start,
		End:   start.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}
	if created.ID != "event-9" {
		t.Errorf("created.ID = %q, want event-9", created.ID)
	}
	if gotTimezone != "Asia/Jerusalem" {
		t.Errorf("event timezone = %q, want Asia/Jerusalem", gotTimezone)
	}
}
