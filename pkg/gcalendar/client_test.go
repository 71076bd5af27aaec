package gcalendar_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"newsletter-automation/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newClientAgainst(t *testing.T, ts *httptest.Server) *gcalendar.Client {
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
	return client
}

func TestCalendarClient(t *testing.T) {
	t.Run("Initialize with broken credentials", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`))
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Initialize from file", func(t *testing.T) {
		tmpFile, _ := os.CreateTemp("", "creds.json")
		defer os.Remove(tmpFile.Name())
		tmpFile.WriteString(`{"broken":true}`)
		tmpFile.Close()

		_, err := gcalendar.NewClientFromCredentialsFile(context.Background(), tmpFile.Name())
		if err == nil {
			t.Errorf("expected failure loading broken file")
		}

		_, err = gcalendar.NewClientFromCredentialsFile(context.Background(), "non-existent-file-path-12345.json")
		if err == nil {
			t.Errorf("expected reading file error")
		}
	})

	t.Run("Create Event E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"id": "event-123",
					"summary": "דיון בנושא שוויון",
					"location": "ירושלים",
					"htmlLink": "https://calendar.google.com/event-uri",
					"status": "confirmed"
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		client := newClientAgainst(t, ts)
		event, err := client.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			CalendarID:  "primary",
			Summary:     "דיון בנושא שוויון",
			Description: "Desc",
			Location:    "ירושלים",
			StartTime:   time.Now(),
			EndTime:     time.Now().Add(2 * time.Hour),
			Timezone:    "Asia/Jerusalem",
		})
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if event.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected link: %s", event.HtmlLink)
		}
		if event.Location != "ירושלים" {
			t.Errorf("unexpected location: %s", event.Location)
		}
	})

	t.Run("List Events E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/test-fail/events" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodGet {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{
					"items": [
						{
							"id": "event-123",
							"summary": "Existing Event",
							"start": { "dateTime": "2025-07-07T19:00:00+03:00" },
							"end": { "dateTime": "2025-07-07T21:00:00+03:00" }
						},
						{
							"id": "event-456",
							"summary": "All Day",
							"start": { "date": "2025-07-07" },
							"end": { "date": "2025-07-08" }
						}
					]
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		client := newClientAgainst(t, ts)
		events, err := client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "primary",
			TimeMin:    time.Now(),
			TimeMax:    time.Now().Add(24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("failed to list events: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].StartTime.Hour() != 19 {
			t.Errorf("unexpected start time: %v", events[0].StartTime)
		}
		if events[1].StartTime.IsZero() {
			t.Errorf("all-day event start not parsed")
		}

		_, err = client.ListEvents(context.Background(), gcalendar.ListEventsRequest{
			CalendarID: "test-fail",
			TimeMin:    time.Now(),
			TimeMax:    time.Now().Add(24 * time.Hour),
		})
		if err == nil {
			t.Fatalf("expected api error on test-fail")
		}
	})

	t.Run("Find Duplicate E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"items": [
					{
						"id": "event-123",
						"summary": "דיון בנושא שוויון (זמן מדויק של האירוע בזימון)",
						"start": { "dateTime": "2025-07-07T19:00:00+03:00" },
						"end": { "dateTime": "2025-07-07T21:00:00+03:00" }
					}
				]
			}`))
		}))
		defer ts.Close()

		client := newClientAgainst(t, ts)
		dayStart := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
		dayEnd := dayStart.Add(24 * time.Hour)

		// Incoming title without the appended note still matches by prefix.
		dup, err := client.FindDuplicate(context.Background(), "primary", "דיון בנושא שוויון", dayStart, dayEnd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dup == nil || dup.ID != "event-123" {
			t.Fatalf("expected duplicate event-123, got %+v", dup)
		}

		dup, err = client.FindDuplicate(context.Background(), "primary", "מפגש אחר לגמרי", dayStart, dayEnd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dup != nil {
			t.Errorf("expected no duplicate, got %+v", dup)
		}
	})

	t.Run("Delete Event E2E", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/events/event-123") && r.Method == http.MethodDelete {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		client := newClientAgainst(t, ts)
		if err := client.DeleteEvent(context.Background(), "primary", "event-123"); err != nil {
			t.Fatalf("failed to delete event: %v", err)
		}
		if err := client.DeleteEvent(context.Background(), "primary", "missing"); err == nil {
			t.Fatalf("expected delete error for missing event")
		}
	})
}
