package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"newsletter-automation/internal/model"
	"newsletter-automation/internal/newsletter"
)

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

type mockUseCase struct {
	stats model.ProcessStats
	err   error
}

func (m *mockUseCase) ProcessInbox(ctx context.Context) (model.ProcessStats, error) {
	return m.stats, m.err
}

func (m *mockUseCase) ProcessEmail(ctx context.Context, email model.EmailMessage, ref time.Time) (newsletter.ProcessEmailOutput, error) {
	return newsletter.ProcessEmailOutput{}, nil
}

func newTestRouter(uc newsletter.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(&mockLogger{}, uc)
	r.POST("/api/v1/newsletter/process", h.ProcessInbox)
	return r
}

func TestProcessInbox(t *testing.T) {
	t.Run("Returns run statistics", func(t *testing.T) {
		uc := &mockUseCase{stats: model.ProcessStats{
			RunID:           "run-1",
			EmailsProcessed: 2,
			EventsCreated:   3,
			EventsSkipped:   1,
		}}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/process", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var resp struct {
			Data model.ProcessStats `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.Data.RunID != "run-1" || resp.Data.EventsCreated != 3 {
			t.Errorf("stats = %+v", resp.Data)
		}
	})

	t.Run("Propagates usecase failure", func(t *testing.T) {
		uc := &mockUseCase{err: fmt.Errorf("mailbox unavailable")}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/newsletter/process", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}

		// The underlying error never reaches the response body.
		var resp struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp.Message != "internal server error" {
			t.Errorf("message = %q, want generic internal error", resp.Message)
		}
	})
}
