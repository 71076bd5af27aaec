package timeresolve

import (
	"context"
	"fmt"

	"newsletter-automation/pkg/fetch"
)

// mockLogger implements log.Logger for tests.
type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (mockLogger) Info(ctx context.Context, args ...any)                  {}
func (mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Warn(ctx context.Context, args ...any)                  {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Error(ctx context.Context, args ...any)                 {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (mockLogger) Fatal(ctx context.Context, args ...any)                 {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...any) {}
func (mockLogger) DPanic(ctx context.Context, args ...any)                {}
func (mockLogger) DPanicf(ctx context.Context, format string, args ...any) {
}
func (mockLogger) Panic(ctx context.Context, args ...any)                 {}
func (mockLogger) Panicf(ctx context.Context, format string, args ...any) {}

// mockFetcher serves canned results keyed by URL.
type mockFetcher struct {
	results map[string]*fetch.Result
	errs    map[string]error
	calls   []string
}

func (m *mockFetcher) Get(_ context.Context, url string) (*fetch.Result, error) {
	m.calls = append(m.calls, url)
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if res, ok := m.results[url]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("no canned result for %s", url)
}

// mockOCR returns a fixed text for any image.
type mockOCR struct {
	text string
	err  error
}

func (m *mockOCR) DetectText(_ context.Context, _ []byte) (string, error) {
	return m.text, m.err
}

// mockPDF returns a fixed text for any document.
type mockPDF struct {
	text string
	err  error
}

func (m *mockPDF) ExtractText(_ []byte) (string, error) {
	return m.text, m.err
}

var testPatterns = []string{
	`(\d{1,2}):(\d{2})\s*-\s*(\d{1,2}):(\d{2})`,
	`מ(\d{1,2}):(\d{2})\s*עד\s*(\d{1,2}):(\d{2})`,
	`(\d{1,2}):(\d{2})`,
}

func newTestResolver(fetcher ContentFetcher, ocr OCRService, pdf PDFTextService) *Resolver {
	r, err := NewResolver(mockLogger{}, fetcher, ocr, pdf, Config{
		DefaultStartTime: "19:00",
		TimePatterns:     testPatterns,
	})
	if err != nil {
		panic(err)
	}
	return r
}

func imageResult(url string) *fetch.Result {
	return &fetch.Result{Kind: fetch.KindImage, FinalURL: url, ContentType: "image/png", Body: []byte("png")}
}
