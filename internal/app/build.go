// Package app wires the newsletter usecase for the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"newsletter-automation/config"
	"newsletter-automation/internal/newsletter"
	"newsletter-automation/internal/newsletter/parser"
	gcalRepo "newsletter-automation/internal/newsletter/repository/gcal"
	gmailRepo "newsletter-automation/internal/newsletter/repository/gmail"
	"newsletter-automation/internal/newsletter/timeresolve"
	"newsletter-automation/internal/newsletter/usecase"
	"newsletter-automation/pkg/fetch"
	"newsletter-automation/pkg/gcalendar"
	"newsletter-automation/pkg/gmailsrc"
	"newsletter-automation/pkg/hebdate"
	"newsletter-automation/pkg/log"
	"newsletter-automation/pkg/pdftext"
	"newsletter-automation/pkg/vision"
)

// BuildUseCase wires the newsletter usecase with its Google API clients and
// extraction collaborators.
func BuildUseCase(ctx context.Context, cfg *config.Config, logger log.Logger) (newsletter.UseCase, error) {
	// Mail source
	gmailClient, err := gmailsrc.NewClient(ctx, gmailsrc.Config{
		CredentialsPath: cfg.Gmail.CredentialsPath,
		Impersonate:     cfg.Gmail.AccountEmail,
		ProcessedLabel:  cfg.Gmail.ProcessedLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("gmail client: %w", err)
	}
	mailRepo := gmailRepo.New(gmailClient, cfg.Gmail.SenderEmail, cfg.Gmail.MaxEmails, logger)

	// Date resolution
	dates, err := hebdate.NewParser(cfg.Newsletter.Timezone)
	if err != nil {
		return nil, fmt.Errorf("date parser: %w", err)
	}

	// Calendar sink
	calendarClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("calendar client: %w", err)
	}
	calRepo := gcalRepo.New(calendarClient, cfg.GoogleCalendar.CalendarID, dates, logger)

	// Field extraction
	fields := parser.NewFieldExtractor(dates, cfg.Newsletter.Cities,
		cfg.Newsletter.EventTypeKeywords, cfg.Newsletter.OrganizerKeywords)

	// Time resolution: link fetcher, OCR and PDF text (OCR is optional)
	fetcher := fetch.New(fetch.Config{
		Timeout:           time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		MaxBodyBytes:      cfg.Fetch.MaxBodyBytes,
		CacheSize:         cfg.Fetch.CacheSize,
		CacheTTL:          time.Duration(cfg.Fetch.CacheTTLMinutes) * time.Minute,
		RequestsPerSecond: cfg.Fetch.RequestsPerSec,
	})

	var ocr timeresolve.OCRService
	visionClient, err := vision.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		logger.Warnf(ctx, "Vision OCR not available, image invitations will fall back to defaults: %v", err)
	} else {
		ocr = visionClient
	}

	resolver, err := timeresolve.NewResolver(logger, fetcher, ocr, pdftext.New(), timeresolve.Config{
		DefaultStartTime: cfg.Newsletter.DefaultStartTime,
		TimePatterns:     cfg.Newsletter.TimePatterns,
	})
	if err != nil {
		return nil, fmt.Errorf("time resolver: %w", err)
	}

	return usecase.New(logger, mailRepo, calRepo, fields, resolver, dates, usecase.Config{
		FooterMarkers:          cfg.Newsletter.FooterMarkers,
		DefaultDurationMinutes: cfg.Newsletter.DefaultDurationMinutes,
		SkipPastEvents:         cfg.Newsletter.SkipPastEvents,
	}), nil
}
