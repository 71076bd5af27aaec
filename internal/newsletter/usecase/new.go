package usecase

import (
	"time"

	"newsletter-automation/internal/newsletter/parser"
	"newsletter-automation/internal/newsletter/repository"
	"newsletter-automation/internal/newsletter/timeresolve"
	"newsletter-automation/pkg/hebdate"
	pkgLog "newsletter-automation/pkg/log"
)

// Config holds the usecase-level extraction options.
type Config struct {
	FooterMarkers          []string
	DefaultDurationMinutes int
	SkipPastEvents         bool
}

type implUseCase struct {
	l        pkgLog.Logger
	mailRepo repository.MailRepository
	calRepo  repository.CalendarRepository
	fields   *parser.FieldExtractor
	resolver *timeresolve.Resolver
	dates    *hebdate.Parser
	cfg      Config

	now func() time.Time
}

// New creates a new newsletter UseCase instance.
func New(
	l pkgLog.Logger,
	mailRepo repository.MailRepository,
	calRepo repository.CalendarRepository,
	fields *parser.FieldExtractor,
	resolver *timeresolve.Resolver,
	dates *hebdate.Parser,
	cfg Config,
) *implUseCase {
	return &implUseCase{
		l:        l,
		mailRepo: mailRepo,
		calRepo:  calRepo,
		fields:   fields,
		resolver: resolver,
		dates:    dates,
		cfg:      cfg,
		now:      time.Now,
	}
}
