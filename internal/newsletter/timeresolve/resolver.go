// Package timeresolve produces an authoritative start (and optional end)
// time for an event block. Resolution cascades through an ordered list of
// strategies: a direct pattern match on the block text, a scan of content
// fetched from the block's invitation links, and finally a configured
// default. Each strategy returns nil to pass control to the next.
package timeresolve

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"newsletter-automation/internal/model"
	"newsletter-automation/pkg/fetch"
	"newsletter-automation/pkg/log"
)

// ContentFetcher follows redirects and returns classified final content.
type ContentFetcher interface {
	Get(ctx context.Context, url string) (*fetch.Result, error)
}

// OCRService recognizes text in image bytes.
type OCRService interface {
	DetectText(ctx context.Context, image []byte) (string, error)
}

// PDFTextService extracts concatenated page text from PDF bytes.
type PDFTextService interface {
	ExtractText(data []byte) (string, error)
}

// Source identifies which strategy produced a resolution.
type Source string

const (
	SourceBlockText Source = "block_text"
	SourceLink      Source = "link_content"
	SourceDefault   Source = "default"
)

// Resolution is the outcome of time resolution for one block.
type Resolution struct {
	Start string
	End   string
	// Verified is set only on the link-derived path. A time typed directly
	// in the newsletter body stays unverified: the invitation is the
	// authoritative source, the body a paraphrase of it.
	Verified bool
	Source   Source
	// NeedsApproxNote is set when the default was used and the block text
	// contains no clock-looking token at all.
	NeedsApproxNote bool
}

// Config holds the resolver's tunables.
type Config struct {
	DefaultStartTime string
	TimePatterns     []string // ordered; 4-group patterns are ranges, 2-group are single times
}

// Resolver runs the resolution cascade.
type Resolver struct {
	l        log.Logger
	fetcher  ContentFetcher
	ocr      OCRService
	pdf      PDFTextService
	patterns []timePattern
	defStart string
}

// timePattern is one compiled entry of the ordered pattern set.
type timePattern struct {
	re      *regexp.Regexp
	isRange bool
}

var clockToken = regexp.MustCompile(`\d{1,2}:\d{2}`)

// NewResolver compiles the configured pattern set. Patterns with four
// capture groups are treated as start-end ranges, two groups as single
// times; anything else is rejected.
func NewResolver(l log.Logger, fetcher ContentFetcher, ocr OCRService, pdf PDFTextService, cfg Config) (*Resolver, error) {
	if cfg.DefaultStartTime == "" {
		return nil, fmt.Errorf("default start time is required")
	}

	patterns := make([]timePattern, 0, len(cfg.TimePatterns))
	for _, raw := range cfg.TimePatterns {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid time pattern %q: %w", raw, err)
		}
		switch re.NumSubexp() {
		case 4:
			patterns = append(patterns, timePattern{re: re, isRange: true})
		case 2:
			patterns = append(patterns, timePattern{re: re})
		default:
			return nil, fmt.Errorf("time pattern %q must have 2 or 4 capture groups", raw)
		}
	}

	return &Resolver{
		l:        l,
		fetcher:  fetcher,
		ocr:      ocr,
		pdf:      pdf,
		patterns: patterns,
		defStart: cfg.DefaultStartTime,
	}, nil
}

// strategy is one stage of the cascade. A nil result means "try the next".
type strategy struct {
	name string
	run  func(ctx context.Context, block model.EventBlock, links []model.Link, ref time.Time) *Resolution
}

func (r *Resolver) strategies() []strategy {
	return []strategy{
		{name: "block_text", run: r.resolveFromBlockText},
		{name: "link_content", run: r.resolveFromLinks},
	}
}

// Resolve runs the strategies in order and falls back to the configured
// default. It never fails: the returned resolution always carries a start
// time. The reference time anchors the stale-year heuristic.
func (r *Resolver) Resolve(ctx context.Context, block model.EventBlock, links []model.Link, ref time.Time) Resolution {
	for _, s := range r.strategies() {
		if res := s.run(ctx, block, links, ref); res != nil {
			r.l.Debugf(ctx, "time resolved via %s: %s-%s", s.name, res.Start, res.End)
			return *res
		}
	}

	return Resolution{
		Start:           r.defStart,
		Source:          SourceDefault,
		NeedsApproxNote: !clockToken.MatchString(block.Text),
	}
}

// resolveFromBlockText tries the ordered pattern set directly on the block
// text. First matching pattern wins.
func (r *Resolver) resolveFromBlockText(_ context.Context, block model.EventBlock, _ []model.Link, _ time.Time) *Resolution {
	for _, p := range r.patterns {
		m := p.re.FindStringSubmatch(block.Text)
		if m == nil {
			continue
		}
		if p.isRange {
			start, ok1 := formatClock(m[1], m[2])
			end, ok2 := formatClock(m[3], m[4])
			if !ok1 || !ok2 {
				continue
			}
			return &Resolution{Start: start, End: end, Source: SourceBlockText}
		}
		start, ok := formatClock(m[1], m[2])
		if !ok {
			continue
		}
		return &Resolution{Start: start, Source: SourceBlockText}
	}
	return nil
}

// resolveFromLinks fetches each associated link in order and scans the
// resulting text for time candidates. A failing link is logged and skipped;
// the first link that yields a surviving candidate wins.
func (r *Resolver) resolveFromLinks(ctx context.Context, block model.EventBlock, links []model.Link, ref time.Time) *Resolution {
	if r.fetcher == nil {
		return nil
	}

	for _, link := range links {
		text, err := r.contentText(ctx, link.URL, ref)
		if err != nil {
			r.l.Warnf(ctx, "invitation link failed, trying next: %s: %v", link.URL, err)
			continue
		}

		cands := r.scanCandidates(text)
		if len(cands) == 0 {
			r.l.Debugf(ctx, "no time candidates in content from %s", link.URL)
			continue
		}

		pick, lowConfidence := filterCandidates(cands, ref.Year())
		if lowConfidence {
			r.l.Warnf(ctx, "all %d time candidates rejected for %s, keeping first raw match %s (low confidence)",
				len(cands), link.URL, pick.Start)
		}

		return &Resolution{
			Start:    pick.Start,
			End:      pick.End,
			Verified: true,
			Source:   SourceLink,
		}
	}

	return nil
}
