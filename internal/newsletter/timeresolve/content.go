package timeresolve

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"newsletter-automation/pkg/fetch"
)

var (
	imgTagPattern  = regexp.MustCompile(`(?i)<img[^>]+src=['"]([^'"]+)['"]`)
	ogImagePattern = regexp.MustCompile(`(?i)<meta[^>]+property=['"]og:image['"][^>]+content=['"]([^'"]+)['"]`)
)

// invitationHints are URL tokens suggesting the image is the event flyer
// rather than a site logo or decoration.
var invitationHints = []string{"הזמנה", "invite", "invitation", "event", "flyer"}

// contentText follows the link to its final resource and extracts the text
// to scan: OCR for images, page text for PDFs, stripped text for HTML
// pages. An HTML page embedding what looks like the real invitation graphic
// is resolved by OCR on that image instead of the page's own text.
func (r *Resolver) contentText(ctx context.Context, url string, ref time.Time) (string, error) {
	res, err := r.fetcher.Get(ctx, url)
	if err != nil {
		return "", err
	}

	switch res.Kind {
	case fetch.KindImage:
		return r.ocrText(ctx, res.Body)
	case fetch.KindPDF:
		if r.pdf == nil {
			return "", fmt.Errorf("pdf text service unavailable")
		}
		return r.pdf.ExtractText(res.Body)
	case fetch.KindHTML:
		page := string(res.Body)
		if imgURL := chooseInvitationImage(page, ref.Year()); imgURL != "" {
			if text, imgErr := r.fetchImageText(ctx, imgURL); imgErr == nil {
				return text, nil
			} else {
				r.l.Warnf(ctx, "embedded invitation image failed, using page text: %s: %v", imgURL, imgErr)
			}
		}
		return fetch.StripHTML(page), nil
	default:
		return "", fmt.Errorf("unsupported content kind %q at %s", res.Kind, res.FinalURL)
	}
}

func (r *Resolver) fetchImageText(ctx context.Context, imgURL string) (string, error) {
	res, err := r.fetcher.Get(ctx, imgURL)
	if err != nil {
		return "", err
	}
	if res.Kind != fetch.KindImage {
		return "", fmt.Errorf("expected image at %s, got %s", imgURL, res.Kind)
	}
	return r.ocrText(ctx, res.Body)
}

func (r *Resolver) ocrText(ctx context.Context, image []byte) (string, error) {
	if r.ocr == nil {
		return "", fmt.Errorf("ocr service unavailable")
	}
	return r.ocr.DetectText(ctx, image)
}

// chooseInvitationImage picks the most plausible invitation graphic from an
// HTML page, or "" when none qualifies. <img> tags are preferred over the
// og:image meta tag, which is frequently a cached stale thumbnail. Among
// candidates, URLs carrying the current year or an invitation hint score
// up, URLs carrying a prior-year token score down.
func chooseInvitationImage(page string, refYear int) string {
	best := ""
	bestScore := 0

	for _, m := range imgTagPattern.FindAllStringSubmatch(page, -1) {
		url := m[1]
		if !fetch.IsImageURL(url) {
			continue
		}
		// Base score 1 keeps any plain <img> ahead of the og:image fallback.
		score := 1 + scoreImageURL(url, refYear)
		if score > bestScore {
			best = url
			bestScore = score
		}
	}
	if best != "" {
		return best
	}

	if m := ogImagePattern.FindStringSubmatch(page); m != nil && fetch.IsImageURL(m[1]) {
		if scoreImageURL(m[1], refYear) >= 0 {
			return m[1]
		}
	}
	return ""
}

func scoreImageURL(url string, refYear int) int {
	score := 0
	lower := strings.ToLower(url)

	for _, hint := range invitationHints {
		if strings.Contains(lower, hint) {
			score += 2
			break
		}
	}

	for _, m := range yearToken.FindAllString(url, -1) {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year == refYear {
			score += 2
		} else if year < refYear {
			score -= 3
		}
	}

	return score
}
