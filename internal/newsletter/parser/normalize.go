package parser

import (
	"regexp"
	"strings"
)

// Provider-specific tracking noise. Only these enumerated artifacts are
// stripped; generic URLs and other bracketed tokens must survive untouched.
var trackingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[image: Facebook\]\s*<https://wordpress\.us13\.list-manage\.com[^>]*>`),
	regexp.MustCompile(`(?i)Facebook\s*\(https://wordpress\.us13\.list-manage\.com[^)]*\)`),
	regexp.MustCompile(`(?i)\[image: Website\]\s*<https://wordpress\.us13\.list-manage\.com[^>]*>`),
	regexp.MustCompile(`(?i)\*\*\s*Website\s*\(https://wordpress\.us13\.list-manage\.com[^)]*\)`),
	regexp.MustCompile(`(?i)\[image: Email\]\s*<[^>]*>`),
	regexp.MustCompile(`(?i)\*\*\s*Email\s*\(mailto:[^)]*\)`),
	regexp.MustCompile(`(?i)\[image: (Facebook|Website|Email)\]`),
}

var (
	orphanLinkPattern  = regexp.MustCompile(`^\s*[.,;:]\s*\(https://[^)]*\)\s*`)
	orphanPunctPattern = regexp.MustCompile(`^\s*[.,;:)]\s*`)
	trailingStars      = regexp.MustCompile(`\s*\*+\s*$`)
	trailingEquals     = regexp.MustCompile(`\s*=+\s*$`)
	lineBreaks         = regexp.MustCompile(`\r?\n|\r`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
)

// Normalize cleans a raw plain-text email body: truncates at the first
// footer marker, strips the enumerated tracking artifacts, and collapses
// all whitespace to single spaces. Always returns a string, possibly empty.
func Normalize(content string, footerMarkers []string) string {
	clean := content

	for _, marker := range footerMarkers {
		if idx := strings.Index(clean, marker); idx >= 0 {
			clean = clean[:idx]
		}
	}

	for _, re := range trackingPatterns {
		clean = re.ReplaceAllString(clean, "")
	}

	clean = orphanLinkPattern.ReplaceAllString(clean, "")
	clean = orphanPunctPattern.ReplaceAllString(clean, "")
	clean = trailingStars.ReplaceAllString(clean, "")
	clean = trailingEquals.ReplaceAllString(clean, "")

	clean = lineBreaks.ReplaceAllString(clean, " ")
	clean = whitespaceRuns.ReplaceAllString(clean, " ")

	return strings.TrimSpace(clean)
}
