package timeresolve

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"newsletter-automation/internal/model"
)

// contextRadius is the byte window kept around each candidate for the
// rejection heuristics.
const contextRadius = 40

// Loose OCR patterns tolerate spacing and dot separators; their matches are
// held to the 5-minute grid and daytime-hour rules to filter out stray
// digit pairs in noisy OCR output.
var looseTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})\s*:\s*(\d{2})`),
	regexp.MustCompile(`(\d{1,2})\.(\d{2})`),
}

var yearToken = regexp.MustCompile(`(19|20)\d{2}`)

// rowSeparatorGlyphs mark lines copied from tabular old-event listings on
// the same graphic.
var rowSeparatorGlyphs = []string{"|", "•"}

// registrationKeywords flag gathering/opening times that precede the actual
// event start.
var registrationKeywords = []string{
	"התכנסות", "הרשמה", "רישום", "כיבוד", "דברי פתיחה", "registration",
}

// scanCandidates finds every time-pattern match in the text, each with its
// offset and surrounding context window, ordered by offset. Range matches
// shadow single-time matches inside their span.
func (r *Resolver) scanCandidates(text string) []model.TimeCandidate {
	var cands []model.TimeCandidate
	var rangeSpans [][2]int
	seen := make(map[int]bool)

	for _, p := range r.patterns {
		if !p.isRange {
			continue
		}
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, ok1 := formatClock(text[m[2]:m[3]], text[m[4]:m[5]])
			end, ok2 := formatClock(text[m[6]:m[7]], text[m[8]:m[9]])
			if !ok1 || !ok2 || seen[m[0]] {
				continue
			}
			seen[m[0]] = true
			rangeSpans = append(rangeSpans, [2]int{m[0], m[1]})
			cands = append(cands, model.TimeCandidate{
				Start:        start,
				End:          end,
				SourceOffset: m[0],
				Context:      contextWindow(text, m[0], m[1]),
			})
		}
	}

	type singlePattern struct {
		re    *regexp.Regexp
		loose bool
	}
	singles := make([]singlePattern, 0, len(r.patterns)+len(looseTimePatterns))
	for _, p := range r.patterns {
		if !p.isRange {
			singles = append(singles, singlePattern{re: p.re})
		}
	}
	for _, re := range looseTimePatterns {
		singles = append(singles, singlePattern{re: re, loose: true})
	}

	for _, sp := range singles {
		for _, m := range sp.re.FindAllStringSubmatchIndex(text, -1) {
			if seen[m[0]] || insideSpan(rangeSpans, m[0]) {
				continue
			}
			start, ok := formatClock(text[m[2]:m[3]], text[m[4]:m[5]])
			if !ok {
				continue
			}
			seen[m[0]] = true
			cands = append(cands, model.TimeCandidate{
				Start:        start,
				SourceOffset: m[0],
				Context:      contextWindow(text, m[0], m[1]),
				Loose:        sp.loose,
			})
		}
	}

	// Offset order approximates reading order: the first clock-looking
	// token on the flyer is usually the main event time.
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].SourceOffset < cands[j].SourceOffset
	})
	return cands
}

// filterCandidates applies the rejection heuristics in offset order and
// returns the first survivor. When every candidate is rejected, the first
// raw candidate is returned with lowConfidence set.
func filterCandidates(cands []model.TimeCandidate, refYear int) (pick model.TimeCandidate, lowConfidence bool) {
	for _, c := range cands {
		if hasStaleYear(c.Context, refYear) {
			continue
		}
		if hasRowSeparator(c.Context) {
			continue
		}

		hour, minute := mustSplit(c.Start)
		if isGatheringTime(hour, minute) && hasRegistrationKeyword(c.Context) {
			continue
		}
		if c.Loose && (minute%5 != 0 || hour < 8) {
			continue
		}

		return c, false
	}

	return cands[0], true
}

// hasStaleYear reports whether the context carries a year token from before
// the reference year, a telltale of an old listing printed on the same
// graphic.
func hasStaleYear(context string, refYear int) bool {
	for _, m := range yearToken.FindAllString(context, -1) {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year < refYear {
			return true
		}
	}
	return false
}

func hasRowSeparator(context string) bool {
	for _, glyph := range rowSeparatorGlyphs {
		if strings.Contains(context, glyph) {
			return true
		}
	}
	return false
}

// isGatheringTime matches the 08:00-09:59 15-minute-aligned slots typical
// of registration and opening-remarks lines.
func isGatheringTime(hour, minute int) bool {
	return (hour == 8 || hour == 9) && minute%15 == 0
}

func hasRegistrationKeyword(context string) bool {
	for _, kw := range registrationKeywords {
		if strings.Contains(context, kw) {
			return true
		}
	}
	return false
}

// formatClock validates hour/minute strings and renders "HH:MM".
func formatClock(hourStr, minuteStr string) (string, bool) {
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minuteStr))
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func mustSplit(hhmm string) (hour, minute int) {
	parts := strings.SplitN(hhmm, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}

func insideSpan(spans [][2]int, offset int) bool {
	for _, s := range spans {
		if offset >= s[0] && offset < s[1] {
			return true
		}
	}
	return false
}

// contextWindow slices a byte window around a match, snapped to rune
// boundaries.
func contextWindow(text string, start, end int) string {
	lo := start - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := end + contextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
