package parser

import (
	"regexp"
	"strings"
	"time"

	"newsletter-automation/internal/model"
	"newsletter-automation/pkg/hebdate"
)

// fallbackTitle is used when no title pattern matches a block.
const fallbackTitle = "אירוע זכויות נשים"

// virtualLocation is the location value assigned to online events.
const virtualLocation = "וירטואלי"

var (
	// Date token: Hebrew day prefix + 1-2 digit day, slash, 1-2 digit month.
	datePattern = regexp.MustCompile(`ה(\d{1,2})/(\d{1,2})`)

	virtualPattern = regexp.MustCompile(`(?i)וירטואלי|זום|zoom|online`)
	knessetPattern = regexp.MustCompile(`בכנסת|הכנסת`)
)

// titleRule is one entry in the priority-ordered title table. The first
// rule whose pattern matches wins; group selects the capture to return.
type titleRule struct {
	pattern *regexp.Regexp
	group   int
}

var titleRules = []titleRule{
	{regexp.MustCompile(`בנושא "([^"]+)"`), 1},
	{regexp.MustCompile(`בנושא '([^']+)'`), 1},
	{regexp.MustCompile(`בנושא ([^.]+)\.`), 1},
	{regexp.MustCompile(`"([^"]+)"`), 1},
	{regexp.MustCompile(`(מפגש|הרצאה|דיון)\s+([^.]+)`), 2},
}

// Fields holds everything the field extractor pulls out of one block.
type Fields struct {
	Date      time.Time
	Title     string
	Location  string
	Organizer string
	EventType string
	IsVirtual bool
}

// FieldExtractor extracts structured fields from event blocks using
// ordered pattern tables.
type FieldExtractor struct {
	dates      *hebdate.Parser
	cities     []string
	eventTypes map[string]string // type code -> keyword
	organizers map[string]string // keyword -> organizer name
}

// NewFieldExtractor builds a field extractor from the configured keyword
// tables.
func NewFieldExtractor(dates *hebdate.Parser, cities []string, eventTypes, organizers map[string]string) *FieldExtractor {
	return &FieldExtractor{
		dates:      dates,
		cities:     cities,
		eventTypes: eventTypes,
		organizers: organizers,
	}
}

// Extract pulls all structured fields out of a block. A block with no
// resolvable date fails entirely; every other field degrades to its zero
// value. The reference time drives year resolution and must be pinned in
// tests.
func (e *FieldExtractor) Extract(block model.EventBlock, ref time.Time) (Fields, error) {
	date, err := e.extractDate(block.Text, ref)
	if err != nil {
		return Fields{}, err
	}

	location := e.extractLocation(block.Text)

	return Fields{
		Date:      date,
		Title:     extractTitle(block.Text),
		Location:  location,
		Organizer: e.extractOrganizer(block.Text),
		EventType: e.extractEventType(block.Text),
		IsVirtual: location == virtualLocation || virtualPattern.MatchString(block.Text),
	}, nil
}

func (e *FieldExtractor) extractDate(text string, ref time.Time) (time.Time, error) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, ErrNoDate
	}
	day := atoi(m[1])
	month := atoi(m[2])
	return e.dates.ResolveDayMonth(day, month, ref)
}

func extractTitle(text string) string {
	for _, rule := range titleRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[rule.group])
		}
	}
	return fallbackTitle
}

func (e *FieldExtractor) extractLocation(text string) string {
	if virtualPattern.MatchString(text) {
		return virtualLocation
	}
	// The legislature sits in a fixed city.
	if knessetPattern.MatchString(text) {
		return "ירושלים"
	}
	for _, city := range e.cities {
		if strings.Contains(text, city) {
			return city
		}
	}
	return ""
}

func (e *FieldExtractor) extractOrganizer(text string) string {
	for keyword, organizer := range e.organizers {
		if strings.Contains(text, keyword) {
			return organizer
		}
	}
	return ""
}

func (e *FieldExtractor) extractEventType(text string) string {
	// Fixed evaluation order so a block mentioning several keywords maps
	// deterministically.
	for _, code := range []string{"discussion", "lecture", "meeting"} {
		keyword, ok := e.eventTypes[code]
		if !ok {
			continue
		}
		if strings.Contains(text, keyword) {
			return code
		}
	}
	// Any additional configured types are checked after the built-in order.
	for code, keyword := range e.eventTypes {
		if code == "discussion" || code == "lecture" || code == "meeting" {
			continue
		}
		if strings.Contains(text, keyword) {
			return code
		}
	}
	return ""
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
