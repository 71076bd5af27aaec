package model

import "time"

// Link is a hyperlink extracted from the HTML variant of a newsletter email.
// HTMLOffset is the byte offset of the anchor tag in the HTML source; it is
// what positional link association orders by.
type Link struct {
	URL        string
	Label      string
	HTMLOffset int
}

// EventBlock is a contiguous segment of the normalized plain text describing
// one candidate event. Offset is its start position in the normalized text.
// Anchor is the opening snippet of the block used to locate it inside the
// original HTML.
type EventBlock struct {
	Text   string
	Offset int
	Anchor string
}

// TimeCandidate is a clock-looking token found while scanning fetched
// invitation content. SourceOffset is the byte offset of the match in the
// scanned text; Context is a small window of surrounding text used by the
// rejection heuristics. Loose marks candidates matched by the permissive
// single-time patterns, which are held to stricter minute-grid rules.
type TimeCandidate struct {
	Start        string
	End          string
	SourceOffset int
	Context      string
	Loose        bool
}

// Event is the terminal record produced for one valid event block. It is
// never mutated after time resolution completes.
type Event struct {
	Title           string
	Date            time.Time // concrete calendar day, year always resolved
	Time            string    // "HH:MM", always set (default when unresolved)
	EndTime         string    // "" when unknown
	DurationMinutes int
	Location        string
	Organizer       string
	EventType       string
	IsVirtual       bool
	Description     string
	Links           []Link // 0-2 entries, each assigned to exactly one event
	TimeVerified    bool   // true only when corroborated by fetched content
}
