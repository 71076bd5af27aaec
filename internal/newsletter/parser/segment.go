package parser

import (
	"regexp"
	"strings"

	"newsletter-automation/internal/model"
)

// dayMarker is the fixed phrase the newsletters use to open each event
// description ("on day ..." followed by the weekday name).
const dayMarker = "ביום"

// anchorRunes is how much of a block's opening text is kept for locating
// the block inside the original HTML.
const anchorRunes = 30

// minBlockLen is the minimum rune length for a segment to count as an
// event block.
const minBlockLen = 15

var dayMonthToken = regexp.MustCompile(`\d{1,2}/\d{1,2}`)

// SplitEventBlocks splits normalized text at every day-marker occurrence,
// keeping the marker as part of the following block. Segments shorter than
// minBlockLen runes or lacking a numeric day/month token are discarded.
// Empty input yields zero blocks.
func SplitEventBlocks(content string) []model.EventBlock {
	if content == "" {
		return nil
	}

	starts := markerOffsets(content)
	if len(starts) == 0 {
		starts = []int{0}
	} else if starts[0] != 0 {
		// Text before the first marker is still a candidate segment.
		starts = append([]int{0}, starts...)
	}

	var blocks []model.EventBlock
	for i, start := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}

		text := strings.TrimSpace(content[start:end])
		if len([]rune(text)) <= minBlockLen || !dayMonthToken.MatchString(text) {
			continue
		}

		blocks = append(blocks, model.EventBlock{
			Text:   text,
			Offset: start,
			Anchor: anchorOf(text),
		})
	}

	return blocks
}

// markerOffsets returns the byte offsets of every day-marker occurrence.
func markerOffsets(content string) []int {
	var offsets []int
	searchFrom := 0
	for {
		idx := strings.Index(content[searchFrom:], dayMarker)
		if idx < 0 {
			return offsets
		}
		offsets = append(offsets, searchFrom+idx)
		searchFrom += idx + len(dayMarker)
	}
}

// anchorOf returns the opening snippet of a block used for HTML lookup.
func anchorOf(text string) string {
	runes := []rune(text)
	if len(runes) > anchorRunes {
		runes = runes[:anchorRunes]
	}
	return string(runes)
}
