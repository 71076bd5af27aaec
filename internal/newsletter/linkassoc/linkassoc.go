// Package linkassoc extracts invitation hyperlinks from the HTML variant of
// a newsletter email and assigns them to event blocks by document position.
//
// Labels repeat across events in the same email ("בהזמנה" appears once per
// event), so matching by label text alone is ambiguous. Association instead
// locates each block's range inside the HTML source and picks the first
// still-available link whose anchor offset falls inside that range. The
// available pool is threaded through the per-block fold as an explicit
// value, so a link assigned to one event can never reach a later one.
package linkassoc

import (
	"regexp"
	"sort"
	"strings"

	"newsletter-automation/internal/model"
)

// Label markers that identify invitation anchors in the HTML.
const (
	LabelInvitation = "בהזמנה"
	LabelLink       = "בלינק"
)

var anchorPattern = regexp.MustCompile(`href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)

// ExtractLinks parses the HTML once and returns every anchor whose visible
// text carries one of the label markers, with its byte offset in the HTML
// source. The result is the shared pool for the whole email.
func ExtractLinks(html string) []model.Link {
	if html == "" {
		return nil
	}

	var links []model.Link
	for _, m := range anchorPattern.FindAllStringSubmatchIndex(html, -1) {
		url := html[m[2]:m[3]]
		label := strings.TrimSpace(html[m[4]:m[5]])
		if !strings.Contains(label, LabelInvitation) && !strings.Contains(label, LabelLink) {
			continue
		}
		links = append(links, model.Link{
			URL:        url,
			Label:      label,
			HTMLOffset: m[0],
		})
	}
	return links
}

// Assign selects the links belonging to one block and returns them together
// with the remaining pool. At most one link per label category is assigned,
// invitation links first. The pool passed in is not mutated.
//
// When the HTML is missing or the block cannot be located in it, assignment
// falls back to label-substring matching against the block text.
func Assign(pool []model.Link, html string, block model.EventBlock, next *model.EventBlock) (assigned, remaining []model.Link) {
	if len(pool) == 0 {
		return nil, pool
	}

	if html == "" {
		return assignByLabel(pool, block)
	}

	blockStart := strings.Index(html, block.Anchor)
	if blockStart < 0 {
		return assignByLabel(pool, block)
	}

	blockEnd := len(html)
	if next != nil {
		if idx := strings.Index(html[blockStart:], next.Anchor); idx > 0 {
			blockEnd = blockStart + idx
		}
	}

	ordered := make([]model.Link, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].HTMLOffset < ordered[j].HTMLOffset
	})

	taken := make(map[model.Link]bool)
	for _, marker := range []string{LabelInvitation, LabelLink} {
		for _, link := range ordered {
			if taken[link] || !strings.Contains(link.Label, marker) {
				continue
			}
			if link.HTMLOffset >= blockStart && link.HTMLOffset < blockEnd {
				assigned = append(assigned, link)
				taken[link] = true
				break
			}
		}
	}

	return assigned, without(pool, taken)
}

// assignByLabel is the positional fallback: a link belongs to the block if
// its label text appears verbatim inside the block.
func assignByLabel(pool []model.Link, block model.EventBlock) (assigned, remaining []model.Link) {
	taken := make(map[model.Link]bool)
	for _, marker := range []string{LabelInvitation, LabelLink} {
		for _, link := range pool {
			if taken[link] || !strings.Contains(link.Label, marker) {
				continue
			}
			if strings.Contains(block.Text, link.Label) {
				assigned = append(assigned, link)
				taken[link] = true
				break
			}
		}
	}
	return assigned, without(pool, taken)
}

func without(pool []model.Link, taken map[model.Link]bool) []model.Link {
	if len(taken) == 0 {
		return pool
	}
	remaining := make([]model.Link, 0, len(pool)-len(taken))
	for _, link := range pool {
		if !taken[link] {
			remaining = append(remaining, link)
		}
	}
	return remaining
}
