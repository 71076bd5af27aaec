package linkassoc_test

import (
	"strings"
	"testing"

	"newsletter-automation/internal/model"
	"newsletter-automation/internal/newsletter/linkassoc"
)

func TestExtractLinks(t *testing.T) {
	t.Run("Extracts labeled anchors with offsets", func(t *testing.T) {
		html := `<p>פרטים <a href="https://t.co/a">ההרשמה בהזמנה</a> ועוד ` +
			`<a href="https://t.co/b">מצטרפים בלינק</a> <a href="https://t.co/c">סתם קישור</a></p>`
		links := linkassoc.ExtractLinks(html)

		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d", len(links))
		}
		if links[0].URL != "https://t.co/a" || links[1].URL != "https://t.co/b" {
			t.Errorf("unexpected URLs: %+v", links)
		}
		if links[0].HTMLOffset >= links[1].HTMLOffset {
			t.Errorf("offsets not in document order: %d >= %d", links[0].HTMLOffset, links[1].HTMLOffset)
		}
	})

	t.Run("Empty HTML yields no links", func(t *testing.T) {
		if got := linkassoc.ExtractLinks(""); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

// buildTwoBlockEmail constructs an HTML email with two event blocks that
// share an identical link label.
func buildTwoBlockEmail() (html string, blocks []model.EventBlock) {
	block1 := "ביום שני, ה7/7, דיון ראשון בנושא חשוב מאוד"
	block2 := "ביום רביעי, ה9/7, דיון שני בנושא אחר לגמרי"

	html = "<div>" + block1 + ` כל הפרטים <a href="https://t.co/first">בהזמנה</a></div>` +
		"<div>" + block2 + ` כל הפרטים <a href="https://t.co/second">בהזמנה</a></div>`

	mk := func(text string) model.EventBlock {
		runes := []rune(text)
		return model.EventBlock{Text: text, Anchor: string(runes[:30])}
	}
	return html, []model.EventBlock{mk(block1), mk(block2)}
}

func TestAssignPositional(t *testing.T) {
	html, blocks := buildTwoBlockEmail()
	pool := linkassoc.ExtractLinks(html)
	if len(pool) != 2 {
		t.Fatalf("expected 2 links in pool, got %d", len(pool))
	}

	assigned1, pool := linkassoc.Assign(pool, html, blocks[0], &blocks[1])
	assigned2, pool := linkassoc.Assign(pool, html, blocks[1], nil)

	if len(assigned1) != 1 || len(assigned2) != 1 {
		t.Fatalf("expected one link per block, got %d and %d", len(assigned1), len(assigned2))
	}

	// Document order: first block gets the earlier link even though the
	// labels are identical.
	if assigned1[0].URL != "https://t.co/first" {
		t.Errorf("block 1 got %q, want the first link", assigned1[0].URL)
	}
	if assigned2[0].URL != "https://t.co/second" {
		t.Errorf("block 2 got %q, want the second link", assigned2[0].URL)
	}

	// Uniqueness: no link may be attached to two events.
	if assigned1[0] == assigned2[0] {
		t.Errorf("same link assigned to both blocks")
	}
	if len(pool) != 0 {
		t.Errorf("pool should be exhausted, %d left", len(pool))
	}
}

func TestAssignCategories(t *testing.T) {
	block := model.EventBlock{
		Text:   "ביום שני, ה7/7, דיון עם הרשמה בהזמנה והצטרפות בלינק",
		Anchor: "ביום שני, ה7/7, דיון עם הרשמה",
	}
	html := "<div>" + block.Text +
		` <a href="https://t.co/inv">בהזמנה</a>` +
		` <a href="https://t.co/join">בלינק</a>` +
		` <a href="https://t.co/extra">בהזמנה</a></div>`

	pool := linkassoc.ExtractLinks(html)
	assigned, remaining := linkassoc.Assign(pool, html, block, nil)

	// One per category, invitation first; the second invitation link stays
	// in the pool.
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assigned links, got %d", len(assigned))
	}
	if assigned[0].URL != "https://t.co/inv" || assigned[1].URL != "https://t.co/join" {
		t.Errorf("unexpected assignment: %+v", assigned)
	}
	if len(remaining) != 1 || remaining[0].URL != "https://t.co/extra" {
		t.Errorf("unexpected remaining pool: %+v", remaining)
	}
}

func TestAssignFallbackWithoutHTML(t *testing.T) {
	pool := []model.Link{
		{URL: "https://t.co/a", Label: "ההזמנה המלאה בהזמנה המצורפת", HTMLOffset: 10},
		{URL: "https://t.co/b", Label: "בלינק", HTMLOffset: 20},
	}
	block := model.EventBlock{
		Text: "ביום שני, ה7/7, דיון. הצטרפות בלינק בשעה שבע",
	}

	assigned, remaining := linkassoc.Assign(pool, "", block, nil)
	if len(assigned) != 1 {
		t.Fatalf("expected 1 link via label fallback, got %d", len(assigned))
	}
	if assigned[0].URL != "https://t.co/b" {
		t.Errorf("wrong link assigned: %q", assigned[0].URL)
	}
	if len(remaining) != 1 || remaining[0].URL != "https://t.co/a" {
		t.Errorf("unexpected remaining pool: %+v", remaining)
	}
}

func TestAssignBlockNotInHTML(t *testing.T) {
	// Anchor not present in the HTML: falls back to label matching instead
	// of failing.
	pool := []model.Link{
		{URL: "https://t.co/x", Label: "בהזמנה", HTMLOffset: 5},
	}
	block := model.EventBlock{
		Text:   "ביום שני, ה7/7, דיון. פרטים בהזמנה כרגיל",
		Anchor: "טקסט שלא קיים בכלל במקור",
	}
	html := `<div>תוכן אחר לגמרי <a href="https://t.co/x">בהזמנה</a></div>`

	assigned, _ := linkassoc.Assign(pool, html, block, nil)
	if len(assigned) != 1 {
		t.Fatalf("expected fallback assignment, got %d links", len(assigned))
	}
	if !strings.Contains(block.Text, assigned[0].Label) {
		t.Errorf("fallback assigned a label absent from the block")
	}
}
