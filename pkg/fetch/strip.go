package fetch

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML returns the visible text of an HTML document, with script and
// style content dropped and whitespace collapsed to single spaces.
func StripHTML(page string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(page))
	var sb strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isSkippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(tokenizer.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

func isSkippedTag(name string) bool {
	return name == "script" || name == "style" || name == "noscript"
}
