package engine

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// extractTitle extracts the <title> content from raw HTML bytes.
// Returns "" for non-HTML bodies or pages without a title.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
