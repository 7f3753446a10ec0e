package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// nbsp shows up both as the entity and as the decoded rune once a
// tokenizer has been through the markup.
const nbsp = " "

// IsMeaningful reports whether markup has visible content: it
// normalizes visually-empty constructs (a lone empty paragraph,
// NBSP-only runs, bare <br>) by extracting text only, then checks the
// trimmed result. Tag-only markup is not meaningful.
func IsMeaningful(markup string) bool {
	var text strings.Builder

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			cleaned := strings.ReplaceAll(text.String(), nbsp, " ")
			return strings.TrimSpace(cleaned) != ""
		case html.TextToken:
			text.Write(z.Text())
		}
	}
}
