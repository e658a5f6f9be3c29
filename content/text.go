package content

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// skipped elements contribute no visible text.
var skipped = map[string]bool{"script": true, "style": true, "noscript": true, "template": true}

// StripTags returns the text content of an HTML fragment with whitespace
// collapsed. Every tag boundary counts as whitespace, so adjacent paragraphs
// never merge into one word.
func StripTags(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is the content.
			return collapse(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if skipped[string(name)] {
				depth++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if skipped[string(name)] && depth > 0 {
				depth--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if depth == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// WordCount counts the words of an HTML fragment after stripping its tags.
// A word is a run of letters, apostrophes and hyphens holding at least one
// letter; numbers are not words.
func WordCount(fragment string) int {
	n := 0
	for _, w := range strings.FieldsFunc(StripTags(fragment), func(r rune) bool { return !isWordRune(r) }) {
		if strings.IndexFunc(w, unicode.IsLetter) >= 0 {
			n++
		}
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\'' || r == '-' || r == '’'
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
