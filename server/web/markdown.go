package web

import (
	"bytes"
	"cmp"
	"html/template"
	"regexp"
	"slices"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

type span struct {
	start, end int
}

// renderParagraph converts recognized text to HTML, emphasizing the keywords.
// The text is treated as literal: markdown punctuation is escaped and raw HTML
// is never passed through.
func renderParagraph(text string, keywords []store.Keyword) (template.HTML, error) {
	var source strings.Builder

	pos := 0

	for _, s := range keywordSpans(text, keywords) {
		source.WriteString(escapeMarkdown(text[pos:s.start]))

		source.WriteString("**")
		source.WriteString(escapeMarkdown(text[s.start:s.end]))
		source.WriteString("**")

		pos = s.end
	}

	source.WriteString(escapeMarkdown(text[pos:]))

	var buf bytes.Buffer

	if err := markdown.Convert([]byte(source.String()), &buf); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil
}

// keywordSpans finds non-overlapping, case-insensitive keyword occurrences,
// preferring longer keywords.
func keywordSpans(text string, keywords []store.Keyword) []span {
	phrases := make([]string, 0, len(keywords))

	for _, k := range keywords {
		if k.Text = strings.TrimSpace(k.Text); k.Text != "" {
			phrases = append(phrases, k.Text)
		}
	}

	slices.SortFunc(phrases, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	var result []span

	for _, phrase := range phrases {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))

		for _, m := range re.FindAllStringIndex(text, -1) {
			s := span{m[0], m[1]}

			overlaps := slices.ContainsFunc(result, func(o span) bool {
				return s.start < o.end && o.start < s.end
			})

			if !overlaps {
				result = append(result, s)
			}
		}
	}

	slices.SortFunc(result, func(a, b span) int {
		return cmp.Compare(a.start, b.start)
	})

	return result
}

func escapeMarkdown(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r < 128 && isPunct(byte(r)) {
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

func isPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
