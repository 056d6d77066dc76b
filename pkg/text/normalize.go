package text

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`[^\S\n]*\n\s*\n\s*`)
	lineBreak      = regexp.MustCompile(`[^\S\n]*\n\s*`)
)

// Normalize collapses runs of spaces, keeps single and double line breaks
// and trims the result.
func Normalize(text string) string {
	text = strings.TrimSpace(text)

	// \a is used as a temporary line break marker
	text = strings.ReplaceAll(text, "\a", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	text = paragraphBreak.ReplaceAllString(text, "\a\a")
	text = lineBreak.ReplaceAllString(text, "\a")

	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "\a", "\n")

	return strings.TrimSpace(text)
}
