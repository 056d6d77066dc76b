package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SemanticLevel ranks the places where text may be cut.
type SemanticLevel int

const (
	LevelChar SemanticLevel = iota
	LevelWord
	LevelSentence
	LevelLineBreak
)

// Splitter cuts text into chunks no longer than ChunkSize as measured by
// LenFunc, preferring paragraph, sentence and word boundaries in that order.
type Splitter struct {
	ChunkSize int

	LenFunc   func(string) int
	Trim      bool
	Normalize bool
}

func NewSplitter() Splitter {
	return Splitter{
		ChunkSize: 1500,

		LenFunc:   utf8.RuneCountInString,
		Trim:      true,
		Normalize: false,
	}
}

// ByteLen measures text in bytes, for services with byte based limits.
func ByteLen(text string) int {
	return len(text)
}

func (s *Splitter) Split(text string) []string {
	if s.Normalize {
		text = Normalize(text)
	}

	result := []string{}

	for {
		if s.Trim {
			text = strings.TrimLeftFunc(text, unicode.IsSpace)
		}

		if text == "" {
			break
		}

		if s.LenFunc(text) <= s.ChunkSize {
			result = s.appendChunk(result, text)
			break
		}

		end := s.cut(text)

		result = s.appendChunk(result, text[:end])
		text = text[end:]
	}

	return result
}

func (s *Splitter) appendChunk(result []string, chunk string) []string {
	if s.Trim {
		chunk = strings.TrimSpace(chunk)
	}

	if chunk == "" {
		return result
	}

	return append(result, chunk)
}

// cut returns the end offset of the next chunk.
func (s *Splitter) cut(text string) int {
	limit := s.fit(text)

	for level := LevelLineBreak; level > LevelChar; level-- {
		if end := lastBoundary(text[:limit], level); end > 0 {
			return end
		}
	}

	return limit
}

// fit returns the largest rune aligned offset whose prefix fits into ChunkSize.
// At least one rune is always consumed.
func (s *Splitter) fit(text string) int {
	best := 0
	low, high := 1, len(text)

	for low <= high {
		mid := (low + high) / 2
		end := mid

		for end < len(text) && !utf8.RuneStart(text[end]) {
			end++
		}

		if s.LenFunc(text[:end]) <= s.ChunkSize {
			best = max(best, end)
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if best == 0 {
		_, size := utf8.DecodeRuneInString(text)
		return size
	}

	return best
}

// lastBoundary returns the offset just after the last boundary of the given level, or 0.
func lastBoundary(text string, level SemanticLevel) int {
	switch level {
	case LevelLineBreak:
		if i := strings.LastIndex(text, "\n\n"); i > 0 {
			return i + 2
		}

	case LevelSentence:
		for i := len(text) - 2; i > 0; i-- {
			if (text[i] == '.' || text[i] == '!' || text[i] == '?') && isSpace(text[i+1]) {
				return i + 2
			}
		}

	case LevelWord:
		for i := len(text) - 1; i > 0; i-- {
			if isSpace(text[i]) {
				return i + 1
			}
		}
	}

	return 0
}

// isSpace only matches ASCII whitespace so that UTF-8 continuation bytes are never cut.
func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}
