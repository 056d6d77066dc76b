package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitterFits(t *testing.T) {
	splitter := NewSplitter()
	splitter.ChunkSize = 1000

	chunks := splitter.Split("short text")

	require.Equal(t, []string{"short text"}, chunks)
}

func TestSplitterSentences(t *testing.T) {
	splitter := NewSplitter()
	splitter.ChunkSize = 20

	text := "This is a test. This is another sentence. And one more."
	chunks := splitter.Split(text)

	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), splitter.ChunkSize, "chunk %d: %q", i, chunk)
	}

	require.Equal(t, "This is a test.", chunks[0])
	require.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
}

func TestSplitterParagraphs(t *testing.T) {
	splitter := NewSplitter()
	splitter.ChunkSize = 30

	chunks := splitter.Split("Paragraph one.\n\nParagraph two.\n\nParagraph three.")

	require.Equal(t, []string{"Paragraph one.", "Paragraph two.", "Paragraph three."}, chunks)
}

func TestSplitterLongWord(t *testing.T) {
	splitter := NewSplitter()
	splitter.ChunkSize = 4

	chunks := splitter.Split("abcdefghij")

	require.Equal(t, []string{"abcd", "efgh", "ij"}, chunks)
}

func TestSplitterBytes(t *testing.T) {
	splitter := NewSplitter()
	splitter.ChunkSize = 7
	splitter.LenFunc = ByteLen

	text := "ñandú ñandú ñandú"
	chunks := splitter.Split(text)

	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), 7)
		require.True(t, strings.ToValidUTF8(chunk, "?") == chunk)
	}

	require.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "a b\nc\n\nd", Normalize("  a   b\r\n  c \n\n\n d  "))
}

func TestNormalizeTrailingSpaces(t *testing.T) {
	require.Equal(t, "uno\ndos\n\ntres", Normalize("uno \t\ndos  \n \n\ttres"))
}

func TestSplitNormalize(t *testing.T) {
	splitter := NewSplitter()
	splitter.Normalize = true

	require.Equal(t, []string{"a b\nc"}, splitter.Split("a   b \n  c"))
}
