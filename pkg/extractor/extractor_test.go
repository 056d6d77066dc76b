package extractor

import (
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"

	"github.com/stretchr/testify/require"
)

func TestDocumentPages(t *testing.T) {
	doc := &Document{
		Lines: []Line{
			{Page: 1, Text: "a", Top: 0.1},
			{Page: 1, Text: "b", Top: 0.2},
			{Page: 2, Text: "c", Top: 0.1},
			{Page: 1, Text: "d", Top: 0.3},
		},
	}

	require.Equal(t, []int{1, 2}, doc.PageNumbers())

	require.Equal(t, []segmenter.Line{
		{Text: "a", Top: 0.1},
		{Text: "b", Top: 0.2},
		{Text: "d", Top: 0.3},
	}, doc.PageLines(1))

	require.Empty(t, doc.PageLines(3))
}
