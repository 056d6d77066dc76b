package web

import (
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/stretchr/testify/require"
)

func TestRenderParagraph(t *testing.T) {
	html, err := renderParagraph("Bases del concurso de ciencia.", []store.Keyword{
		{Text: "concurso"},
		{Text: "bases"},
	})

	require.NoError(t, err)
	require.Equal(t, "<p><strong>Bases</strong> del <strong>concurso</strong> de ciencia.</p>\n", string(html))
}

func TestRenderParagraphEscapes(t *testing.T) {
	html, err := renderParagraph("# 1. <script>alert(1)</script> *nota*", nil)

	require.NoError(t, err)
	require.Equal(t, "<p># 1. &lt;script&gt;alert(1)&lt;/script&gt; *nota*</p>\n", string(html))
}

func TestKeywordSpans(t *testing.T) {
	spans := keywordSpans("premio del jurado y premio especial", []store.Keyword{
		{Text: "premio"},
		{Text: "premio especial"},
		{Text: " "},
	})

	require.Equal(t, []span{{0, 6}, {20, 35}}, spans)
}
