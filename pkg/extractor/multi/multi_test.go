package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"

	"github.com/stretchr/testify/require"
)

type mockExtractor struct {
	doc *extractor.Document
	err error

	calls int
}

func (m *mockExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	m.calls++
	return m.doc, m.err
}

func TestExtract(t *testing.T) {
	t.Run("skips unsupported", func(t *testing.T) {
		first := &mockExtractor{err: extractor.ErrUnsupported}
		second := &mockExtractor{doc: &extractor.Document{Lines: []extractor.Line{{Text: "ok"}}}}

		doc, err := New(first, second).Extract(context.Background(), extractor.File{}, nil)
		require.NoError(t, err)

		require.Equal(t, "ok", doc.Lines[0].Text)
		require.Equal(t, 1, first.calls)
	})

	t.Run("falls back after failure", func(t *testing.T) {
		first := &mockExtractor{err: errors.New("boom")}
		second := &mockExtractor{doc: &extractor.Document{}}

		_, err := New(first, second).Extract(context.Background(), extractor.File{}, nil)
		require.NoError(t, err)
	})

	t.Run("reports failures", func(t *testing.T) {
		boom := errors.New("boom")

		_, err := New(&mockExtractor{err: boom}, &mockExtractor{err: extractor.ErrUnsupported}).Extract(context.Background(), extractor.File{}, nil)
		require.ErrorIs(t, err, boom)
	})

	t.Run("nothing supports the file", func(t *testing.T) {
		_, err := New().Extract(context.Background(), extractor.File{}, nil)
		require.ErrorIs(t, err, extractor.ErrUnsupported)
	})
}
