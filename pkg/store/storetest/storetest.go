// Package storetest provides a conformance suite for store providers.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/stretchr/testify/require"
)

// Run exercises p against the store contract. p must be empty and initialized.
func Run(t *testing.T, p store.Provider) {
	t.Helper()

	ctx := context.Background()

	uploaded := time.Date(2021, 11, 13, 10, 0, 0, 0, time.UTC)

	t.Run("files", func(t *testing.T) {
		require.NoError(t, p.AddFile(ctx, store.File{Hash: "f1", Name: "bases.pdf", Uploaded: uploaded}))
		require.NoError(t, p.AddFile(ctx, store.File{Hash: "f2", Name: "acta.png", Uploaded: uploaded.Add(time.Hour)}))

		err := p.AddFile(ctx, store.File{Hash: "f1", Name: "again.pdf", Uploaded: uploaded})
		require.ErrorIs(t, err, store.ErrExists)

		file, err := p.GetFile(ctx, "f1")
		require.NoError(t, err)
		require.Equal(t, "bases.pdf", file.Name)
		require.True(t, uploaded.Equal(file.Uploaded))

		_, err = p.GetFile(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		files, err := p.ListFiles(ctx)
		require.NoError(t, err)
		require.Len(t, files, 2)
		require.Equal(t, "f2", files[0].Hash)
		require.Equal(t, "f1", files[1].Hash)
	})

	t.Run("paragraphs", func(t *testing.T) {
		require.NoError(t, p.AddParagraph(ctx, store.Paragraph{FileHash: "f1", Hash: "p2", Contents: "Second", Position: 1}))
		require.NoError(t, p.AddParagraph(ctx, store.Paragraph{FileHash: "f1", Hash: "p1", Contents: "First", Position: 0}))
		require.NoError(t, p.AddParagraph(ctx, store.Paragraph{FileHash: "f2", Hash: "p3", Contents: "Other", Position: 0}))

		err := p.AddParagraph(ctx, store.Paragraph{FileHash: "f1", Hash: "p1", Contents: "First", Position: 0})
		require.ErrorIs(t, err, store.ErrExists)

		paragraphs, err := p.ListParagraphs(ctx, "f1")
		require.NoError(t, err)
		require.Equal(t, []store.Paragraph{
			{FileHash: "f1", Hash: "p1", Contents: "First", Position: 0},
			{FileHash: "f1", Hash: "p2", Contents: "Second", Position: 1},
		}, paragraphs)

		paragraph, err := p.GetParagraph(ctx, "p3")
		require.NoError(t, err)
		require.Equal(t, "Other", paragraph.Contents)

		_, err = p.GetParagraph(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		paragraphs, err = p.ListParagraphs(ctx, "missing")
		require.NoError(t, err)
		require.Empty(t, paragraphs)
	})

	t.Run("keywords", func(t *testing.T) {
		require.NoError(t, p.AddKeyword(ctx, store.Keyword{ParagraphHash: "p1", Text: "bases", Score: 0.991}))
		require.NoError(t, p.AddKeyword(ctx, store.Keyword{ParagraphHash: "p1", Text: "concurso", Score: 0.999}))
		require.NoError(t, p.AddKeyword(ctx, store.Keyword{ParagraphHash: "p2", Text: "bases", Score: 0.995}))
		require.NoError(t, p.AddKeyword(ctx, store.Keyword{ParagraphHash: "p3", Text: "acta", Score: 0.999}))

		err := p.AddKeyword(ctx, store.Keyword{ParagraphHash: "p1", Text: "bases", Score: 0.5})
		require.ErrorIs(t, err, store.ErrExists)

		keywords, err := p.ParagraphKeywords(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, []store.Keyword{
			{ParagraphHash: "p1", Text: "concurso", Score: 0.999},
			{ParagraphHash: "p1", Text: "bases", Score: 0.991},
		}, keywords)

		keywords, err = p.FileKeywords(ctx, "f1")
		require.NoError(t, err)
		require.Equal(t, []store.Keyword{
			{Text: "concurso", Score: 0.999},
			{Text: "bases", Score: 0.995},
		}, keywords)

		keywords, err = p.FileKeywords(ctx, "f2")
		require.NoError(t, err)
		require.Equal(t, []store.Keyword{{Text: "acta", Score: 0.999}}, keywords)
	})

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, p.Init(ctx, false))

		files, err := p.ListFiles(ctx)
		require.NoError(t, err)
		require.Len(t, files, 2)

		require.NoError(t, p.Init(ctx, true))

		files, err = p.ListFiles(ctx)
		require.NoError(t, err)
		require.Empty(t, files)
	})
}
