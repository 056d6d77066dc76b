package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/keyword"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter/spacing"
	"github.com/imharvol/cienciathon-2021/pkg/storage"
	storagememory "github.com/imharvol/cienciathon-2021/pkg/storage/memory"
	"github.com/imharvol/cienciathon-2021/pkg/store"
	storememory "github.com/imharvol/cienciathon-2021/pkg/store/memory"

	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	document *extractor.Document
	err      error

	options *extractor.ExtractOptions
}

func (e *fakeExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	e.options = options
	return e.document, e.err
}

type fakeKeyworder struct{}

func (fakeKeyworder) Extract(ctx context.Context, text string, options *keyword.ExtractOptions) ([]keyword.Keyword, error) {
	if strings.Contains(text, "broken") {
		return nil, errors.New("service unavailable")
	}

	var result []keyword.Keyword

	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".")

		if len(word) > 4 {
			result = append(result, keyword.Keyword{Text: strings.ToLower(word), Score: 0.995})
		}
	}

	return result, nil
}

// failingStore fails the nth AddParagraph call once.
type failingStore struct {
	store.Provider

	fail  int
	calls int
}

func (s *failingStore) AddParagraph(ctx context.Context, paragraph store.Paragraph) error {
	s.calls++

	if s.calls == s.fail {
		return errors.New("disk full")
	}

	return s.Provider.AddParagraph(ctx, paragraph)
}

func twoPages() *extractor.Document {
	return &extractor.Document{
		Lines: []extractor.Line{
			{Page: 1, Text: "Bases del concurso", Top: 0.10},
			{Page: 1, Text: "para estudiantes.", Top: 0.12},
			{Page: 1, Text: "Premios y jurado", Top: 0.20},
			{Page: 1, Text: "broken paragraph", Top: 0.22},
			{Page: 2, Text: "   ", Top: 0.05},
			{Page: 2, Text: "Segunda pagina", Top: 0.10},
		},
	}
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	s, _ := storememory.New()
	buffer, _ := storagememory.New()
	seg, _ := spacing.New()

	e := &fakeExtractor{document: twoPages()}

	p, err := NewPipeline(s, e, seg, WithStorage(buffer), WithKeyworder(fakeKeyworder{}))
	require.NoError(t, err)

	file := extractor.File{Name: "bases.pdf", Content: []byte("%PDF-1.4"), ContentType: "application/pdf"}

	result, err := p.Process(ctx, file)
	require.NoError(t, err)

	hash := Hash(file.Content)

	require.Equal(t, hash, result.File.Hash)
	require.Equal(t, "bases.pdf", result.File.Name)

	require.NotNil(t, e.options.Object)
	require.Equal(t, hash, e.options.Object.Key)

	_, err = buffer.Download(ctx, hash)
	require.ErrorIs(t, err, storage.ErrNotFound)

	paragraphs, err := s.ListParagraphs(ctx, hash)
	require.NoError(t, err)
	require.Len(t, paragraphs, 3)

	require.Equal(t, "Bases del concurso para estudiantes.", paragraphs[0].Contents)
	require.Equal(t, "Premios y jurado broken paragraph", paragraphs[1].Contents)
	require.Equal(t, "Segunda pagina", paragraphs[2].Contents)

	for i, paragraph := range paragraphs {
		require.Equal(t, i, paragraph.Position)
		require.Equal(t, Hash([]byte(paragraph.Contents)), paragraph.Hash)
	}

	keywords, err := s.ParagraphKeywords(ctx, paragraphs[0].Hash)
	require.NoError(t, err)
	require.Len(t, keywords, 3)

	keywords, err = s.ParagraphKeywords(ctx, paragraphs[1].Hash)
	require.NoError(t, err)
	require.Empty(t, keywords)

	_, err = p.Process(ctx, file)
	require.ErrorIs(t, err, store.ErrExists)
}

func TestProcessWithoutText(t *testing.T) {
	ctx := context.Background()

	s, _ := storememory.New()
	seg, _ := spacing.New()

	p, err := NewPipeline(s, &fakeExtractor{document: &extractor.Document{}}, seg)
	require.NoError(t, err)

	_, err = p.Process(ctx, extractor.File{Name: "blank.png", Content: []byte("png")})
	require.ErrorIs(t, err, segmenter.ErrNoInput)

	files, err := s.ListFiles(ctx)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestProcessExtractError(t *testing.T) {
	ctx := context.Background()

	s, _ := storememory.New()
	seg, _ := spacing.New()

	p, err := NewPipeline(s, &fakeExtractor{err: extractor.ErrUnsupported}, seg)
	require.NoError(t, err)

	_, err = p.Process(ctx, extractor.File{Name: "notes.txt", Content: []byte("text")})
	require.ErrorIs(t, err, extractor.ErrUnsupported)

	files, err := s.ListFiles(ctx)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestNewPipeline(t *testing.T) {
	s, _ := storememory.New()
	seg, _ := spacing.New()

	_, err := NewPipeline(nil, &fakeExtractor{}, seg)
	require.Error(t, err)

	_, err = NewPipeline(s, nil, seg)
	require.Error(t, err)

	_, err = NewPipeline(s, &fakeExtractor{}, nil)
	require.Error(t, err)
}

func TestProcessRetryAfterStoreError(t *testing.T) {
	ctx := context.Background()

	mem, _ := storememory.New()
	seg, _ := spacing.New()

	s := &failingStore{Provider: mem, fail: 2}

	p, err := NewPipeline(s, &fakeExtractor{document: twoPages()}, seg, WithKeyworder(fakeKeyworder{}))
	require.NoError(t, err)

	file := extractor.File{Name: "bases.pdf", Content: []byte("%PDF-1.4"), ContentType: "application/pdf"}
	hash := Hash(file.Content)

	_, err = p.Process(ctx, file)
	require.ErrorContains(t, err, "disk full")

	_, err = mem.GetFile(ctx, hash)
	require.ErrorIs(t, err, store.ErrNotFound)

	result, err := p.Process(ctx, file)
	require.NoError(t, err)
	require.Len(t, result.Paragraphs, 3)

	_, err = mem.GetFile(ctx, hash)
	require.NoError(t, err)

	paragraphs, err := mem.ListParagraphs(ctx, hash)
	require.NoError(t, err)
	require.Len(t, paragraphs, 3)

	keywords, err := mem.ParagraphKeywords(ctx, paragraphs[0].Hash)
	require.NoError(t, err)
	require.Len(t, keywords, 3)
}
