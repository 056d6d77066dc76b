package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/keyword"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
	"github.com/imharvol/cienciathon-2021/pkg/storage"
	"github.com/imharvol/cienciathon-2021/pkg/store"
)

type Processor interface {
	Process(ctx context.Context, file extractor.File) (*Result, error)
}

var _ Processor = &Pipeline{}

// Pipeline turns an uploaded document into stored paragraphs and keywords.
type Pipeline struct {
	store store.Provider

	storage   storage.Provider
	extractor extractor.Provider
	segmenter segmenter.Provider
	keyworder keyword.Provider

	metrics *metrics
}

type Option func(*Pipeline)

// WithStorage buffers files in object storage while they are recognized.
func WithStorage(storage storage.Provider) Option {
	return func(p *Pipeline) {
		p.storage = storage
	}
}

func WithKeyworder(keyworder keyword.Provider) Option {
	return func(p *Pipeline) {
		p.keyworder = keyworder
	}
}

type Result struct {
	File store.File

	Paragraphs []store.Paragraph
	Keywords   int
}

func NewPipeline(store store.Provider, extractor extractor.Provider, segmenter segmenter.Provider, options ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	if extractor == nil {
		return nil, errors.New("extractor is required")
	}

	if segmenter == nil {
		return nil, errors.New("segmenter is required")
	}

	p := &Pipeline{
		store: store,

		extractor: extractor,
		segmenter: segmenter,

		metrics: newMetrics(),
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

// Hash returns the hex encoded sha256 digest used to identify files and paragraphs.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Process recognizes, segments and stores a file. It returns store.ErrExists
// for files that were processed before.
func (p *Pipeline) Process(ctx context.Context, file extractor.File) (*Result, error) {
	timestamp := time.Now()

	hash := Hash(file.Content)

	if _, err := p.store.GetFile(ctx, hash); err == nil {
		return nil, store.ErrExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	segments, err := p.recognize(ctx, hash, file)

	if err != nil {
		return nil, err
	}

	result := &Result{
		File: store.File{
			Hash: hash,
			Name: file.Name,

			Uploaded: timestamp.UTC(),
		},
	}

	for i, s := range segments {
		paragraph := store.Paragraph{
			FileHash: hash,

			Hash:     Hash([]byte(s.Text)),
			Contents: s.Text,
			Position: i,
		}

		// paragraphs of an earlier failed run are already stored
		if err := p.store.AddParagraph(ctx, paragraph); err != nil && !errors.Is(err, store.ErrExists) {
			return nil, err
		}

		result.Paragraphs = append(result.Paragraphs, paragraph)

		n, err := p.keywords(ctx, paragraph)

		if err != nil {
			slog.WarnContext(ctx, "keyword extraction failed", "file", hash, "paragraph", paragraph.Hash, "error", err)
		}

		result.Keywords += n
	}

	// the file row is written last so that a failed run can be retried
	if err := p.store.AddFile(ctx, result.File); err != nil {
		return nil, err
	}

	p.metrics.record(ctx, len(result.Paragraphs), time.Since(timestamp))

	slog.InfoContext(ctx, "file processed", "name", file.Name, "hash", hash, "paragraphs", len(result.Paragraphs), "keywords", result.Keywords)

	return result, nil
}

// recognize runs OCR and segments every page on its own, since each page is
// an independent vertical flow of lines.
func (p *Pipeline) recognize(ctx context.Context, hash string, file extractor.File) ([]segmenter.Segment, error) {
	var options extractor.ExtractOptions

	if p.storage != nil {
		object, err := p.storage.Upload(ctx, hash, file.Content, file.ContentType)

		if err != nil {
			return nil, err
		}

		defer func() {
			if err := p.storage.Delete(context.WithoutCancel(ctx), object.Key); err != nil {
				slog.WarnContext(ctx, "failed to delete buffered file", "key", object.Key, "error", err)
			}
		}()

		options.Object = object
	}

	document, err := p.extractor.Extract(ctx, file, &options)

	if err != nil {
		return nil, err
	}

	var result []segmenter.Segment

	for _, page := range document.PageNumbers() {
		var lines []segmenter.Line

		for _, l := range document.PageLines(page) {
			if strings.TrimSpace(l.Text) == "" {
				continue
			}

			lines = append(lines, l)
		}

		if len(lines) == 0 {
			continue
		}

		segments, err := p.segmenter.Segment(ctx, lines, nil)

		if err != nil {
			return nil, err
		}

		result = append(result, segments...)
	}

	if len(result) == 0 {
		return nil, segmenter.ErrNoInput
	}

	return result, nil
}

func (p *Pipeline) keywords(ctx context.Context, paragraph store.Paragraph) (int, error) {
	if p.keyworder == nil {
		return 0, nil
	}

	keywords, err := p.keyworder.Extract(ctx, paragraph.Contents, nil)

	if err != nil {
		return 0, err
	}

	var count int

	for _, k := range keywords {
		err := p.store.AddKeyword(ctx, store.Keyword{
			ParagraphHash: paragraph.Hash,

			Text:  k.Text,
			Score: k.Score,
		})

		if errors.Is(err, store.ErrExists) {
			continue
		}

		if err != nil {
			return count, err
		}

		count++
	}

	return count, nil
}
