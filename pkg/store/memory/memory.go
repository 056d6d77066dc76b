package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/imharvol/cienciathon-2021/pkg/store"
)

var _ store.Provider = &Provider{}

type Provider struct {
	mu sync.RWMutex

	files      map[string]store.File
	paragraphs []store.Paragraph
	keywords   map[string][]store.Keyword
}

func New() (*Provider, error) {
	p := &Provider{}
	p.reset()

	return p, nil
}

func (p *Provider) reset() {
	p.files = make(map[string]store.File)
	p.paragraphs = nil
	p.keywords = make(map[string][]store.Keyword)
}

func (p *Provider) Init(ctx context.Context, force bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if force {
		p.reset()
	}

	return nil
}

func (p *Provider) AddFile(ctx context.Context, file store.File) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.files[file.Hash]; ok {
		return store.ErrExists
	}

	p.files[file.Hash] = file

	return nil
}

func (p *Provider) GetFile(ctx context.Context, hash string) (*store.File, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	file, ok := p.files[hash]

	if !ok {
		return nil, store.ErrNotFound
	}

	return &file, nil
}

func (p *Provider) ListFiles(ctx context.Context) ([]store.File, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]store.File, 0, len(p.files))

	for _, f := range p.files {
		result = append(result, f)
	}

	slices.SortFunc(result, func(a, b store.File) int {
		if c := b.Uploaded.Compare(a.Uploaded); c != 0 {
			return c
		}

		return cmp.Compare(a.Hash, b.Hash)
	})

	return result, nil
}

func (p *Provider) AddParagraph(ctx context.Context, paragraph store.Paragraph) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if slices.Contains(p.paragraphs, paragraph) {
		return store.ErrExists
	}

	p.paragraphs = append(p.paragraphs, paragraph)

	return nil
}

func (p *Provider) GetParagraph(ctx context.Context, hash string) (*store.Paragraph, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, paragraph := range p.paragraphs {
		if paragraph.Hash == hash {
			return &paragraph, nil
		}
	}

	return nil, store.ErrNotFound
}

func (p *Provider) ListParagraphs(ctx context.Context, fileHash string) ([]store.Paragraph, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.listParagraphs(fileHash), nil
}

func (p *Provider) listParagraphs(fileHash string) []store.Paragraph {
	var result []store.Paragraph

	for _, paragraph := range p.paragraphs {
		if paragraph.FileHash == fileHash {
			result = append(result, paragraph)
		}
	}

	slices.SortStableFunc(result, func(a, b store.Paragraph) int {
		return cmp.Compare(a.Position, b.Position)
	})

	return result
}

func (p *Provider) AddKeyword(ctx context.Context, keyword store.Keyword) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	keywords := p.keywords[keyword.ParagraphHash]

	for _, k := range keywords {
		if k.Text == keyword.Text {
			return store.ErrExists
		}
	}

	p.keywords[keyword.ParagraphHash] = append(keywords, keyword)

	return nil
}

func (p *Provider) FileKeywords(ctx context.Context, fileHash string) ([]store.Keyword, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var keywords []store.Keyword

	seen := make(map[string]bool)

	for _, paragraph := range p.listParagraphs(fileHash) {
		if seen[paragraph.Hash] {
			continue
		}

		seen[paragraph.Hash] = true
		keywords = append(keywords, p.keywords[paragraph.Hash]...)
	}

	return store.MergeKeywords(keywords), nil
}

func (p *Provider) ParagraphKeywords(ctx context.Context, hash string) ([]store.Keyword, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := slices.Clone(p.keywords[hash])
	store.SortKeywords(result)

	return result, nil
}

func (p *Provider) Close() error {
	return nil
}
