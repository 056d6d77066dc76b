package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/imharvol/cienciathon-2021/pkg/storage"
)

var _ storage.Provider = &Provider{}

type Provider struct {
	mu sync.RWMutex

	objects map[string][]byte
}

func New() (*Provider, error) {
	return &Provider{
		objects: make(map[string][]byte),
	}, nil
}

func (p *Provider) Upload(ctx context.Context, key string, data []byte, contentType string) (*storage.Object, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.objects[key] = slices.Clone(data)

	return &storage.Object{
		Bucket: "memory",
		Key:    key,
	}, nil
}

func (p *Provider) Download(ctx context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, ok := p.objects[key]

	if !ok {
		return nil, storage.ErrNotFound
	}

	return slices.Clone(data), nil
}

func (p *Provider) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.objects, key)

	return nil
}
