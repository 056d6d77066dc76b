package limiter

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"

	"golang.org/x/time/rate"
)

type Extractor interface {
	Limiter
	extractor.Provider
}

type limitedExtractor struct {
	limiter  *rate.Limiter
	provider extractor.Provider
}

func NewExtractor(l *rate.Limiter, p extractor.Provider) Extractor {
	return &limitedExtractor{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedExtractor) limiterSetup() {
}

func (p *limitedExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Extract(ctx, file, options)
}
