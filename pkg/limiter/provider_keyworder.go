package limiter

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/keyword"

	"golang.org/x/time/rate"
)

type Keyworder interface {
	Limiter
	keyword.Provider
}

type limitedKeyworder struct {
	limiter  *rate.Limiter
	provider keyword.Provider
}

func NewKeyworder(l *rate.Limiter, p keyword.Provider) Keyworder {
	return &limitedKeyworder{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedKeyworder) limiterSetup() {
}

func (p *limitedKeyworder) Extract(ctx context.Context, text string, options *keyword.ExtractOptions) ([]keyword.Keyword, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Extract(ctx, text, options)
}
