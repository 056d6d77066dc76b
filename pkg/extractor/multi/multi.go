package multi

import (
	"context"
	"errors"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
)

var _ extractor.Provider = &Extractor{}

// Extractor tries each provider in order until one accepts the file.
type Extractor struct {
	providers []extractor.Provider
}

func New(provider ...extractor.Provider) *Extractor {
	return &Extractor{
		providers: provider,
	}
}

func (e *Extractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	var errs []error

	for _, p := range e.providers {
		result, err := p.Extract(ctx, file, options)

		if err != nil {
			if !errors.Is(err, extractor.ErrUnsupported) {
				errs = append(errs, err)
			}

			continue
		}

		return result, nil
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return nil, extractor.ErrUnsupported
}
