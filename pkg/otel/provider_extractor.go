package otel

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Extractor interface {
	Observable
	extractor.Provider
}

type observableExtractor struct {
	provider string

	extractor extractor.Provider
}

func NewExtractor(provider string, p extractor.Provider) Extractor {
	return &observableExtractor{
		extractor: p,

		provider: provider,
	}
}

func (p *observableExtractor) otelSetup() {
}

func (p *observableExtractor) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "extract "+p.provider, trace.WithAttributes(
		String("extractor.provider", p.provider),
		String("file.name", file.Name),
		String("file.content_type", file.ContentType),
		Int("file.size", len(file.Content)),
	))
	defer span.End()

	result, err := p.extractor.Extract(ctx, file, options)

	recordError(span, err)

	if result != nil {
		span.SetAttributes(Int("extractor.lines", len(result.Lines)))
	}

	return result, err
}
