package otel

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/keyword"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Keyworder interface {
	Observable
	keyword.Provider
}

type observableKeyworder struct {
	provider string

	keyworder keyword.Provider
}

func NewKeyworder(provider string, p keyword.Provider) Keyworder {
	return &observableKeyworder{
		keyworder: p,

		provider: provider,
	}
}

func (p *observableKeyworder) otelSetup() {
}

func (p *observableKeyworder) Extract(ctx context.Context, text string, options *keyword.ExtractOptions) ([]keyword.Keyword, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "keywords "+p.provider, trace.WithAttributes(
		Int("keyword.text_length", len(text)),
	))
	defer span.End()

	result, err := p.keyworder.Extract(ctx, text, options)

	recordError(span, err)
	span.SetAttributes(Int("keyword.count", len(result)))

	return result, err
}
