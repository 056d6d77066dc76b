package otel

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Segmenter interface {
	Observable
	segmenter.Provider
}

type observableSegmenter struct {
	provider string

	segmenter segmenter.Provider
}

func NewSegmenter(provider string, p segmenter.Provider) Segmenter {
	return &observableSegmenter{
		segmenter: p,

		provider: provider,
	}
}

func (p *observableSegmenter) otelSetup() {
}

func (p *observableSegmenter) Segment(ctx context.Context, lines []segmenter.Line, options *segmenter.SegmentOptions) ([]segmenter.Segment, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "segment "+p.provider, trace.WithAttributes(
		Int("segmenter.lines", len(lines)),
	))
	defer span.End()

	result, err := p.segmenter.Segment(ctx, lines, options)

	recordError(span, err)
	span.SetAttributes(Int("segmenter.segments", len(result)))

	return result, err
}
