package ingest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/imharvol/cienciathon-2021/pkg/ingest"

type metrics struct {
	files      metric.Int64Counter
	paragraphs metric.Int64Counter
	duration   metric.Float64Histogram
}

func newMetrics() *metrics {
	meter := otel.Meter(instrumentationName)

	files, _ := meter.Int64Counter("ingest.files",
		metric.WithDescription("Number of processed files"),
	)

	paragraphs, _ := meter.Int64Counter("ingest.paragraphs",
		metric.WithDescription("Number of stored paragraphs"),
	)

	duration, _ := meter.Float64Histogram("ingest.duration",
		metric.WithDescription("Duration of file processing"),
		metric.WithUnit("s"),
	)

	return &metrics{
		files:      files,
		paragraphs: paragraphs,
		duration:   duration,
	}
}

func (m *metrics) record(ctx context.Context, paragraphs int, duration time.Duration) {
	m.files.Add(ctx, 1)
	m.paragraphs.Add(ctx, int64(paragraphs))
	m.duration.Record(ctx, duration.Seconds())
}
