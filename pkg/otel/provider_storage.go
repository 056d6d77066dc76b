package otel

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Storage interface {
	Observable
	storage.Provider
}

type observableStorage struct {
	provider string

	storage storage.Provider
}

func NewStorage(provider string, p storage.Provider) Storage {
	return &observableStorage{
		storage: p,

		provider: provider,
	}
}

func (p *observableStorage) otelSetup() {
}

func (p *observableStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (*storage.Object, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "upload "+p.provider, trace.WithAttributes(
		String("storage.key", key),
		Int("storage.size", len(data)),
	))
	defer span.End()

	result, err := p.storage.Upload(ctx, key, data, contentType)

	recordError(span, err)

	return result, err
}

func (p *observableStorage) Delete(ctx context.Context, key string) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "delete "+p.provider, trace.WithAttributes(
		String("storage.key", key),
	))
	defer span.End()

	err := p.storage.Delete(ctx, key)

	recordError(span, err)

	return err
}
