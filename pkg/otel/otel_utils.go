package otel

import (
	"context"

	"github.com/imharvol/cienciathon-2021/pkg/auth"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type KeyValue = attribute.KeyValue

func String(key string, val string) KeyValue {
	return attribute.String(key, val)
}

func Int(key string, val int) KeyValue {
	return attribute.Int(key, val)
}

func EndUserAttrs(ctx context.Context) []KeyValue {
	var attrs []KeyValue

	if user := auth.User(ctx); user != "" {
		attrs = append(attrs, attribute.String("enduser.id", user))
	}

	return attrs
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
