package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func usecaseTracer() trace.Tracer {
	return otel.Tracer("fiveaside/internal/usecase")
}

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseTracer().Start(ctx, name)
}
