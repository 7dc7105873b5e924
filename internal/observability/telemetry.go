package observability

import (
	"context"
	"time"

	"github.com/annel0/worldobjects/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Config включает экспорт трасс
type Config struct {
	Enabled     bool
	ServiceName string
}

// ShutdownFunc сбрасывает и останавливает экспортер
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// При выключенной телеметрии глобальный провайдер остаётся no-op, а shutdown ничего не делает.
func InitTelemetry(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logging.Debug("OpenTelemetry выключен")
		return noopShutdown, nil
	}

	// OTLP HTTP экспортер (по умолчанию localhost:4318, см. OTEL_EXPORTER_OTLP_ENDPOINT)
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	tp, err := NewTracerProvider(ctx, cfg.ServiceName, trace.WithBatcher(exp))
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (OTLP → 4318, service=%s)", cfg.ServiceName)

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// NewTracerProvider создаёт провайдер с ресурсом service.name и переданными опциями
func NewTracerProvider(ctx context.Context, serviceName string, opts ...trace.TracerProviderOption) (*trace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}
	return trace.NewTracerProvider(append([]trace.TracerProviderOption{trace.WithResource(res)}, opts...)...), nil
}
