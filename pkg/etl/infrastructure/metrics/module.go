package metrics

import (
	"go.uber.org/fx"

	coremetrics "github.com/tigerroll/fantasyload/pkg/etl/core/metrics"
)

// Module is an Fx module that provides PrometheusRecorder and
// OpenTelemetryTracer behind the core metrics interfaces.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewPrometheusRecorder,
		fx.As(new(coremetrics.Recorder)),
	)),
	fx.Provide(fx.Annotate(
		NewOpenTelemetryTracer,
		fx.As(new(coremetrics.Tracer)),
	)),
)
