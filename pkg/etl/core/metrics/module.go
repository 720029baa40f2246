package metrics

import "go.uber.org/fx"

// Module provides the no-op recorder and tracer. Applications wanting real
// instrumentation wire the infrastructure metrics module instead.
var Module = fx.Options(
	fx.Provide(NewNoOpRecorder),
	fx.Provide(NewNoOpTracer),
)
