package logger

import "go.uber.org/fx"

// Module is an Fx module that installs the logger adapter for Fx events.
var Module = fx.Options(
	fx.WithLogger(NewFxLoggerAdapter),
)
