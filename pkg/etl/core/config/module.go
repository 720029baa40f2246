// Package config provides core configuration structures for the load
// pipeline. This file defines the Fx providers for configuration components.
package config

import "go.uber.org/fx"

// NewLoggingConfigProvider extracts *LoggingConfig from *Config so components
// can depend on the logging settings alone.
func NewLoggingConfigProvider(cfg *Config) *LoggingConfig {
	return &cfg.Fantasyload.System.Logging
}

// Module provides configuration-related components to Fx.
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
	fx.Provide(NewLoggingConfigProvider),
)
