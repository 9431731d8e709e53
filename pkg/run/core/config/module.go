package config

import (
	"go.uber.org/fx"

	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// Params defines the Fx dependencies for NewConfigProvider.
type Params struct {
	fx.In
	EmbeddedConfig EmbeddedConfig
	EnvFilePath    string `name:"envFilePath" optional:"true"`
}

// NewConfigProvider loads the configuration and applies its log level.
func NewConfigProvider(p Params) (*Config, error) {
	cfg, err := LoadConfig(p.EnvFilePath, p.EmbeddedConfig)
	if err != nil {
		return nil, err
	}
	logger.SetLogLevel(cfg.Stride.System.Logging.Level)
	return cfg, nil
}

// Module is an Fx module providing *Config from embedded configuration.
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
)
