package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	configbinder "github.com/tigerroll/stride/pkg/run/support/util/configbinder"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// LoadConfig loads configuration from embedded YAML bytes, after loading an
// optional .env file and expanding ${VAR} placeholders. It applies engine
// defaults so a minimal or empty configuration is still usable.
func LoadConfig(envFilePath string, embedded EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}

	expanded, err := NewOsEnvironmentExpander().Expand(embedded)
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables in config: %w", err)
	}

	cfg := &Config{}
	if len(expanded) > 0 {
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration YAML: %w", err)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Stride.Batch.ChunkSize <= 0 {
		cfg.Stride.Batch.ChunkSize = 100
	}
	if cfg.Stride.System.Logging.Level == "" {
		cfg.Stride.System.Logging.Level = "INFO"
	}
}

// DatabaseConfigFor binds the named database section onto a DatabaseConfig.
func (c *Config) DatabaseConfigFor(name string) (DatabaseConfig, error) {
	raw, ok := c.Stride.Databases[name]
	if !ok {
		return DatabaseConfig{}, fmt.Errorf("no database configuration named %q", name)
	}
	properties, ok := raw.(map[string]interface{})
	if !ok {
		return DatabaseConfig{}, fmt.Errorf("database configuration %q is not a mapping", name)
	}

	var dbCfg DatabaseConfig
	if err := configbinder.BindProperties(properties, &dbCfg); err != nil {
		return DatabaseConfig{}, fmt.Errorf("failed to bind database configuration %q: %w", name, err)
	}
	return dbCfg, nil
}
