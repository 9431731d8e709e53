// Package config provides the structures and loader for Stride's
// application configuration: engine defaults, logging, database
// connections and the optional run-report sink.
package config

// EmbeddedConfig holds the raw content of a configuration file, typically
// embedded into the binary by the host application.
type EmbeddedConfig []byte

// BatchConfig holds engine defaults.
type BatchConfig struct {
	// ChunkSize is the default number of records fetched per chunk when the
	// run options do not specify one.
	ChunkSize int `yaml:"chunk_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the log level name ("DEBUG", "INFO", "WARN", "ERROR", "FATAL").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// DatabaseConfig describes one database connection. Sections under the
// `database:` key bind onto this struct per connection name.
type DatabaseConfig struct {
	Type     string `yaml:"type"` // "mysql", "postgres" or "sqlite"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Sslmode  string `yaml:"sslmode"`
}

// ReportConfig configures the optional run-report sink.
type ReportConfig struct {
	// Type selects the sink: "local", "gcs" or "" for none.
	Type string `yaml:"type"`
	// Dir is the target directory for the local sink.
	Dir string `yaml:"dir"`
	// Bucket and Prefix address the object for the GCS sink.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// StrideConfig holds all configuration under the "stride" top-level key.
type StrideConfig struct {
	Batch  BatchConfig  `yaml:"batch"`
	System SystemConfig `yaml:"system"`
	Report ReportConfig `yaml:"report"`
	// Databases keeps the raw per-connection maps; use DatabaseConfigFor to
	// bind a named section onto a DatabaseConfig.
	Databases map[string]interface{} `yaml:"database"`
}

// Config is the root of the application configuration.
type Config struct {
	Stride StrideConfig `yaml:"stride"`
}
