// Package gorm adapts GORM connections for use as Stride query sources.
// Dialect-specific packages register their dialector factories here; the
// engine opens connections only through this registry.
package gorm

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	config "github.com/tigerroll/stride/pkg/run/core/config"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// DialectorFactory generates a gorm.Dialector from a DatabaseConfig.
type DialectorFactory func(cfg config.DatabaseConfig) (gorm.Dialector, error)

var (
	dialectorRegistry = make(map[string]DialectorFactory)
	dialectorMutex    sync.RWMutex
)

// RegisterDialector registers a DialectorFactory for the given database
// type. Dialect packages call this from init.
func RegisterDialector(dbType string, factory DialectorFactory) {
	dialectorMutex.Lock()
	defer dialectorMutex.Unlock()
	if _, exists := dialectorRegistry[dbType]; exists {
		logger.Warnf("Dialector for type '%s' already registered. Overwriting.", dbType)
	}
	dialectorRegistry[dbType] = factory
}

// GetDialectorFactory retrieves the DialectorFactory for the specified
// database type.
func GetDialectorFactory(dbType string) (DialectorFactory, error) {
	dialectorMutex.RLock()
	defer dialectorMutex.RUnlock()
	factory, ok := dialectorRegistry[dbType]
	if !ok {
		return nil, fmt.Errorf("no dialector registered for database type: %s", dbType)
	}
	return factory, nil
}

// Open establishes a GORM connection for the given configuration. GORM's
// own statement logging is kept silent; query visibility is handled by the
// engine's activity recorder instead.
func Open(dbCfg config.DatabaseConfig) (*gorm.DB, error) {
	factory, err := GetDialectorFactory(dbCfg.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to get dialector factory for %s: %w", dbCfg.Type, err)
	}
	dialector, err := factory(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dialector for %s: %w", dbCfg.Type, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger("SILENT")})
	if err != nil {
		return nil, fmt.Errorf("failed to open GORM connection: %w", err)
	}
	logger.Debugf("Established %s connection to database '%s'.", dbCfg.Type, dbCfg.Database)
	return db, nil
}

// Close closes the underlying sql.DB of a GORM connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
