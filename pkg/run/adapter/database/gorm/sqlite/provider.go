// Package sqlite registers the SQLite dialector factory with the gorm
// adapter. Importing this package is enough to enable `type: sqlite`
// database configurations.
package sqlite

import (
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/stride/pkg/run/adapter/database/gorm"
	config "github.com/tigerroll/stride/pkg/run/core/config"
)

func init() {
	gormadapter.RegisterDialector("sqlite", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		if cfg.Database == "" {
			return nil, errors.New("SQLite database path cannot be empty")
		}
		// The SQLite dialector expects the file path directly.
		return sqlite.Open(cfg.Database), nil
	})
}
