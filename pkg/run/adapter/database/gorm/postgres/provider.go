// Package postgres registers the PostgreSQL dialector factory with the
// gorm adapter. Importing this package is enough to enable
// `type: postgres` database configurations.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/stride/pkg/run/adapter/database/gorm"
	config "github.com/tigerroll/stride/pkg/run/core/config"
)

func init() {
	gormadapter.RegisterDialector("postgres", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		return postgres.Open(ConnectionString(cfg)), nil
	})
}

// ConnectionString generates the DSN for PostgreSQL connections in the
// format expected by gorm.io/driver/postgres.
func ConnectionString(c config.DatabaseConfig) string {
	sslmode := c.Sslmode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, sslmode)
}
