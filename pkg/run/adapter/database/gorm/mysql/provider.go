// Package mysql registers the MySQL dialector factory with the gorm
// adapter. Importing this package is enough to enable `type: mysql`
// database configurations.
package mysql

import (
	"fmt"

	godriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	gormadapter "github.com/tigerroll/stride/pkg/run/adapter/database/gorm"
	config "github.com/tigerroll/stride/pkg/run/core/config"
)

func init() {
	gormadapter.RegisterDialector("mysql", func(cfg config.DatabaseConfig) (gorm.Dialector, error) {
		return mysql.Open(ConnectionString(cfg)), nil
	})
}

// ConnectionString generates the DSN for MySQL connections in the format
// expected by gorm.io/driver/mysql.
func ConnectionString(c config.DatabaseConfig) string {
	dsn := godriver.NewConfig()
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.Net = "tcp"
	dsn.Addr = c.Host
	if c.Port != 0 {
		dsn.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	}
	dsn.DBName = c.Database
	dsn.ParseTime = true
	dsn.Params = map[string]string{"charset": "utf8mb4"}
	return dsn.FormatDSN()
}
