package gorm

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	config "github.com/tigerroll/stride/pkg/run/core/config"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// Params defines the Fx dependencies for NewDatabase.
type Params struct {
	fx.In
	Cfg            *config.Config
	ConnectionName string `name:"dbConnectionName" optional:"true"`
}

// NewDatabase opens the named database connection from the configuration.
// When no name is supplied the "primary" connection is used.
func NewDatabase(p Params, lc fx.Lifecycle) (*gorm.DB, error) {
	name := p.ConnectionName
	if name == "" {
		name = "primary"
	}
	dbCfg, err := p.Cfg.DatabaseConfigFor(name)
	if err != nil {
		return nil, err
	}
	db, err := Open(dbCfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debugf("Closing database connection '%s'.", name)
			return Close(db)
		},
	})
	return db, nil
}

// Module is an Fx module providing a *gorm.DB from the configuration.
// A dialect package must be imported for its dialector registration.
var Module = fx.Options(
	fx.Provide(NewDatabase),
)
