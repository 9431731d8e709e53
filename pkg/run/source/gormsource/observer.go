package gormsource

import (
	"sync"
	"time"

	"gorm.io/gorm"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

const (
	observerPluginName = "stride:observer"
	startTimeKey       = "stride:query_started_at"
)

// observer is a GORM plugin that reports every executed statement to the
// active ActivityRecorder. It is installed once per connection; sources
// sharing the connection share the observer.
type observer struct {
	mu  sync.RWMutex
	rec port.ActivityRecorder
}

// installObserver installs the observer plugin on the connection, reusing
// an already installed instance.
func installObserver(db *gorm.DB) *observer {
	if existing, ok := db.Config.Plugins[observerPluginName]; ok {
		if o, ok := existing.(*observer); ok {
			return o
		}
	}
	o := &observer{}
	if err := db.Use(o); err != nil {
		logger.Warnf("Failed to install query observer: %v", err)
	}
	return o
}

// SetRecorder points the observer at a recorder. A nil recorder disables
// reporting.
func (o *observer) SetRecorder(rec port.ActivityRecorder) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rec = rec
}

// Name implements gorm.Plugin.
func (o *observer) Name() string {
	return observerPluginName
}

// Initialize implements gorm.Plugin. It brackets every statement kind with
// a timestamp callback and a reporting callback.
func (o *observer) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("stride:before_create", o.before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("stride:after_create", o.after); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("stride:before_query", o.before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("stride:after_query", o.after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("stride:before_update", o.before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("stride:after_update", o.after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("stride:before_delete", o.before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("stride:after_delete", o.after); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("stride:before_row", o.before); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("stride:after_row", o.after); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("stride:before_raw", o.before); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("stride:after_raw", o.after)
}

func (o *observer) before(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func (o *observer) after(db *gorm.DB) {
	o.mu.RLock()
	rec := o.rec
	o.mu.RUnlock()
	if rec == nil {
		return
	}

	sql := db.Statement.SQL.String()
	if sql == "" {
		return
	}
	var elapsed time.Duration
	if v, ok := db.InstanceGet(startTimeKey); ok {
		if startedAt, ok := v.(time.Time); ok {
			elapsed = time.Since(startedAt)
		}
	}
	binds := make([]any, len(db.Statement.Vars))
	copy(binds, db.Statement.Vars)
	rec.Record(sql, binds, elapsed)
}
