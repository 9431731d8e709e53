package gorm

import (
	"fmt"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"

	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// NewGormLogger creates a GORM logger at the given level whose output is
// redirected to the application logger.
func NewGormLogger(level string) gormlogger.Interface {
	var gormLevel gormlogger.LogLevel
	switch strings.ToUpper(level) {
	case "ERROR":
		gormLevel = gormlogger.Error
	case "WARN":
		gormLevel = gormlogger.Warn
	case "INFO":
		gormLevel = gormlogger.Info
	default:
		gormLevel = gormlogger.Silent
	}

	return gormlogger.New(
		NewGormWriter(),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// GormWriter redirects GORM log output to the application logger.
type GormWriter struct{}

// NewGormWriter creates a new instance of GormWriter.
func NewGormWriter() *GormWriter {
	return &GormWriter{}
}

// Printf implements the gormlogger.Writer interface. Statement traces are
// demoted to DEBUG; everything else passes through at INFO.
func (w *GormWriter) Printf(format string, v ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	if strings.Contains(msg, "SELECT") || strings.Contains(msg, "INSERT") ||
		strings.Contains(msg, "UPDATE") || strings.Contains(msg, "DELETE") {
		logger.Debugf("[GORM] %s", msg)
	} else {
		logger.Infof("[GORM] %s", msg)
	}
}
