// Package command holds the backfill example's run command.
package command

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tigerroll/stride/example/backfill/internal/entity"
	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	gormsource "github.com/tigerroll/stride/pkg/run/source/gormsource"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// NormalizeEmails lower-cases and trims every user's email address.
// Failures are collected and reported at the end of the run instead of
// stopping it.
type NormalizeEmails struct {
	db *gorm.DB
}

// NewNormalizeEmails creates the command over the given connection.
func NewNormalizeEmails(db *gorm.DB) *NormalizeEmails {
	return &NormalizeEmails{db: db}
}

// Query implements port.Command. Ordering by primary key keeps the
// limit/offset paging stable while records are updated in place.
func (c *NormalizeEmails) Query() port.QuerySource {
	return gormsource.NewModelSource(c.db, &entity.User{},
		gormsource.WithScope(func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id")
		}),
	)
}

// HandleRow implements port.Command.
func (c *NormalizeEmails) HandleRow(ctx context.Context, record *model.RecordHandle) error {
	user := record.Value.(*entity.User)

	normalized := strings.ToLower(strings.TrimSpace(user.Email))
	if normalized == "" {
		return fmt.Errorf("user %d has an empty email address", user.ID)
	}
	if normalized == user.Email {
		return nil
	}
	user.Email = normalized
	return c.db.WithContext(ctx).Save(user).Error
}

// RowName implements port.Command.
func (c *NormalizeEmails) RowName() string { return "user" }

// RowNamePlural implements port.Command.
func (c *NormalizeEmails) RowNamePlural() string { return "users" }

// CollectExceptions enables the collect failure policy.
func (c *NormalizeEmails) CollectExceptions() bool { return true }

// BeforeFirstRow implements port.LifecycleHooks.
func (c *NormalizeEmails) BeforeFirstRow(ctx context.Context) error {
	logger.Infof("Starting email normalization.")
	return nil
}

// AfterLastRow implements port.LifecycleHooks.
func (c *NormalizeEmails) AfterLastRow(ctx context.Context) error {
	logger.Infof("Email normalization finished.")
	return nil
}

var (
	_ port.Command             = (*NormalizeEmails)(nil)
	_ port.ExceptionCollecting = (*NormalizeEmails)(nil)
	_ port.LifecycleHooks      = (*NormalizeEmails)(nil)
)
