// Package gormsource provides QuerySource implementations backed by GORM:
// one over a mapped model, one over raw SQL. Both support transactional
// iteration and activity recording.
package gormsource

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// Scope narrows or orders the query, in the same shape GORM scopes use.
type Scope func(tx *gorm.DB) *gorm.DB

// ModelSource streams records of a mapped GORM model in limit/offset
// pages. The prototype fixes the record type: pass a pointer to the model
// struct, e.g. &User{}.
type ModelSource struct {
	db        *gorm.DB
	prototype any
	scopes    []Scope
	observer  *observer
}

// ModelOption configures a ModelSource.
type ModelOption func(*ModelSource)

// WithScope appends a query scope, e.g. a WHERE clause or an ORDER BY for
// stable paging.
func WithScope(scope Scope) ModelOption {
	return func(s *ModelSource) {
		s.scopes = append(s.scopes, scope)
	}
}

// NewModelSource creates a ModelSource over db for the prototype's model.
func NewModelSource(db *gorm.DB, prototype any, opts ...ModelOption) *ModelSource {
	s := &ModelSource{db: db, prototype: prototype}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ModelSource) query(ctx context.Context) *gorm.DB {
	tx := s.db.WithContext(ctx).Model(s.prototype)
	for _, scope := range s.scopes {
		tx = scope(tx)
	}
	return tx
}

// Count implements port.QuerySource.
func (s *ModelSource) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.query(ctx).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return total, nil
}

// EachChunk implements port.QuerySource with limit/offset paging. Record
// positions are global across chunks.
func (s *ModelSource) EachChunk(ctx context.Context, size int, fn port.ChunkFunc) error {
	if size <= 0 {
		size = model.DefaultChunkSize
	}
	elemType := reflect.TypeOf(s.prototype)

	for offset := 0; ; offset += size {
		slicePtr := reflect.New(reflect.SliceOf(elemType))
		if err := s.query(ctx).Limit(size).Offset(offset).Find(slicePtr.Interface()).Error; err != nil {
			return fmt.Errorf("failed to fetch chunk at offset %d: %w", offset, err)
		}

		records := slicePtr.Elem()
		if records.Len() == 0 {
			return nil
		}
		chunk := make([]*model.RecordHandle, 0, records.Len())
		for i := 0; i < records.Len(); i++ {
			chunk = append(chunk, &model.RecordHandle{
				Value:    records.Index(i).Interface(),
				Position: int64(offset + i),
			})
		}

		keepGoing, err := fn(ctx, chunk)
		if err != nil {
			return err
		}
		if !keepGoing || records.Len() < size {
			return nil
		}
	}
}

// Describe implements port.QuerySource. The statement is resolved through
// GORM's dry-run session, so literals are already interpolated.
func (s *ModelSource) Describe() (string, []any) {
	elemType := reflect.TypeOf(s.prototype)
	slicePtr := reflect.New(reflect.SliceOf(elemType))
	sql := s.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(s.prototype)
		for _, scope := range s.scopes {
			tx = scope(tx)
		}
		return tx.Find(slicePtr.Interface())
	})
	return sql, nil
}

// Transaction implements port.TransactionalSource. The callback receives a
// source bound to the transaction; the chunked loop runs entirely inside
// it and rolls back when the callback returns an error.
func (s *ModelSource) Transaction(ctx context.Context, fn func(port.QuerySource) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bound := *s
		bound.db = tx
		return fn(&bound)
	})
}

// SetActivityRecorder implements port.ObservableSource.
func (s *ModelSource) SetActivityRecorder(rec port.ActivityRecorder) {
	if s.observer == nil {
		s.observer = installObserver(s.db)
	}
	s.observer.SetRecorder(rec)
}

var (
	_ port.QuerySource         = (*ModelSource)(nil)
	_ port.TransactionalSource = (*ModelSource)(nil)
	_ port.ObservableSource    = (*ModelSource)(nil)
)
