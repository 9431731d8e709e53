package gormsource

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// RawSource streams the rows of a hand-written SQL statement as generic
// maps. The statement must be pageable: a LIMIT/OFFSET clause is appended
// for each chunk fetch, so it must not already carry LIMIT or OFFSET.
type RawSource struct {
	db       *gorm.DB
	query    string
	binds    []any
	observer *observer
}

// NewRawSource creates a RawSource over db for the given statement and
// bind values. A trailing semicolon is stripped so the statement can be
// wrapped and paged.
func NewRawSource(db *gorm.DB, query string, binds ...any) *RawSource {
	query = strings.TrimRight(strings.TrimSpace(query), ";")
	return &RawSource{db: db, query: query, binds: binds}
}

// Count implements port.QuerySource by wrapping the statement in a COUNT
// subquery.
func (s *RawSource) Count(ctx context.Context) (int64, error) {
	var total int64
	counted := fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS counted", s.query)
	if err := s.db.WithContext(ctx).Raw(counted, s.binds...).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return total, nil
}

// EachChunk implements port.QuerySource. Each row is delivered as a
// map[string]interface{} keyed by column name.
func (s *RawSource) EachChunk(ctx context.Context, size int, fn port.ChunkFunc) error {
	if size <= 0 {
		size = model.DefaultChunkSize
	}
	paged := s.query + " LIMIT ? OFFSET ?"

	for offset := 0; ; offset += size {
		var rows []map[string]interface{}
		binds := append(append([]any{}, s.binds...), size, offset)
		if err := s.db.WithContext(ctx).Raw(paged, binds...).Scan(&rows).Error; err != nil {
			return fmt.Errorf("failed to fetch chunk at offset %d: %w", offset, err)
		}
		if len(rows) == 0 {
			return nil
		}

		chunk := make([]*model.RecordHandle, 0, len(rows))
		for i, row := range rows {
			chunk = append(chunk, &model.RecordHandle{
				Value:    row,
				Position: int64(offset + i),
			})
		}

		keepGoing, err := fn(ctx, chunk)
		if err != nil {
			return err
		}
		if !keepGoing || len(rows) < size {
			return nil
		}
	}
}

// Describe implements port.QuerySource.
func (s *RawSource) Describe() (string, []any) {
	return s.query, s.binds
}

// Transaction implements port.TransactionalSource.
func (s *RawSource) Transaction(ctx context.Context, fn func(port.QuerySource) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bound := *s
		bound.db = tx
		return fn(&bound)
	})
}

// SetActivityRecorder implements port.ObservableSource.
func (s *RawSource) SetActivityRecorder(rec port.ActivityRecorder) {
	if s.observer == nil {
		s.observer = installObserver(s.db)
	}
	s.observer.SetRecorder(rec)
}

var (
	_ port.QuerySource         = (*RawSource)(nil)
	_ port.TransactionalSource = (*RawSource)(nil)
	_ port.ObservableSource    = (*RawSource)(nil)
)
