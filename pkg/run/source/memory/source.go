// Package memory provides a QuerySource over an in-memory collection.
// It backs commands whose records come from somewhere other than a
// database, and keeps tests independent of any driver.
package memory

import (
	"context"
	"fmt"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// Source serves records from a slice. It supports neither transactions
// nor activity recording; commands that require those capabilities cannot
// run against it.
type Source struct {
	records []any
}

// NewSource creates a Source over the given records. The slice is not
// copied; the caller must not mutate it during a run.
func NewSource(records []any) *Source {
	return &Source{records: records}
}

// Count implements port.QuerySource.
func (s *Source) Count(ctx context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

// EachChunk implements port.QuerySource. Record positions are global
// across chunks, so labels stay stable regardless of chunk size.
func (s *Source) EachChunk(ctx context.Context, size int, fn port.ChunkFunc) error {
	if size <= 0 {
		size = model.DefaultChunkSize
	}
	for offset := 0; offset < len(s.records); offset += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := offset + size
		if end > len(s.records) {
			end = len(s.records)
		}
		chunk := make([]*model.RecordHandle, 0, end-offset)
		for i := offset; i < end; i++ {
			chunk = append(chunk, &model.RecordHandle{Value: s.records[i], Position: int64(i)})
		}
		keepGoing, err := fn(ctx, chunk)
		if err != nil {
			return err
		}
		if !keepGoing {
			return nil
		}
	}
	return nil
}

// Describe implements port.QuerySource. No SQL is executed, so a
// pseudo-statement is returned for display.
func (s *Source) Describe() (string, []any) {
	return fmt.Sprintf("-- in-memory collection of %d records", len(s.records)), nil
}

var _ port.QuerySource = (*Source)(nil)
