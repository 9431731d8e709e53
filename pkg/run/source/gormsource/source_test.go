package gormsource_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	gormsource "github.com/tigerroll/stride/pkg/run/source/gormsource"
)

type user struct {
	ID    int64
	Email string
}

// setupGormMock initializes GORM over a mocked SQL connection, the same
// way repository tests do.
func setupGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestModelSourceCount(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	s := gormsource.NewModelSource(gormDB, &user{})
	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelSourceEachChunk(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(1, "a@x.com").
			AddRow(2, "b@x.com"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(3, "c@x.com"))

	s := gormsource.NewModelSource(gormDB, &user{})

	var positions []int64
	var emails []string
	err := s.EachChunk(context.Background(), 2, func(ctx context.Context, chunk []*model.RecordHandle) (bool, error) {
		for _, h := range chunk {
			positions = append(positions, h.Position)
			emails = append(emails, h.Value.(*user).Email)
		}
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, positions)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, emails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelSourceEachChunkStopsOnFalse(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(1, "a@x.com").
			AddRow(2, "b@x.com"))

	s := gormsource.NewModelSource(gormDB, &user{})
	calls := 0
	err := s.EachChunk(context.Background(), 2, func(ctx context.Context, chunk []*model.RecordHandle) (bool, error) {
		calls++
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelSourceDescribe(t *testing.T) {
	gormDB, _ := setupGormMock(t)

	s := gormsource.NewModelSource(gormDB, &user{}, gormsource.WithScope(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("email LIKE ?", "%@x.com").Order("id")
	}))

	query, binds := s.Describe()
	assert.Contains(t, query, "FROM `users`")
	assert.Contains(t, query, "@x.com")
	assert.Contains(t, query, "ORDER BY")
	assert.Nil(t, binds)
}

func TestModelSourceActivityRecorder(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	s := gormsource.NewModelSource(gormDB, &user{})
	var recorded []string
	s.SetActivityRecorder(recorderFunc(func(query string, binds []any, elapsed time.Duration) {
		recorded = append(recorded, query)
	}))

	_, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Contains(t, recorded[0], "count(*)")
}

func TestModelSourceTransactionRollsBackOnError(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	s := gormsource.NewModelSource(gormDB, &user{})
	err := s.Transaction(context.Background(), func(tx port.QuerySource) error {
		_, countErr := tx.Count(context.Background())
		require.NoError(t, countErr)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawSourceCount(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM (SELECT id FROM users WHERE active = ?) AS counted")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	s := gormsource.NewRawSource(gormDB, "SELECT id FROM users WHERE active = ?", true)
	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawSourceEachChunk(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE active = ? LIMIT ? OFFSET ?")).
		WithArgs(true, 2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE active = ? LIMIT ? OFFSET ?")).
		WithArgs(true, 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	s := gormsource.NewRawSource(gormDB, "SELECT id FROM users WHERE active = ?", true)

	var positions []int64
	err := s.EachChunk(context.Background(), 2, func(ctx context.Context, chunk []*model.RecordHandle) (bool, error) {
		for _, h := range chunk {
			positions = append(positions, h.Position)
			_, isMap := h.Value.(map[string]interface{})
			assert.True(t, isMap)
		}
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, positions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawSourceStripsTrailingSemicolon(t *testing.T) {
	gormDB, mock := setupGormMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM (SELECT id FROM users) AS counted")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users LIMIT ? OFFSET ?")).
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	s := gormsource.NewRawSource(gormDB, "SELECT id FROM users;  ")

	total, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	err = s.EachChunk(context.Background(), 2, func(ctx context.Context, chunk []*model.RecordHandle) (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRawSourceDescribe(t *testing.T) {
	gormDB, _ := setupGormMock(t)
	s := gormsource.NewRawSource(gormDB, "SELECT id FROM users WHERE active = ?", true)

	query, binds := s.Describe()
	assert.Equal(t, "SELECT id FROM users WHERE active = ?", query)
	assert.Equal(t, []any{true}, binds)
}

// recorderFunc adapts a function to the ActivityRecorder interface.
type recorderFunc func(query string, binds []any, elapsed time.Duration)

func (f recorderFunc) Record(query string, binds []any, elapsed time.Duration) {
	f(query, binds, elapsed)
}
