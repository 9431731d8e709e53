package sqllog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sqllog "github.com/tigerroll/stride/pkg/run/sqllog"
)

func TestFormatSQLSubstitutesBindsInOrder(t *testing.T) {
	got := sqllog.FormatSQL(
		"SELECT * FROM users WHERE email = ? AND active = ? LIMIT ?",
		[]any{"a@example.com", true, 10},
	)
	assert.Equal(t, "SELECT * FROM users WHERE email = 'a@example.com' AND active = TRUE LIMIT 10", got)
}

func TestFormatSQLSkipsPlaceholdersInsideStrings(t *testing.T) {
	got := sqllog.FormatSQL(
		"SELECT * FROM notes WHERE body = 'why?' AND id = ?",
		[]any{7},
	)
	assert.Equal(t, "SELECT * FROM notes WHERE body = 'why?' AND id = 7", got)
}

func TestFormatSQLPostgresOrdinals(t *testing.T) {
	got := sqllog.FormatSQL(
		"SELECT * FROM users WHERE id = $2 OR name = $1",
		[]any{"bob", 5},
	)
	assert.Equal(t, "SELECT * FROM users WHERE id = 5 OR name = 'bob'", got)
}

func TestFormatSQLFlattensNestedBinds(t *testing.T) {
	got := sqllog.FormatSQL(
		"SELECT * FROM t WHERE a = ? AND b = ? AND c = ?",
		[]any{[]any{"a", "b"}, "c"},
	)
	assert.Equal(t, "SELECT * FROM t WHERE a = 'a' AND b = 'b' AND c = 'c'", got)
}

func TestFormatSQLFlattensDeeplyNestedBinds(t *testing.T) {
	got := sqllog.FormatSQL(
		"SELECT * FROM t WHERE id IN (?, ?, ?) AND active = ?",
		[]any{[]any{1, []any{2, 3}}, true},
	)
	assert.Equal(t, "SELECT * FROM t WHERE id IN (1, 2, 3) AND active = TRUE", got)
}

func TestFormatSQLSurplusPlaceholdersStay(t *testing.T) {
	got := sqllog.FormatSQL("UPDATE users SET a = ?, b = ?", []any{1})
	assert.Equal(t, "UPDATE users SET a = 1, b = ?", got)
}

func TestQuoteLiteral(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	name := "carol"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string escaped", "it's", "'it''s'"},
		{"bytes", []byte("raw"), "'raw'"},
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"time", ts, "'2024-03-01T12:30:00Z'"},
		{"nil pointer", (*string)(nil), "NULL"},
		{"pointer", &name, "'carol'"},
		{"slice joins", []int{1, 2, 3}, "1, 2, 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqllog.QuoteLiteral(tt.in))
		})
	}
}

func TestPrettifyBreaksOnClauses(t *testing.T) {
	got := sqllog.Prettify("SELECT id, email   FROM users WHERE active = TRUE ORDER BY id LIMIT 10")
	assert.Equal(t, "SELECT id, email\nFROM users\nWHERE active = TRUE\nORDER BY id\nLIMIT 10", got)
}

func TestPrettifyIsIdempotent(t *testing.T) {
	once := sqllog.Prettify("SELECT a FROM t WHERE b = 1 GROUP BY a HAVING COUNT(*) > 1")
	assert.Equal(t, once, sqllog.Prettify(once))
}

func TestPrettifyLeavesQuotedKeywordsAlone(t *testing.T) {
	got := sqllog.Prettify("SELECT * FROM notes WHERE body = 'from where i stand'")
	assert.Equal(t, "SELECT *\nFROM notes\nWHERE body = 'from where i stand'", got)
}
