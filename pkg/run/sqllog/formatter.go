// Package sqllog formats SQL statements for operator display: it
// interpolates bind values into placeholder positions as quoted literals
// and reflows long statements onto keyword-aligned lines.
package sqllog

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// FormatSQL substitutes the bind values into the query's placeholders and
// returns a statement that can be pasted into a SQL console. Nested bind
// collections are flattened left-to-right before substitution, so each
// value consumes exactly one placeholder. Both `?` and Postgres-style `$N`
// placeholders are recognized; placeholders inside single-quoted string
// literals are left untouched. Surplus placeholders stay as written.
func FormatSQL(query string, binds []any) string {
	binds = flattenBinds(binds)

	var b strings.Builder
	b.Grow(len(query))

	next := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote && next < len(binds):
			b.WriteString(QuoteLiteral(binds[next]))
			next++
		case ch == '$' && !inQuote:
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if n := parseOrdinal(query[i+1 : j]); n >= 1 && n <= len(binds) {
				b.WriteString(QuoteLiteral(binds[n-1]))
				i = j - 1
			} else {
				b.WriteByte(ch)
			}
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// flattenBinds expands nested slices and arrays in order, so the binds
// line up one-to-one with placeholders regardless of how the data layer
// grouped them. []byte stays intact: it is a single string-like value.
func flattenBinds(binds []any) []any {
	flat := make([]any, 0, len(binds))
	for _, v := range binds {
		switch v.(type) {
		case nil, []byte:
			flat = append(flat, v)
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			nested := make([]any, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				nested[i] = rv.Index(i).Interface()
			}
			flat = append(flat, flattenBinds(nested)...)
			continue
		}
		flat = append(flat, v)
	}
	return flat
}

func parseOrdinal(digits string) int {
	if digits == "" {
		return 0
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n
}

// QuoteLiteral renders a single bind value as a SQL literal. Slices other
// than []byte are rendered as a comma-separated list, so a collection
// bound to an IN clause expands in place.
func QuoteLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case []byte:
		return "'" + strings.ReplaceAll(string(val), "'", "''") + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return "'" + val.Format(time.RFC3339) + "'"
	case fmt.Stringer:
		return "'" + strings.ReplaceAll(val.String(), "'", "''") + "'"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "NULL"
		}
		return QuoteLiteral(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = QuoteLiteral(rv.Index(i).Interface())
		}
		return strings.Join(parts, ", ")
	case reflect.String:
		return "'" + strings.ReplaceAll(rv.String(), "'", "''") + "'"
	}
	return fmt.Sprintf("%v", v)
}

var keywordBreaks = regexp.MustCompile(`(?i) (FROM|LEFT JOIN|RIGHT JOIN|INNER JOIN|CROSS JOIN|JOIN|WHERE|GROUP BY|HAVING|ORDER BY|LIMIT|OFFSET|SET|VALUES|RETURNING|ON CONFLICT)\b`)

// Prettify reflows a statement: whitespace runs collapse to single spaces
// and each major clause keyword starts a new line. The transform is
// idempotent, so statements that were already prettified pass through
// unchanged.
func Prettify(query string) string {
	collapsed := strings.Join(strings.Fields(query), " ")

	var b strings.Builder
	b.Grow(len(collapsed))
	inQuote := false
	start := 0
	for i := 0; i < len(collapsed); i++ {
		if collapsed[i] == '\'' {
			if !inQuote {
				b.WriteString(keywordBreaks.ReplaceAllString(collapsed[start:i], "\n$1"))
			} else {
				b.WriteString(collapsed[start:i])
			}
			b.WriteByte('\'')
			inQuote = !inQuote
			start = i + 1
		}
	}
	if inQuote {
		b.WriteString(collapsed[start:])
	} else {
		b.WriteString(keywordBreaks.ReplaceAllString(collapsed[start:], "\n$1"))
	}
	return b.String()
}
