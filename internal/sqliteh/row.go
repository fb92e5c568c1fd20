package sqliteh

import (
	"strconv"
	"strings"
	"time"

	"github.com/orsinium-labs/enum"
)

// ColType is the runtime type tag of a column in the current result
// row.
type ColType enum.Member[string]

var (
	TypeNull    = ColType{Value: "null"}
	TypeInteger = ColType{Value: "integer"}
	TypeFloat   = ColType{Value: "float"}
	TypeText    = ColType{Value: "text"}
	TypeBlob    = ColType{Value: "blob"}

	ColTypes = enum.New(TypeNull, TypeInteger, TypeFloat, TypeText, TypeBlob)
)

// ColumnCount returns the number of columns in the current result row,
// or 0 when the statement is not positioned on a row.
func (stmt *Stmt) ColumnCount() int {
	if stmt.cur == nil {
		return 0
	}
	return len(stmt.cur)
}

// ColumnName returns the name of the column at the given 0-based
// index.
func (stmt *Stmt) ColumnName(index int) string {
	if index < 0 || index >= len(stmt.cols) {
		return ""
	}
	return stmt.cols[index]
}

// declaredTextType reports whether a column's declared type carries
// text affinity, following https://www.sqlite.org/datatype3.html.
func declaredTextType(decl string) bool {
	decl = strings.ToLower(decl)
	return strings.Contains(decl, "char") ||
		strings.Contains(decl, "clob") ||
		strings.Contains(decl, "text")
}

// ColumnType returns the runtime type tag of the column at the given
// 0-based index. The driver hands text and blob values over in the
// same representation, so those two are told apart by the column's
// declared type; an undeclared byte column reads as a blob.
func (stmt *Stmt) ColumnType(index int) ColType {
	if stmt.cur == nil || index < 0 || index >= len(stmt.cur) {
		return TypeNull
	}

	switch stmt.cur[index].(type) {
	case nil:
		return TypeNull
	case int64:
		return TypeInteger
	case float64:
		return TypeFloat
	case string, time.Time:
		return TypeText
	case []byte:
		if index < len(stmt.decl) && declaredTextType(stmt.decl[index]) {
			return TypeText
		}
		return TypeBlob
	default:
		return TypeBlob
	}
}

// ColumnInt64 returns the column value at the given 0-based index as
// an int64, applying the engine's coercion rules: floats truncate,
// numeric text parses, and anything else reads as 0.
func (stmt *Stmt) ColumnInt64(index int) int64 {
	if stmt.cur == nil || index < 0 || index >= len(stmt.cur) {
		return 0
	}

	switch v := stmt.cur[index].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		return textToInt64(v)
	case []byte:
		return textToInt64(string(v))
	default:
		return 0
	}
}

// ColumnFloat64 returns the column value at the given 0-based index as
// a float64, applying the engine's coercion rules: integers widen,
// numeric text parses, and anything else reads as 0.
func (stmt *Stmt) ColumnFloat64(index int) float64 {
	if stmt.cur == nil || index < 0 || index >= len(stmt.cur) {
		return 0
	}

	switch v := stmt.cur[index].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f
	default:
		return 0
	}
}

// ColumnText returns the column value at the given 0-based index as a
// string. The value is read with its reported length, so a zero-length
// value is an explicit empty string, and NULL also reads as "".
func (stmt *Stmt) ColumnText(index int) string {
	if stmt.cur == nil || index < 0 || index >= len(stmt.cur) {
		return ""
	}

	switch v := stmt.cur[index].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return ""
	}
}

// ColumnBlob returns the column value at the given 0-based index as a
// byte slice. The slice is a copy owned by the caller; a zero-length
// value and NULL both read as nil.
func (stmt *Stmt) ColumnBlob(index int) []byte {
	if stmt.cur == nil || index < 0 || index >= len(stmt.cur) {
		return nil
	}

	switch v := stmt.cur[index].(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		buf := make([]byte, len(v))
		copy(buf, v)
		return buf
	case string:
		if len(v) == 0 {
			return nil
		}
		return []byte(v)
	default:
		return nil
	}
}

// textToInt64 parses text the way the engine reads text as an integer:
// a full integer parses directly, a float truncates, anything else is 0.
func textToInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}
