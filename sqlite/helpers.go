package sqlite

import (
	"strconv"
	"strings"
)

// where accumulates AND-ed conditions of a query.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, arg any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, arg)
}

// String returns the WHERE clause, or "" without conditions.
func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// pagination returns the LIMIT/OFFSET clause for non-zero values.
// SQLite only accepts OFFSET after a LIMIT; -1 means no limit.
func pagination(limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return ""
	}
	if limit <= 0 {
		limit = -1
	}
	clause := " LIMIT " + strconv.Itoa(limit)
	if offset > 0 {
		clause += " OFFSET " + strconv.Itoa(offset)
	}
	return clause
}
