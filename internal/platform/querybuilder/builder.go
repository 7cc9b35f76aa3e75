package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// stmt accumulates SQL text alongside its positional args so every clause
// shares one $n counter.
type stmt struct {
	buf  strings.Builder
	args []any
}

func (s *stmt) raw(text string) {
	s.buf.WriteString(text)
}

func (s *stmt) bind(value any) {
	s.buf.WriteString("$" + strconv.Itoa(len(s.args)+1))
	s.args = append(s.args, value)
}

// expr writes text, replacing each ? with the next positional placeholder.
func (s *stmt) expr(text string, exprArgs []any) {
	if len(exprArgs) == 0 {
		s.raw(text)
		return
	}

	next := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '?' || next >= len(exprArgs) {
			s.buf.WriteByte(text[i])
			continue
		}
		s.bind(exprArgs[next])
		next++
	}
}

// Condition is one WHERE predicate. Conditions compose with AND only; OR
// branches belong in hand-written SQL, not this builder.
type Condition struct {
	render func(s *stmt)
}

func Eq(column string, value any) Condition {
	return Condition{render: func(s *stmt) {
		s.raw(column + " = ")
		s.bind(value)
	}}
}

func Lte(column string, value any) Condition {
	return Condition{render: func(s *stmt) {
		s.raw(column + " <= ")
		s.bind(value)
	}}
}

// In renders an IN list. An empty value set renders a never-true predicate so
// callers do not have to special-case it.
func In(column string, values []any) Condition {
	return Condition{render: func(s *stmt) {
		if len(values) == 0 {
			s.raw("1=0")
			return
		}
		s.raw(column + " IN (")
		for i, v := range values {
			if i > 0 {
				s.raw(", ")
			}
			s.bind(v)
		}
		s.raw(")")
	}}
}

func IsNull(column string) Condition {
	return Condition{render: func(s *stmt) {
		s.raw(column + " IS NULL")
	}}
}

func Expr(text string, args ...any) Condition {
	return Condition{render: func(s *stmt) {
		s.expr(text, args)
	}}
}

func (s *stmt) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.raw(" WHERE ")
		} else {
			s.raw(" AND ")
		}
		c.render(s)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	wheres  []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.wheres = append(b.wheres, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	s := &stmt{args: make([]any, 0, len(b.wheres))}
	s.raw("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	s.where(b.wheres)
	if len(b.orderBy) > 0 {
		s.raw(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.raw(" LIMIT " + strconv.Itoa(b.limit))
	}

	return s.buf.String(), s.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	s := &stmt{args: make([]any, 0, len(b.rows)*len(b.columns))}
	s.raw("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			s.raw(", ")
		}
		s.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				s.raw(", ")
			}
			s.bind(value)
		}
		s.raw(")")
	}
	if b.suffix != "" {
		s.raw(" ")
		s.expr(b.suffix, nil)
	}

	return s.buf.String(), s.args, nil
}

type setClause struct {
	column string
	value  any
	text   string
	args   []any
	isExpr bool
}

type UpdateBuilder struct {
	table  string
	sets   []setClause
	wheres []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression instead of a bound value, with ? marking
// each bound arg. Used for server-side arithmetic like balance credits.
func (b *UpdateBuilder) SetExpr(column, text string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, text: text, args: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.wheres = append(b.wheres, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	s := &stmt{args: make([]any, 0, len(b.sets)+len(b.wheres))}
	s.raw("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			s.raw(", ")
		}
		s.raw(set.column + " = ")
		if set.isExpr {
			s.expr(set.text, set.args)
			continue
		}
		s.bind(set.value)
	}
	s.where(b.wheres)

	return s.buf.String(), s.args, nil
}
