package repositories

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"gummy-store/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var allowedTables = map[string]bool{
	"cart_items":        true,
	"conversations":     true,
	"messages":          true,
	"addresses":         true,
	"orders":            true,
	"review_likes":      true,
	"review_user_likes": true,
	"checkout_attempts": true,
}

// Eq is an equality predicate on one column.
type Eq struct {
	Column string
	Value  any
}

type Query struct {
	Columns    []string
	Filters    []Eq
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// Table is a generic reader/writer over one allow-listed table. Values are
// always bound as parameters; identifiers are validated and quoted.
type Table struct {
	db   DBTX
	name string
}

func NewTable(db DBTX, name string) (*Table, error) {
	if !allowedTables[name] {
		return nil, fmt.Errorf("table %q is not allowed", name)
	}
	return &Table{db: db, name: name}, nil
}

func mustTable(db DBTX, name string) *Table {
	t, err := NewTable(db, name)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string {
	return t.name
}

func quoteIdent(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

func buildWhere(filters []Eq, args []any) (string, []any, error) {
	if len(filters) == 0 {
		return "", args, nil
	}

	conds := make([]string, 0, len(filters))
	for _, f := range filters {
		col, err := quoteIdent(f.Column)
		if err != nil {
			return "", nil, err
		}
		if f.Value == nil {
			conds = append(conds, col+" IS NULL")
			continue
		}
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (t *Table) buildSelect(q Query) (string, []any, error) {
	table, err := quoteIdent(t.name)
	if err != nil {
		return "", nil, err
	}

	cols := "*"
	if len(q.Columns) > 0 {
		quoted := make([]string, 0, len(q.Columns))
		for _, c := range q.Columns {
			qc, err := quoteIdent(c)
			if err != nil {
				return "", nil, err
			}
			quoted = append(quoted, qc)
		}
		cols = strings.Join(quoted, ", ")
	}

	where, args, err := buildWhere(q.Filters, nil)
	if err != nil {
		return "", nil, err
	}

	sql := "SELECT " + cols + " FROM " + table + where

	if q.OrderBy != "" {
		col, err := quoteIdent(q.OrderBy)
		if err != nil {
			return "", nil, err
		}
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		sql += " ORDER BY " + col + " " + dir
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		sql += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return sql, args, nil
}

func (t *Table) buildInsert(values map[string]any) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, errors.New("insert without values")
	}
	table, err := quoteIdent(t.name)
	if err != nil {
		return "", nil, err
	}

	keys := slices.Sorted(maps.Keys(values))
	cols := make([]string, 0, len(keys))
	params := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		col, err := quoteIdent(k)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, col)
		params = append(params, fmt.Sprintf("$%d", i+1))
		args = append(args, values[k])
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(params, ", "))
	return sql, args, nil
}

func (t *Table) buildUpdate(values map[string]any, filters []Eq) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, errors.New("update without values")
	}
	if len(filters) == 0 {
		return "", nil, errors.New("update without filters")
	}
	table, err := quoteIdent(t.name)
	if err != nil {
		return "", nil, err
	}

	keys := slices.Sorted(maps.Keys(values))
	sets := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+len(filters))
	for _, k := range keys {
		col, err := quoteIdent(k)
		if err != nil {
			return "", nil, err
		}
		args = append(args, values[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	where, args, err := buildWhere(filters, args)
	if err != nil {
		return "", nil, err
	}

	return "UPDATE " + table + " SET " + strings.Join(sets, ", ") + where, args, nil
}

func (t *Table) buildDelete(filters []Eq) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, errors.New("delete without filters")
	}
	table, err := quoteIdent(t.name)
	if err != nil {
		return "", nil, err
	}

	where, args, err := buildWhere(filters, nil)
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + table + where, args, nil
}

func (t *Table) Select(ctx context.Context, q Query) ([]map[string]any, error) {
	sql, args, err := t.buildSelect(q)
	if err != nil {
		return nil, err
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", t.name, err)
	}
	return result, nil
}

func (t *Table) Insert(ctx context.Context, values map[string]any) (map[string]any, error) {
	sql, args, err := t.buildInsert(values)
	if err != nil {
		return nil, err
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}
	return row, nil
}

func (t *Table) Update(ctx context.Context, values map[string]any, filters []Eq) (int64, error) {
	sql, args, err := t.buildUpdate(values, filters)
	if err != nil {
		return 0, err
	}

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", t.name, err)
	}
	return tag.RowsAffected(), nil
}

func (t *Table) Delete(ctx context.Context, filters []Eq) (int64, error) {
	sql, args, err := t.buildDelete(filters)
	if err != nil {
		return 0, err
	}

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", t.name, err)
	}
	return tag.RowsAffected(), nil
}

// SelectInto runs q and maps each row onto T by db tag.
func SelectInto[T any](ctx context.Context, t *Table, q Query) ([]T, error) {
	sql, args, err := t.buildSelect(q)
	if err != nil {
		return nil, err
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", t.name, err)
	}
	return result, nil
}

// SelectOne returns the first row of q or models.ErrNotFound.
func SelectOne[T any](ctx context.Context, t *Table, q Query) (*T, error) {
	q.Limit = 1
	result, err := SelectInto[T](ctx, t, q)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, models.ErrNotFound
	}
	return &result[0], nil
}

// InsertInto inserts values and maps the returned row onto T.
func InsertInto[T any](ctx context.Context, t *Table, values map[string]any) (*T, error) {
	sql, args, err := t.buildInsert(values)
	if err != nil {
		return nil, err
	}

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}
	return &row, nil
}
