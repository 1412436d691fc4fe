package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		wantError string
	}{
		{name: "allowed table: ok", table: "cart_items"},
		{name: "unknown table: error", table: "users", wantError: `table "users" is not allowed`},
		{name: "injection attempt: error", table: "orders; DROP TABLE orders", wantError: `table "orders; DROP TABLE orders" is not allowed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(nil, tt.table)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.table, table.Name())
		})
	}
}

func TestBuildSelect(t *testing.T) {
	table := mustTable(nil, "cart_items")

	tests := []struct {
		name      string
		query     Query
		wantSQL   string
		wantArgs  []any
		wantError bool
	}{
		{
			name:    "no filters",
			query:   Query{},
			wantSQL: `SELECT * FROM "cart_items"`,
		},
		{
			name: "filters order and limit",
			query: Query{
				Columns:    []string{"id", "quantity"},
				Filters:    []Eq{{"session_id", "s1"}, {"product_flavor", "Morango"}},
				OrderBy:    "created_at",
				Descending: true,
				Limit:      10,
				Offset:     20,
			},
			wantSQL:  `SELECT "id", "quantity" FROM "cart_items" WHERE "session_id" = $1 AND "product_flavor" = $2 ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`,
			wantArgs: []any{"s1", "Morango", 10, 20},
		},
		{
			name:    "nil value becomes IS NULL",
			query:   Query{Filters: []Eq{{"product_image", nil}}},
			wantSQL: `SELECT * FROM "cart_items" WHERE "product_image" IS NULL`,
		},
		{
			name:      "invalid column",
			query:     Query{Filters: []Eq{{"id = 1 OR 1", 1}}},
			wantError: true,
		},
		{
			name:      "invalid order column",
			query:     Query{OrderBy: "created_at; --"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := table.buildSelect(tt.query)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildInsert(t *testing.T) {
	table := mustTable(nil, "orders")

	sql, args, err := table.buildInsert(map[string]any{
		"status":       "pending",
		"product_name": "Gummy",
		"quantity":     2,
	})
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "orders" ("product_name", "quantity", "status") VALUES ($1, $2, $3) RETURNING *`, sql)
	assert.Equal(t, []any{"Gummy", 2, "pending"}, args)

	_, _, err = table.buildInsert(nil)
	assert.EqualError(t, err, "insert without values")
}

func TestBuildUpdate(t *testing.T) {
	table := mustTable(nil, "orders")

	sql, args, err := table.buildUpdate(
		map[string]any{"status": "paid"},
		[]Eq{{"id", "o1"}, {"status", "pending"}},
	)
	require.NoError(t, err)

	assert.Equal(t, `UPDATE "orders" SET "status" = $1 WHERE "id" = $2 AND "status" = $3`, sql)
	assert.Equal(t, []any{"paid", "o1", "pending"}, args)

	_, _, err = table.buildUpdate(map[string]any{"status": "paid"}, nil)
	assert.EqualError(t, err, "update without filters")
}

func TestBuildDelete(t *testing.T) {
	table := mustTable(nil, "cart_items")

	sql, args, err := table.buildDelete([]Eq{{"session_id", "s1"}})
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "cart_items" WHERE "session_id" = $1`, sql)
	assert.Equal(t, []any{"s1"}, args)

	_, _, err = table.buildDelete(nil)
	assert.EqualError(t, err, "delete without filters")
}
