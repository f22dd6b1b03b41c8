package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE training_rows (order_id TEXT PRIMARY KEY, wait_time REAL, number_of_products INTEGER)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "training_rows")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "text", colMap["order_id"])
	assert.Equal(t, "real", colMap["wait_time"])
	assert.Equal(t, "integer", colMap["number_of_products"])

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE training_rows (order_id TEXT, price REAL)").Error)

	missing, err := MissingColumns(db, "training_rows", []string{"order_id", "price", "freight_value", "Wait_Time"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"freight_value", "Wait_Time"}, missing)

	missing, err = MissingColumns(db, "training_rows", []string{"ORDER_ID"})
	assert.NoError(t, err)
	assert.Empty(t, missing)
}
