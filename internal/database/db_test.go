package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatementsDropsCommentsAndEmpties(t *testing.T) {
	script := `-- leading comment
CREATE TABLE a (id INT);

-- another comment
CREATE TABLE b (
    id INT -- no inline comments in our schema
);
`
	stmts := splitStatements(script)
	require.Len(t, stmts, 2)
	assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE a"))
	assert.True(t, strings.HasPrefix(stmts[1], "CREATE TABLE b"))
}

func TestEmbeddedSchemaCoversAllTables(t *testing.T) {
	stmts := splitStatements(schemaSQL)
	assert.Len(t, stmts, 7)
	for _, table := range []string{"room_types", "rooms", "customers", "bookings", "room_bookings", "payments", "reviews"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
