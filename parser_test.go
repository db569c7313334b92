package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelect(t *testing.T) {
	raw := "Here are your results.\n\n" +
		"SQL: `SELECT id, name FROM users`\n\n" +
		`Output: {"type": "select", "columns": ["id", "name"], "data": [[1, "Ada"], [2, null]], "rowCount": 2}`

	out := Parse(raw)
	require.Equal(t, outputSelect, out.Type)
	assert.Equal(t, []string{"id", "name"}, out.Columns)
	assert.Equal(t, [][]string{{"1", "Ada"}, {"2", ""}}, out.Data)
	assert.Equal(t, 2, out.RowTotal())
}

func TestParseStatus(t *testing.T) {
	raw := `Done. Output: {"type": "status", "message": "1 row inserted"}`
	out := Parse(raw)
	require.Equal(t, outputStatus, out.Type)
	assert.Equal(t, "1 row inserted", out.Message)
}

func TestParseError(t *testing.T) {
	raw := `Output: {"type": "error", "message": "relation \"userz\" does not exist"}`
	out := Parse(raw)
	require.Equal(t, outputError, out.Type)
	assert.Contains(t, out.Message, "does not exist")
}

func TestParseConfirmationBareJSON(t *testing.T) {
	// Confirmations arrive as a bare JSON object, no "Output:" wrapper.
	raw := `{"type": "confirmation_required", "message": "This will delete 3 rows", ` +
		`"sql": "DELETE FROM users WHERE id > 3", ` +
		`"table": {"columns": ["id"], "data": [[4], [5], [6]]}}`

	out := Parse(raw)
	require.Equal(t, outputConfirmation, out.Type)
	assert.Equal(t, "DELETE FROM users WHERE id > 3", out.SQL)
	require.NotNil(t, out.Table)
	assert.Equal(t, []string{"id"}, out.Table.Columns)
	assert.Equal(t, [][]string{{"4"}, {"5"}, {"6"}}, out.Table.Data)
}

func TestParseFallback(t *testing.T) {
	for _, raw := range []string{
		"",
		"just some prose with no structure",
		"Output: {not valid json}",
	} {
		out := Parse(raw)
		assert.Equal(t, outputError, out.Type, "input %q", raw)
		assert.Equal(t, parseFallbackMessage, out.Message)
	}
}

func TestParseCellFormatting(t *testing.T) {
	raw := `Output: {"type": "select", "columns": ["a", "b", "c"], "data": [[3.5, 4, true]]}`
	out := Parse(raw)
	require.Len(t, out.Data, 1)
	assert.Equal(t, []string{"3.5", "4", "true"}, out.Data[0])
}

func TestExtractSQL(t *testing.T) {
	sql, ok := ExtractSQL("SQL: `SELECT 1`\nOutput: {}")
	require.True(t, ok)
	assert.Equal(t, "SELECT 1", sql)

	sql, ok = ExtractSQL("SQL: 'DELETE FROM t'")
	require.True(t, ok)
	assert.Equal(t, "DELETE FROM t", sql)

	_, ok = ExtractSQL("no sql here")
	assert.False(t, ok)
}

func TestColumnNames(t *testing.T) {
	out := ParsedOutput{Columns: []string{"x"}}
	assert.Equal(t, []string{"x"}, out.ColumnNames())

	out = ParsedOutput{Data: [][]string{{"1", "2", "3"}}}
	assert.Equal(t, []string{"Column_1", "Column_2", "Column_3"}, out.ColumnNames())

	out = ParsedOutput{}
	assert.Equal(t, []string{"Value"}, out.ColumnNames())
}

func TestRowTotalPrefersBackendCount(t *testing.T) {
	out := ParsedOutput{RowCount: 120, Data: [][]string{{"1"}}}
	assert.Equal(t, 120, out.RowTotal())

	out = ParsedOutput{Data: [][]string{{"1"}, {"2"}}}
	assert.Equal(t, 2, out.RowTotal())
}
