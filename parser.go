package main

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// --- Parsed output ---

// Result type tags as emitted by the backend.
const (
	outputSelect       = "select"
	outputStatus       = "status"
	outputError        = "error"
	outputConfirmation = "confirmation_required"
)

const parseFallbackMessage = "Unable to parse response format"

// ParsedOutput is the structured result extracted from a backend chat
// response. Exactly one of the four type tags above is set; the other
// fields are populated depending on the tag.
type ParsedOutput struct {
	Type     string        `json:"type"`
	Data     [][]string    `json:"-"`
	Columns  []string      `json:"columns,omitempty"`
	Message  string        `json:"message,omitempty"`
	RowCount int           `json:"rowCount,omitempty"`
	Table    *PreviewTable `json:"-"`
	SQL      string        `json:"sql,omitempty"`
}

// PreviewTable carries the rows a confirmation_required result wants
// shown before a mutating statement runs.
type PreviewTable struct {
	Columns []string
	Data    [][]string
}

// rawOutput mirrors the backend JSON. Cells arrive as arbitrary JSON
// values (the backend serializes whatever the driver returned), so they
// are decoded loosely and stringified afterwards.
type rawOutput struct {
	Type     string    `json:"type"`
	Data     [][]any   `json:"data"`
	Columns  []string  `json:"columns"`
	Message  string    `json:"message"`
	RowCount int       `json:"rowCount"`
	Table    *rawTable `json:"table"`
	SQL      string    `json:"sql"`
}

type rawTable struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

var (
	outputPattern = regexp.MustCompile(`(?s)Output:\s*(\{.*\})`)
	sqlPattern    = regexp.MustCompile("SQL:\\s*[`']([^`']+)[`']")
)

// Parse converts a raw backend chat response into a structured result.
// It is total: every input maps to a well-formed variant, falling back
// to an error variant when nothing can be extracted. It never panics.
func Parse(output string) ParsedOutput {
	// Short-circuit: a mutating-statement confirmation arrives as a
	// bare JSON object, not wrapped in prose.
	var raw rawOutput
	if err := json.Unmarshal([]byte(output), &raw); err == nil && raw.Type == outputConfirmation {
		return raw.structured()
	}

	m := outputPattern.FindStringSubmatch(output)
	if m == nil {
		return errorOutput(parseFallbackMessage)
	}

	raw = rawOutput{}
	if err := json.Unmarshal([]byte(m[1]), &raw); err != nil {
		return errorOutput(parseFallbackMessage)
	}
	return raw.structured()
}

// ExtractSQL pulls the literal executed SQL text out of a raw response.
// It is independent of Parse: a response may carry structured output
// with no SQL text, or the other way round.
func ExtractSQL(output string) (string, bool) {
	m := sqlPattern.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func errorOutput(message string) ParsedOutput {
	return ParsedOutput{Type: outputError, Message: message}
}

func (r rawOutput) structured() ParsedOutput {
	out := ParsedOutput{
		Type:     r.Type,
		Data:     stringRows(r.Data),
		Columns:  r.Columns,
		Message:  r.Message,
		RowCount: r.RowCount,
		SQL:      r.SQL,
	}
	if r.Table != nil {
		out.Table = &PreviewTable{
			Columns: r.Table.Columns,
			Data:    stringRows(r.Table.Data),
		}
	}
	return out
}

// ColumnNames returns the header row for a select result. When the
// backend omits column names they are synthesized from the width of the
// first data row, or a single "Value" column when there are no rows.
func (p ParsedOutput) ColumnNames() []string {
	if len(p.Columns) > 0 {
		return p.Columns
	}
	if len(p.Data) > 0 {
		cols := make([]string, len(p.Data[0]))
		for i := range cols {
			cols[i] = "Column_" + strconv.Itoa(i+1)
		}
		return cols
	}
	return []string{"Value"}
}

// RowTotal reports the backend row count when present, else the number
// of rows actually carried in the payload.
func (p ParsedOutput) RowTotal() int {
	if p.RowCount > 0 {
		return p.RowCount
	}
	return len(p.Data)
}

func stringRows(rows [][]any) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cellString(cell)
		}
	}
	return out
}

// cellString renders a decoded JSON cell the way the backend's own
// string formatting would. Nulls become the empty string so they sort
// and search as "" while the renderer shows a NULL placeholder.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
