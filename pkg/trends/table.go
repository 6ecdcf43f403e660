package trends

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DateLayout is the layout of date cells after decoding, months and days are not zero padded.
const DateLayout = "2006-1-2"

type Column struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Table is a decoded fetchComponent response. Every row has exactly one value
// per column, values are nil, string, float64 or bool. Date cells hold a string
// in DateLayout.
type Table struct {
	Columns []Column
	Rows    [][]any
}

// checkRows fails when a row does not hold one value per column. Decoded tables
// always pass, hand built ones may not.
func (t Table) checkRows() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return &DecodeError{Reason: fmt.Sprintf(
				"row %d has %d cells for %d columns",
				i, len(row), len(t.Columns),
			)}
		}
	}
	return nil
}

// FormattedData maps every column label to that column's values in row order.
// It returns a *DecodeError when a row is not as wide as the column list.
func (t Table) FormattedData() (map[string][]any, error) {
	err := t.checkRows()
	if err != nil {
		return nil, err
	}

	data := make(map[string][]any, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			data[col.Label] = append(data[col.Label], row[i])
		}
	}
	return data, nil
}

// Term is a single row of a top or rising queries table.
type Term struct {
	Term string
	// Ranking is kept as text since rising queries rank with values like "+250%" or "Breakout".
	Ranking    string
	ProductUrl string
	SearchUrl  string
}

// Score returns the ranking as a number, it is false for non-numeric rankings.
func (t Term) Score() (float64, bool) {
	score, err := strconv.ParseFloat(strings.TrimSpace(t.Ranking), 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

const termColumns = 4

// Terms reads every row as a Term, the table must have exactly 4 columns:
// term, ranking, product url and search url.
func (t Table) Terms() ([]Term, error) {
	if len(t.Columns) != termColumns {
		return nil, &DecodeError{Reason: fmt.Sprintf(
			"term records need %d columns, got %d",
			termColumns, len(t.Columns),
		)}
	}
	err := t.checkRows()
	if err != nil {
		return nil, err
	}

	terms := make([]Term, 0, len(t.Rows))
	for _, row := range t.Rows {
		terms = append(terms, Term{
			Term:       cellString(row[0]),
			Ranking:    cellString(row[1]),
			ProductUrl: cellString(row[2]),
			SearchUrl:  cellString(row[3]),
		})
	}
	return terms, nil
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ParseDate parses a date cell produced by the decoder.
func ParseDate(value any) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("date cell is %T, not a string", value)
	}
	return time.Parse(DateLayout, s)
}

// Render formats the table for humans.
func (t Table) Render() string {
	w := table.NewWriter()
	w.SetStyle(table.StyleRounded)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Label
	}
	w.AppendHeader(header)

	for _, row := range t.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = cellString(v)
		}
		w.AppendRow(out)
	}
	return w.Render()
}
