package trends

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

const nullCell = `{"v":null}`

// stripJsonp returns the object literal inside `callback({...});`.
func stripJsonp(body string) (string, error) {
	start := strings.Index(body, "({")
	if start < 0 {
		return "", &DecodeError{Reason: "missing jsonp wrapper"}
	}
	body = strings.TrimRight(body, " \t\r\n")
	end := len(body) - 2
	if end <= start+1 {
		return "", &DecodeError{Reason: "truncated jsonp wrapper"}
	}
	return body[start+1 : end], nil
}

// google sends these either bare (`v:new Date(2020,0,15)`) or quoted
var dateLiteralRegex = regexp.MustCompile(
	`"new Date\((\d+),\s*(\d+),\s*(\d+)\)"|new Date\((\d+),\s*(\d+),\s*(\d+)\)`,
)

// normalizeDates rewrites every `new Date(Y,M,D)` literal into the string "Y-M-D",
// the month in the literal is zero-based and is shifted to one-based.
func normalizeDates(content string) string {
	return dateLiteralRegex.ReplaceAllStringFunc(content, func(match string) string {
		groups := dateLiteralRegex.FindStringSubmatch(match)
		parts := groups[1:4]
		if groups[1] == "" {
			parts = groups[4:7]
		}

		month, err := strconv.Atoi(parts[1])
		if err != nil {
			return match
		}
		return `"` + parts[0] + "-" + strconv.Itoa(month+1) + "-" + parts[2] + `"`
	})
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// normalizeGaps fills sparse array gaps (`[a,,,b]`, `[,,b]`) with explicit null
// cells so that each gap becomes exactly one element. Commas inside string
// literals are left alone.
func normalizeGaps(content string) string {
	var out strings.Builder
	out.Grow(len(content))

	var quote byte
	escaped := false

	for i := 0; i < len(content); i++ {
		c := content[i]

		if quote != 0 {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		if c == '"' || c == '\'' {
			quote = c
			out.WriteByte(c)
			continue
		}
		if c == '[' {
			// a comma run right after '[' is a run of leading gaps
			out.WriteByte(c)
			commas, j := commaRun(content, i+1)
			if commas > 0 {
				for k := 0; k < commas; k++ {
					out.WriteString(nullCell)
					out.WriteByte(',')
				}
				i = j - 1
			}
			continue
		}
		if c != ',' {
			out.WriteByte(c)
			continue
		}

		commas, j := commaRun(content, i)
		if commas < 2 {
			out.WriteByte(',')
			continue
		}

		out.WriteByte(',')
		for k := 0; k < commas-1; k++ {
			out.WriteString(nullCell)
			out.WriteByte(',')
		}
		i = j - 1
	}

	return out.String()
}

// commaRun counts the commas in the run of commas and whitespace starting at
// start, and returns the index just past it.
func commaRun(content string, start int) (int, int) {
	commas := 0
	j := start
	for j < len(content) && (content[j] == ',' || isSpace(content[j])) {
		if content[j] == ',' {
			commas++
		}
		j++
	}
	return commas, j
}

// normalize turns a raw fetchComponent body into a document any json5 parser accepts.
func normalize(body string) (string, error) {
	content, err := stripJsonp(body)
	if err != nil {
		return "", err
	}
	content = normalizeDates(content)
	content = normalizeGaps(content)
	return content, nil
}

type rawCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

type rawRow struct {
	C []*rawCell `json:"c"`
}

type rawTable struct {
	Cols []Column `json:"cols"`
	Rows []rawRow `json:"rows"`
}

type rawError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

type rawPayload struct {
	Status string     `json:"status"`
	Errors []rawError `json:"errors"`
	Table  *rawTable  `json:"table"`
}

func parsePayload(body string) (rawPayload, error) {
	content, err := normalize(body)
	if err != nil {
		return rawPayload{}, err
	}

	var payload rawPayload
	err = json5.Unmarshal([]byte(content), &payload)
	if err != nil {
		return rawPayload{}, &DecodeError{Reason: "parse payload", Err: err}
	}
	return payload, nil
}

// DecodeTable strips, normalizes and parses a fetchComponent response body.
func DecodeTable(body string) (Table, error) {
	payload, err := parsePayload(body)
	if err != nil {
		return Table{}, err
	}
	if payload.Table == nil {
		return Table{}, &DecodeError{Reason: "payload has no table"}
	}

	table := Table{
		Columns: payload.Table.Cols,
		Rows:    make([][]any, 0, len(payload.Table.Rows)),
	}
	for i, row := range payload.Table.Rows {
		if len(row.C) > len(table.Columns) {
			return Table{}, &DecodeError{Reason: "row " + strconv.Itoa(i) + " has more cells than columns"}
		}

		values := make([]any, len(table.Columns))
		for j, cell := range row.C {
			if cell != nil {
				values[j] = cell.V
			}
		}
		table.Rows = append(table.Rows, values)
	}

	return table, nil
}

// decodeServiceError extracts the message of a `"status":"error"` payload.
func decodeServiceError(body string) (string, error) {
	payload, err := parsePayload(body)
	if err != nil {
		return "", err
	}
	if len(payload.Errors) == 0 {
		return "", &DecodeError{Reason: "error payload has no errors"}
	}

	first := payload.Errors[0]
	message := first.Message
	if first.DetailedMessage != "" {
		message += ". " + first.DetailedMessage
	}
	return message, nil
}
