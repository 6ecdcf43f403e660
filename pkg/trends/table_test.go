package trends

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const topQueriesBody = `google.visualization.Query.setResponse({"version":"0.6","status":"ok","table":{` +
	`"cols":[{"id":"query","label":"Query","type":"string"},{"id":"value","label":"Value","type":"number"},{"id":"link","label":"Link","type":"string"},{"id":"search","label":"Search","type":"string"}],` +
	`"rows":[{"c":[{"v":"golang tutorial"},{"v":100},{"v":"/trends/explore#q=golang+tutorial"},{"v":"https://www.google.com/search?q=golang+tutorial"}]},` +
	`{"c":[{"v":"golang vs rust"},{"v":"Breakout"},{"v":"/trends/explore#q=golang+vs+rust"},{"v":"https://www.google.com/search?q=golang+vs+rust"}]}]}});`

func TestTerms(t *testing.T) {
	table, err := DecodeTable(topQueriesBody)
	require.NoError(t, err)

	terms, err := table.Terms()
	require.NoError(t, err)
	require.Equal(t, []Term{
		{
			Term:       "golang tutorial",
			Ranking:    "100",
			ProductUrl: "/trends/explore#q=golang+tutorial",
			SearchUrl:  "https://www.google.com/search?q=golang+tutorial",
		},
		{
			Term:       "golang vs rust",
			Ranking:    "Breakout",
			ProductUrl: "/trends/explore#q=golang+vs+rust",
			SearchUrl:  "https://www.google.com/search?q=golang+vs+rust",
		},
	}, terms)

	score, ok := terms[0].Score()
	require.True(t, ok)
	require.Equal(t, float64(100), score)

	_, ok = terms[1].Score()
	require.False(t, ok)
}

func TestTermsColumnMismatch(t *testing.T) {
	testCases := []struct {
		name    string
		columns int
	}{
		{name: "too few", columns: 3},
		{name: "too many", columns: 5},
		{name: "none", columns: 0},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			table := Table{Columns: make([]Column, test.columns)}
			table.Rows = [][]any{make([]any, test.columns)}

			terms, err := table.Terms()
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			require.Nil(t, terms)
		})
	}
}

func TestFormattedDataDuplicateLabels(t *testing.T) {
	table := Table{
		Columns: []Column{{Label: "x"}, {Label: "x"}},
		Rows:    [][]any{{"a", "b"}, {"c", "d"}},
	}
	data, err := table.FormattedData()
	require.NoError(t, err)
	require.Equal(t, map[string][]any{"x": {"a", "b", "c", "d"}}, data)
}

func TestFormattedDataEmpty(t *testing.T) {
	table := Table{Columns: []Column{{Label: "Date"}}}
	data, err := table.FormattedData()
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestRaggedRows(t *testing.T) {
	testCases := []struct {
		name string
		rows [][]any
	}{
		{name: "short row", rows: [][]any{{"a", "1", "/x", "https://x"}, {"b", "2"}}},
		{name: "long row", rows: [][]any{{"a", "1", "/x", "https://x", "extra"}}},
		{name: "empty row", rows: [][]any{{}}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			table := Table{Columns: make([]Column, termColumns), Rows: test.rows}

			data, err := table.FormattedData()
			require.ErrorAs(t, err, new(*DecodeError))
			require.Nil(t, data)

			terms, err := table.Terms()
			require.ErrorAs(t, err, new(*DecodeError))
			require.Nil(t, terms)
		})
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2014-12-28")
	require.NoError(t, err)
	require.Equal(t, time.Date(2014, time.December, 28, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate(float64(3))
	require.Error(t, err)

	_, err = ParseDate("not a date")
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	table, err := DecodeTable(graphBody)
	require.NoError(t, err)

	rendered := table.Render()
	// go-pretty upper cases headers
	require.Contains(t, strings.ToLower(rendered), "golang")
	require.Contains(t, rendered, "2014-12-28")
	require.Contains(t, rendered, "51")
}

func TestResponseProjections(t *testing.T) {
	res := Response{StatusCode: 200, Body: topQueriesBody}

	data, err := res.FormattedData()
	require.NoError(t, err)
	require.Equal(t, []any{"golang tutorial", "golang vs rust"}, data["Query"])

	terms, err := res.Terms()
	require.NoError(t, err)
	require.Len(t, terms, 2)

	broken := Response{StatusCode: 200, Body: "<html>not trends</html>"}
	_, err = broken.FormattedData()
	require.ErrorAs(t, err, new(*DecodeError))
	_, err = broken.Terms()
	require.ErrorAs(t, err, new(*DecodeError))
}
