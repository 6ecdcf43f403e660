package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInputsFromHtml(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		expected map[string]string
	}{
		{
			name: "hidden and text inputs",
			html: `<form>
				<input type="hidden" name="GALX" value="abc123">
				<input type="text" name="Email">
				<input type="password" name="Passwd" value="">
			</form>`,
			expected: map[string]string{
				"GALX":   "abc123",
				"Email":  "",
				"Passwd": "",
			},
		},
		{
			name:     "nameless inputs are skipped",
			html:     `<input value="orphan"><input name="a" value="1">`,
			expected: map[string]string{"a": "1"},
		},
		{
			name:     "later duplicates win",
			html:     `<input name="a" value="1"><div><input name="a" value="2"></div>`,
			expected: map[string]string{"a": "2"},
		},
		{
			name:     "no inputs",
			html:     `<p>nothing here</p>`,
			expected: map[string]string{},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			inputs, err := GetInputsFromHtml([]byte(test.html))
			require.NoError(t, err)
			require.Equal(t, test.expected, inputs)
		})
	}
}
