package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GetInputs collects the name and value of every <input> under the selection.
// Inputs without a name are skipped, and later inputs override earlier ones
// with the same name, the same way a browser would serialize them into a map.
func GetInputs(sel *goquery.Selection) map[string]string {
	inputs := map[string]string{}
	sel.Find("input").Each(func(_ int, input *goquery.Selection) {
		name := strings.TrimSpace(input.AttrOr("name", ""))
		if name == "" {
			return
		}
		inputs[name] = input.AttrOr("value", "")
	})
	return inputs
}

// GetInputsFromHtml parses an html document and returns GetInputs of the whole document.
func GetInputsFromHtml(body []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	return GetInputs(doc.Selection), nil
}
