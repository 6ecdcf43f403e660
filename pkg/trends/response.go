package trends

import "net/http"

// Response is the untouched result of a fetchComponent request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// Decode parses the body into a Table.
func (r Response) Decode() (Table, error) {
	return DecodeTable(r.Body)
}

// FormattedData decodes the body and maps every column label to its values.
func (r Response) FormattedData() (map[string][]any, error) {
	table, err := r.Decode()
	if err != nil {
		return nil, err
	}
	return table.FormattedData()
}

// Terms decodes the body as a top or rising queries table.
func (r Response) Terms() ([]Term, error) {
	table, err := r.Decode()
	if err != nil {
		return nil, err
	}
	return table.Terms()
}
