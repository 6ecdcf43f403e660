package trends

import (
	"context"
	"fmt"
	"gtrends/internal/assert"
	"net/http"
	"strings"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_request_send  = "request.send"
	report_request_delay = "request.delay"
)

// cids select the shape of the result table.
const (
	CidGraph         = "TIMESERIES_GRAPH_0"
	CidTopQueries    = "TOP_QUERIES_0_0"
	CidRisingQueries = "RISING_QUERIES_0_0"
)

const (
	MaxTerms = 6

	quotaMessage       = "You have reached your quota limit."
	serviceErrorMarker = `"status":"error"`

	// the delay bounds are in hundredths of a second
	minSleepInterval = 10
	sleepUnit        = 10 * time.Millisecond
)

// Request builds a single fetchComponent query. The zero value is not usable,
// create one with NewRequest.
type Request struct {
	session   *Session
	terms     []string
	cid       string
	language  string
	category  string
	location  string
	dateRange string
}

// NewRequest creates a time series graph request covering the last twelve months.
func NewRequest(session *Session) *Request {
	assert.NotNil(session, "session")

	now := session.time.Now()
	r := &Request{
		session:  session,
		cid:      CidGraph,
		language: strings.ReplaceAll(session.Language(), "_", "-"),
	}
	r.SetDateRange(now.AddDate(0, -12, 0), now)
	return r
}

// AddTerm adds a search term, terms past the sixth are ignored.
func (r *Request) AddTerm(term string) *Request {
	if len(r.terms) < MaxTerms {
		r.terms = append(r.terms, term)
	}
	return r
}

// SetDateRange sets the months the query covers. An end before start is not
// rejected, the resulting span is zero or negative.
func (r *Request) SetDateRange(start, end time.Time) *Request {
	if start.Year() == end.Year() && start.Month() == end.Month() {
		r.dateRange = fmt.Sprintf("%02d/%04d 1m", start.Month(), start.Year())
		return r
	}

	span := int(end.Month()-start.Month()) + 12*(end.Year()-start.Year())
	r.dateRange = fmt.Sprintf("%02d/%04d %dm", start.Month(), start.Year(), span)
	return r
}

// SetCategory filters by a trends category id like `0-3`, the id is the `cat`
// query parameter of the trends explore page.
func (r *Request) SetCategory(category string) *Request {
	r.category = category
	return r
}

// SetLocation filters by a geo code like `US` or `BE`.
func (r *Request) SetLocation(location string) *Request {
	r.location = location
	return r
}

func (r *Request) SetCid(cid string) *Request {
	r.cid = cid
	return r
}

// Graph requests a comparison graph of the terms over time.
func (r *Request) Graph() *Request {
	return r.SetCid(CidGraph)
}

// TopQueries requests the top queries related to the terms.
func (r *Request) TopQueries() *Request {
	return r.SetCid(CidTopQueries)
}

// RisingQueries requests the rising queries related to the terms.
func (r *Request) RisingQueries() *Request {
	return r.SetCid(CidRisingQueries)
}

func (r *Request) Terms() []string {
	return r.terms
}

func (r *Request) DateRange() string {
	return r.dateRange
}

func (r *Request) Cid() string {
	return r.cid
}

func (r *Request) queryParams() map[string]string {
	params := map[string]string{
		"hl":      r.language,
		"q":       strings.Join(r.terms, ",+"),
		"cid":     r.cid,
		"date":    r.dateRange,
		"cmpt":    "q",
		"content": "1",
		"export":  "3",
	}
	if r.category != "" {
		params["cat"] = r.category
	}
	if r.location != "" {
		params["geo"] = r.location
	}
	return params
}

// delay waits a random amount of time so consecutive queries do not look automated.
func (r *Request) delay(ctx context.Context) error {
	maxInterval := r.session.MaxSleepInterval()
	if maxInterval <= minSleepInterval {
		return nil
	}

	// IntRange excludes the upper bound
	interval, err := random.IntRange(minSleepInterval, maxInterval+1)
	if err != nil {
		r.session.tel.ReportWarning(report_request_delay, fmt.Errorf("pick interval: %w", err))
		interval = maxInterval
	}

	d := time.Duration(interval) * sleepUnit
	r.session.tel.ReportDebug("delaying query", d.String())
	return r.session.time.Sleep(ctx, d)
}

// Send runs the query. It returns a *QuotaExceededError when google rate limits the
// session, a *ServiceError when google rejects the query and a *StatusError for
// any other 4xx or 5xx answer. Errors from the http client are returned as is.
func (r *Request) Send(ctx context.Context) (Response, error) {
	ctx, span := tracer.Start(ctx, "request:Send")
	defer span.End()

	span.SetAttributes(
		attribute.StringSlice("terms", r.terms),
		attribute.String("cid", r.cid),
		attribute.String("date", r.dateRange),
	)

	err := r.delay(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "delay interrupted")
		return Response{}, err
	}

	res, err := r.session.http.R().
		SetContext(ctx).
		SetQueryParams(r.queryParams()).
		Get(r.session.endpoints.trends)
	if err != nil {
		r.session.tel.ReportBroken(report_request_send, fmt.Errorf("fetch: %w", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Response{}, err
	}

	response := Response{
		StatusCode: res.StatusCode(),
		Header:     res.Header(),
		Body:       res.String(),
	}
	sentUrl := requestUrl(res)

	if response.StatusCode == http.StatusNonAuthoritativeInfo && strings.Contains(response.Body, quotaMessage) {
		r.session.tel.ReportWarning(report_request_send, "quota exceeded")
		span.SetStatus(codes.Error, "quota exceeded")
		return Response{}, &QuotaExceededError{
			Url:      sentUrl,
			Response: response,
		}
	}

	if strings.Contains(response.Body, serviceErrorMarker) {
		message, err := decodeServiceError(response.Body)
		if err != nil {
			message = "malformed error payload"
		}
		r.session.tel.ReportWarning(report_request_send, "service error", message)
		span.SetStatus(codes.Error, message)
		return Response{}, &ServiceError{
			Url:      sentUrl,
			Message:  message,
			Response: response,
			Err:      err,
		}
	}

	err = checkStatus(res)
	if err != nil {
		r.session.tel.ReportBroken(report_request_send, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, res.Status())
		return Response{}, err
	}

	return response, nil
}
