package trends

import (
	"context"
	"fmt"
	"gtrends/internal/chrono"
	"gtrends/pkg/htmlutil"
	"gtrends/pkg/telemetry"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"dario.cat/mergo"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/publicsuffix"
)

var tracer = otel.Tracer("gtrends/pkg/trends")

const (
	report_session_authenticate = "session.authenticate"
)

const (
	LandingUrl     = "http://www.google.com/ncr"
	AuthUrl        = "https://accounts.google.com/ServiceLoginBoxAuth"
	CheckCookieUrl = "https://www.google.com/accounts/CheckCookie?chtml=LoginDoneHtml"
	ContinueUrl    = "http://www.google.com/trends"
	TrendsUrl      = "https://www.google.com/trends/fetchComponent"

	LocaleCookieName = "I4SUserLocale"

	maxRedirects = 10
)

type endpoints struct {
	landing     string
	auth        string
	checkCookie string
	trends      string
}

var defaultEndpoints = endpoints{
	landing:     LandingUrl,
	auth:        AuthUrl,
	checkCookie: CheckCookieUrl,
	trends:      TrendsUrl,
}

type SessionOptions struct {
	Email     string
	Password  string
	UserAgent string
	// Language is an underscore separated locale like `en_US`.
	Language string
	// MaxSleepInterval is the upper bound of the random delay before each query
	// in hundredths of a second. 0 means the default of 200, any other value
	// <= 10 disables the delay.
	MaxSleepInterval int
	Timeout          time.Duration
	// Telemetry defaults to telemetry.SlogAPI.
	Telemetry telemetry.API
}

var defaultSessionOptions = SessionOptions{
	UserAgent:        "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_10_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/41.0.2272.89 Safari/537.36",
	Language:         "en_US",
	MaxSleepInterval: 200,
	Timeout:          30 * time.Second,
}

// Session holds the credentials and cookies of a single google user, it is not
// safe to run queries on the same session concurrently.
type Session struct {
	opts      SessionOptions
	http      *resty.Client
	jar       *cookiejar.Jar
	tel       telemetry.API
	time      chrono.TimeAPI
	endpoints endpoints
}

func NewSession(opts SessionOptions) (*Session, error) {
	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	opts.Telemetry = nil
	err := mergo.Merge(&opts, defaultSessionOptions)
	if err != nil {
		return nil, err
	}
	opts.Telemetry = tel
	tel = telemetry.NewScopedAPI("trends", tel)

	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.SetHeaders(map[string]string{
		"User-Agent":   opts.UserAgent,
		"Content-Type": "application/x-www-form-urlencoded",
		"Accept":       "text/plain",
		"Referrer":     AuthUrl,
	})
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	client.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(client, tel)

	return &Session{
		opts:      opts,
		http:      client,
		jar:       jar,
		tel:       tel,
		time:      chrono.NewStandardTime(),
		endpoints: defaultEndpoints,
	}, nil
}

func (s *Session) Jar() http.CookieJar {
	return s.jar
}

func (s *Session) UserAgent() string {
	return s.opts.UserAgent
}

func (s *Session) Language() string {
	return s.opts.Language
}

func (s *Session) MaxSleepInterval() int {
	return s.opts.MaxSleepInterval
}

func (s *Session) SetMaxSleepInterval(interval int) {
	s.opts.MaxSleepInterval = interval
}

// requestUrl is the url that was actually sent, query string included.
func requestUrl(res *resty.Response) string {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL.String()
	}
	return res.Request.URL
}

// checkStatus turns 4xx and 5xx responses into a *StatusError.
func checkStatus(res *resty.Response) error {
	if !res.IsError() {
		return nil
	}
	return &StatusError{
		Method:     res.Request.Method,
		Url:        requestUrl(res),
		StatusCode: res.StatusCode(),
		Status:     res.Status(),
	}
}

// Authenticate logs into google and fills the cookie jar with the cookies
// trends queries need. Errors from the http client are returned as is, a
// 4xx or 5xx answer to any step stops the login with a *StatusError.
func (s *Session) Authenticate(ctx context.Context) (*Session, error) {
	ctx, span := tracer.Start(ctx, "session:Authenticate")
	defer span.End()

	fail := func(step string, err error) (*Session, error) {
		s.tel.ReportBroken(report_session_authenticate, fmt.Errorf("%s: %w", step, err))
		span.RecordError(err)
		span.SetStatus(codes.Error, step)
		return nil, err
	}

	res, err := s.http.R().
		SetContext(ctx).
		Get(s.endpoints.landing)
	if err == nil {
		err = checkStatus(res)
	}
	if err != nil {
		return fail("fetch landing page", err)
	}

	res, err = s.http.R().
		SetContext(ctx).
		Get(s.endpoints.auth)
	if err == nil {
		err = checkStatus(res)
	}
	if err != nil {
		return fail("fetch login page", err)
	}
	params, err := htmlutil.GetInputsFromHtml(res.Body())
	if err != nil {
		return fail("parse login page", fmt.Errorf("parse login page: %w", err))
	}
	s.tel.ReportDebug("login form inputs", len(params))

	params["Email"] = s.opts.Email
	params["Passwd"] = s.opts.Password
	params["pstMsg"] = "1"
	params["continue"] = ContinueUrl

	res, err = s.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Post(s.endpoints.auth)
	if err == nil {
		err = checkStatus(res)
	}
	if err != nil {
		return fail("post login", err)
	}

	res, err = s.http.R().
		SetContext(ctx).
		Get(s.endpoints.checkCookie)
	if err == nil {
		err = checkStatus(res)
	}
	if err != nil {
		return fail("check cookie", err)
	}

	trendsUrl, err := url.Parse(s.endpoints.trends)
	if err != nil {
		return fail("parse trends url", err)
	}
	s.jar.SetCookies(trendsUrl, []*http.Cookie{{
		Name:     LocaleCookieName,
		Value:    s.opts.Language,
		Path:     "/trends",
		Secure:   true,
		HttpOnly: true,
	}})

	return s, nil
}
