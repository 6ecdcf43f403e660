package telemetry

// API is where the trends client sends its logs and counters. Tests swap in a
// RecordingAPI to assert on what was reported.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a failed call against google that the caller can not
	// recover from, like a login step answering 500 or a dropped connection.
	//
	// The `id` names the operation, `session.authenticate` or `request.send`.
	// Which step inside the operation failed goes in params or in the wrapped error.
	//
	// Ids are lowercase, the package-level noun comes first and the operation
	// second, joined by a dot.
	ReportBroken(id string, params ...any)

	// ReportWarning reports an answer google gave on purpose that still means no
	// data, quota exhaustion or a service error payload. Ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports request level detail such as urls and the delay before a query.
	ReportDebug(msg string, params ...any)

	// ReportCount reports a gauge, like the number of rows a response decoded to.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id and debug message with a namespace. Scoping an
// already scoped api joins the namespaces with a slash instead of stacking
// prefixes, so "trends" then "session" reports as "trends/session: <id>".
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI scopes inner under namespace. An empty namespace leaves ids untouched.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	if parent, ok := inner.(ScopedAPI); ok {
		return parent.Scope(namespace)
	}
	return ScopedAPI{namespace: namespace, inner: inner}
}

// Scope returns an api nested one level under s.
func (s ScopedAPI) Scope(namespace string) ScopedAPI {
	switch {
	case namespace == "":
		return s
	case s.namespace == "":
		return ScopedAPI{namespace: namespace, inner: s.inner}
	}
	return ScopedAPI{namespace: s.namespace + "/" + namespace, inner: s.inner}
}

func (s ScopedAPI) id(id string) string {
	if s.namespace == "" {
		return id
	}
	return s.namespace + ": " + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.id(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.id(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.id(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.id(id), count)
}
