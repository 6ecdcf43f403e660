package telemetry

import "sync"

// Report is a single call made against a RecordingAPI.
type Report struct {
	Kind   string
	Id     string
	Params []any
	Count  int64
}

const (
	KindBroken  = "broken"
	KindWarning = "warning"
	KindDebug   = "debug"
	KindCount   = "count"
)

// RecordingAPI is an API that keeps every report in memory, it is meant for tests
// that need to assert a component reported (or did not report) something.
type RecordingAPI struct {
	lock    sync.Mutex
	reports []Report
}

func (r *RecordingAPI) record(report Report) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports = append(r.reports, report)
}

func (r *RecordingAPI) ReportBroken(id string, params ...any) {
	r.record(Report{Kind: KindBroken, Id: id, Params: params})
}

func (r *RecordingAPI) ReportWarning(id string, params ...any) {
	r.record(Report{Kind: KindWarning, Id: id, Params: params})
}

func (r *RecordingAPI) ReportDebug(msg string, params ...any) {
	r.record(Report{Kind: KindDebug, Id: msg, Params: params})
}

func (r *RecordingAPI) ReportCount(id string, count int64) {
	r.record(Report{Kind: KindCount, Id: id, Count: count})
}

// Reports returns a copy of the reports of the given kind, or all of them if kind is empty.
func (r *RecordingAPI) Reports(kind string) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()

	var out []Report
	for _, report := range r.reports {
		if kind == "" || report.Kind == kind {
			out = append(out, report)
		}
	}
	return out
}
