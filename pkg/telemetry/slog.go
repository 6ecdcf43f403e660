package telemetry

import (
	"context"
	"log/slog"
	"strconv"
)

// SlogAPI implements API using the log/slog package. Reports go to Logger,
// or to slog.Default() when Logger is nil.
type SlogAPI struct {
	Logger *slog.Logger
}

// attrs turns report params into slog attributes. Errors are logged under
// "err", everything else positionally as params.N.
func attrs(params []any) []slog.Attr {
	out := make([]slog.Attr, 0, len(params))
	for i, p := range params {
		if err, ok := p.(error); ok {
			out = append(out, slog.String("err", err.Error()))
			continue
		}
		out = append(out, slog.Any("params."+strconv.Itoa(i), p))
	}
	return out
}

func (s SlogAPI) log(level slog.Level, msg string, attrs ...slog.Attr) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.log(slog.LevelError, "broken component", append([]slog.Attr{slog.String("id", id)}, attrs(params)...)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.log(slog.LevelWarn, "warning", append([]slog.Attr{slog.String("id", id)}, attrs(params)...)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.log(slog.LevelDebug, message, attrs(params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.log(slog.LevelInfo, "count", slog.String("id", id), slog.Int64("n", count))
}
