package source

import "log/slog"

// Reporter receives the messages of failed runs.
type Reporter interface {
	Report(message string)
}

type ReporterFunc func(message string)

func (f ReporterFunc) Report(message string) {
	f(message)
}

// LogReporter reports at error level, to slog.Default() when Logger is nil.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(message string) {
	l := r.Logger
	if l == nil {
		l = slog.Default()
	}

	l.Error(message)
}
