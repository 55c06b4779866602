package hive

import "github.com/EungsopYoo/sqoop/internal/logging"

// Diagnostics receives the non-fatal notices emitted while statements are
// built: a warning per approximated type mapping and a debug line per
// generated statement.
type Diagnostics interface {
	Warnf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// logDiagnostics bridges diagnostics to the process logger. Used when the
// caller does not supply a sink.
type logDiagnostics struct{}

func (logDiagnostics) Warnf(format string, args ...interface{}) {
	logging.Warn(format, args...)
}

func (logDiagnostics) Debugf(format string, args ...interface{}) {
	logging.Debug(format, args...)
}
