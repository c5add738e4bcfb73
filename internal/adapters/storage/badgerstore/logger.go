package badgerstore

import (
	"fmt"
	"log/slog"
	"strings"
)

// badgerLogger routes badger's printf-style logging into slog.
// Info output is demoted to debug; badger is chatty on open and compaction.
type badgerLogger struct {
	logger *slog.Logger
}

func newBadgerLogger(logger *slog.Logger, store string) *badgerLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &badgerLogger{logger: logger.With(slog.String("component", "badger"), slog.String("store", store))}
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(msg(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(msg(format, args))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(msg(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(msg(format, args))
}

func msg(format string, args []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
