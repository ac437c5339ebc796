package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm/logger"
)

// slogWriter routes gorm's log lines into the service's JSON logger.
type slogWriter struct {
	l *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.l.Warn("gorm", "detail", fmt.Sprintf(format, args...))
}

// NewGormLogger reports slow queries and real errors; a missing row is
// normal control flow and is not logged.
func NewGormLogger(l *slog.Logger) logger.Interface {
	return logger.New(slogWriter{l: l.With("component", "gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}
