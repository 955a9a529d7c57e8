package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// slogWriter adapts slog to gorm's logger.Writer.
// A nil logger resolves to slog.Default() on every call, so it follows slog.SetDefault.
type slogWriter struct {
	l *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	l := w.l
	if l == nil {
		l = slog.Default()
	}
	l.Warn("gorm", "detail", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// NewGormLogger reports slow queries and errors through l.
// Missing rows are an expected outcome of lookups and are not logged; bound values are kept out of the SQL.
func NewGormLogger(l *slog.Logger) logger.Interface {
	return logger.New(slogWriter{l: l}, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
		Colorful:                  false,
	})
}
