package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger writes gorm output to zap. Failed statements go to error, slow ones
// to warn, the rest to debug when the level is Info.
type Logger struct {
	log   *zap.Logger
	level logger.LogLevel
	slow  time.Duration
}

var _ logger.Interface = (*Logger)(nil)

func NewLogger(log *zap.Logger, slow time.Duration) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{log: log.Named("gorm"), level: logger.Warn, slow: slow}
}

func (l *Logger) LogMode(level logger.LogLevel) logger.Interface {
	c := *l
	c.level = level
	return &c
}

func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, args...))
	}
}

// Trace logs one executed statement. Record-not-found is a normal lookup miss, not an error.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	fields := func() []zap.Field {
		sql, rows := fc()
		return []zap.Field{zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed)}
	}
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		l.log.Error("query failed", append(fields(), zap.Error(err))...)
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		l.log.Warn("slow query", append(fields(), zap.Duration("threshold", l.slow))...)
	case l.level >= logger.Info:
		l.log.Debug("query", fields()...)
	}
}
