// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog is the logging handle threaded through goglobe contexts.
// Logging is best effort and never changes control flow.
package conlog

import (
	"go.uber.org/zap"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warning(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// New wraps a zap logger. A nil logger yields Nop.
func New(l *zap.Logger) Logger {
	if l == nil {
		return Nop()
	}
	return &zapLogger{s: l.Sugar()}
}

// NewDevelopment returns a human readable logger writing to stderr.
func NewDevelopment() (Logger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

func Nop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}

func (l *zapLogger) Info(format string, v ...interface{}) {
	l.s.Infof(format, v...)
}

func (l *zapLogger) Warning(format string, v ...interface{}) {
	l.s.Warnf(format, v...)
}

func (l *zapLogger) Error(format string, v ...interface{}) {
	l.s.Errorf(format, v...)
}

// Sync flushes buffered entries if the underlying logger buffers.
func Sync(l Logger) {
	if z, ok := l.(*zapLogger); ok {
		_ = z.s.Sync()
	}
}
