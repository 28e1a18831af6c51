package service

import (
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// RetryLogger адаптирует zap к retryablehttp.LeveledLogger
type RetryLogger struct {
	sugar *zap.SugaredLogger
}

var _ retryablehttp.LeveledLogger = (*RetryLogger)(nil)

// NewRetryLogger создает новый RetryLogger
func NewRetryLogger(logger *zap.Logger) *RetryLogger {
	return &RetryLogger{sugar: logger.Named("upstream").Sugar()}
}

func (l *RetryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *RetryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *RetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *RetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}
