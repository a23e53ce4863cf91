package argfmt

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the package's logger. It should be called
// before any format is compiled or interpreted. A nil l restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// debugFormats enables tracing of format compilation.
const debugFormats = false

func debugFormat(msg string, args ...any) {
	if !debugFormats {
		return
	}
	Logger().Sugar().Debugf(msg, args...)
}
