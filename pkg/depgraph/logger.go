package depgraph

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
)

// Logger returns the package's logger instance. It uses a no-op
// logger by default. Grounded verbatim on
// wippyai-wasm-runtime/linker/logger.go's Logger()/SetLogger()
// package-singleton pattern.
func Logger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop().Sugar()
		}
	})
	return logger
}

// SetLogger configures the package's logger; every later Logger call
// returns it.
func SetLogger(l *zap.Logger) {
	logger = l.Sugar()
}
