package logger

import "go.uber.org/zap"

// LoggerAdapter lets middleware and handlers take either the per-category
// multi logger or a single logger (tests, CLI) through one interface
type LoggerAdapter struct {
	multiLogger  *MultiLogger
	singleLogger *zap.Logger
	useMulti     bool
}

// NewLoggerAdapter creates an adapter backed by a multi logger
func NewLoggerAdapter(multiLogger *MultiLogger) *LoggerAdapter {
	return &LoggerAdapter{
		multiLogger: multiLogger,
		useMulti:    true,
	}
}

// NewSingleLoggerAdapter creates an adapter backed by a single logger
func NewSingleLoggerAdapter(logger *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		singleLogger: logger,
		useMulti:     false,
	}
}

// Download returns the logger for download events
func (la *LoggerAdapter) Download() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.Download()
	}
	return la.singleLogger
}

// HTTP returns the logger for API request logging
func (la *LoggerAdapter) HTTP() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.HTTP()
	}
	return la.singleLogger
}

// Error returns the error logger
func (la *LoggerAdapter) Error() *zap.Logger {
	if la.useMulti {
		return la.multiLogger.Error()
	}
	return la.singleLogger
}

// LogError logs an error under the given category. With a multi logger
// the entry also lands in the error log.
func (la *LoggerAdapter) LogError(category LogCategory, msg string, fields ...zap.Field) {
	if la.useMulti {
		la.multiLogger.LogError(category, msg, fields...)
		return
	}
	la.singleLogger.Error(msg, fields...)
}

// Sync flushes any buffered log entries
func (la *LoggerAdapter) Sync() error {
	if la.useMulti {
		return la.multiLogger.Sync()
	}
	return la.singleLogger.Sync()
}

// GetMultiLogger returns the underlying multi logger, or nil when the
// adapter wraps a single logger
func (la *LoggerAdapter) GetMultiLogger() *MultiLogger {
	if la.useMulti {
		return la.multiLogger
	}
	return nil
}
