package api

import "go.uber.org/zap"

// zapAccessLogWriter adapts a zap.Logger to the io.Writer gorilla/handlers
// expects for its combined-log-format access logging.
type zapAccessLogWriter struct {
	logger *zap.Logger
}

func (w zapAccessLogWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}
