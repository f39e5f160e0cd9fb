package pipeline

import "go.uber.org/zap"

// ErrorReporter is the best-effort side channel for failures that are
// tolerated by the main flow. Reports must never block or fail: a mapping
// index that goes stale is acceptable, a telemetry event that is held back
// by it is not.
type ErrorReporter interface {
	Report(op string, err error, fields ...zap.Field)
}

// LogReporter reports swallowed failures to the structured log
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a LogReporter
func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Report logs the failure and returns
func (r *LogReporter) Report(op string, err error, fields ...zap.Field) {
	all := append([]zap.Field{zap.String("op", op), zap.Error(err)}, fields...)
	r.logger.Error("Best-effort operation failed, continuing", all...)
}
