// Package notify delivers the operator-facing deadline warnings collected at
// startup or on demand.
package notify

import "go.uber.org/zap"

// Notifier receives deadline warnings.
type Notifier interface {
	DeadlineWarning(message string)
}

// LogNotifier writes warnings to the application log.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a notifier over the given logger.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

// DeadlineWarning logs one warning line.
func (n *LogNotifier) DeadlineWarning(message string) {
	n.log.Warn("deadline warning", zap.String("warning", message))
}

// NopNotifier discards warnings. Useful in tests.
type NopNotifier struct{}

// DeadlineWarning does nothing.
func (NopNotifier) DeadlineWarning(string) {}
