package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded reports. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards reports with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendRefreshReport logs and discards a refresh report.
func (n *NoOpNotifier) SendRefreshReport(_ context.Context, report RefreshReport) error {
	n.log.Debug("refresh report discarded (no backend configured)",
		"cities", len(report.Results),
		"failures", report.Failures(),
	)
	return nil
}
