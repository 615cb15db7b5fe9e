package dialer

import (
	"context"
	"log/slog"
)

// LogDialer simulates dialing by logging the number.
type LogDialer struct {
	logger *slog.Logger
}

// NewLogDialer creates a log dialer. A nil logger uses slog.Default.
func NewLogDialer(logger *slog.Logger) *LogDialer {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogDialer{logger: logger}
}

// Driver returns the dialer driver.
func (d *LogDialer) Driver() Driver {
	return DriverLog
}

// Dial logs the number.
func (d *LogDialer) Dial(ctx context.Context, number string) error {
	d.logger.InfoContext(ctx, "Dialing", "number", number)
	return nil
}

// Close cleans up resources. The log dialer holds none.
func (d *LogDialer) Close() error {
	return nil
}
