package dialer

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/xfs"
)

// FromConfig builds the dialer selected by cfg.
func FromConfig(cfg config.DialerConfig, logger *slog.Logger) (Dialer, error) {
	switch cfg.Driver {
	case config.DialerDriverLog, "":
		return NewLogDialer(logger), nil

	case config.DialerDriverAT:
		if cfg.Device == "" {
			// Hide os.Stdout's Close so closing the dialer leaves stdout open.
			return NewATDialer(struct{ io.Writer }{os.Stdout}, cfg.ATTemplate)
		}

		device, err := os.OpenFile(xfs.ExpandTilde(cfg.Device), os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return nil, fmt.Errorf("open modem device: %w", err)
		}

		d, err := NewATDialer(device, cfg.ATTemplate)
		if err != nil {
			device.Close()
			return nil, err
		}
		return d, nil

	case config.DialerDriverExec:
		executor, err := NewExecutor(xfs.ExpandTilde(cfg.ExecPath), cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return NewExecDialer(executor, cfg.ExecArgs...), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
