package dialer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ExecDialer dials by running an external program with the number as its
// last argument.
type ExecDialer struct {
	executor *Executor
	args     []string
}

// NewExecDialer creates a dialer around an executor.
func NewExecDialer(executor *Executor, args ...string) *ExecDialer {
	return &ExecDialer{
		executor: executor,
		args:     append([]string(nil), args...),
	}
}

// Driver returns the dialer driver.
func (d *ExecDialer) Driver() Driver {
	return DriverExec
}

// Dial runs the program.
func (d *ExecDialer) Dial(ctx context.Context, number string) error {
	args := append(append([]string(nil), d.args...), number)

	stdout, stderr, err := d.executor.Execute(ctx, args)
	if err != nil {
		return fmt.Errorf("dial command failed: %w\nstderr: %s", err, stderr)
	}

	slog.Debug("Dial command finished", "number", number, "stdout", strings.TrimSpace(string(stdout)))
	return nil
}

// Close cleans up resources. The exec dialer holds none.
func (d *ExecDialer) Close() error {
	return nil
}
