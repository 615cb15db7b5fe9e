package dialer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ATDialer writes a Hayes AT dial command, such as "ATD5551234567;\r\n",
// to a modem device.
type ATDialer struct {
	w        io.Writer
	template string
	mu       sync.Mutex
}

// NewATDialer creates a dialer writing to w. template must contain a single
// %s verb for the number.
func NewATDialer(w io.Writer, template string) (*ATDialer, error) {
	if strings.Count(template, "%") != 1 || !strings.Contains(template, "%s") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, template)
	}

	return &ATDialer{w: w, template: template}, nil
}

// Driver returns the dialer driver.
func (d *ATDialer) Driver() Driver {
	return DriverAT
}

// Dial writes the command.
func (d *ATDialer) Dial(ctx context.Context, number string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := fmt.Fprintf(d.w, d.template, number); err != nil {
		return fmt.Errorf("write AT command: %w", err)
	}

	return nil
}

// Close closes the device when it is closable.
func (d *ATDialer) Close() error {
	if c, ok := d.w.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
